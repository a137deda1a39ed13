// File: services/scheduler/reminder.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	appointmentRepo "medbuddy/database/repository/appointment"
	"medbuddy/services/notification"
	"medbuddy/utils"
)

// ReminderScheduler emits a reminder signal for upcoming appointments.
type ReminderScheduler struct {
	Ledger   appointmentRepo.AppointmentRepository
	Notifier notification.NotificationService

	// Lookahead is how far ahead of the appointment start a reminder fires.
	Lookahead time.Duration

	// Now is injected for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *ReminderScheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RunReminderSweep performs one sweep: RESERVED or CONFIRMED appointments
// starting inside the lookahead window that have not been reminded yet get a
// reminder signal, and last_reminded_at is stamped so the next sweep skips
// them. A failed delivery is logged and retried naturally on the next tick
// because the row stays unstamped.
func (s *ReminderScheduler) RunReminderSweep(ctx context.Context) error {
	logger := utils.GetLogger()
	now := s.now()

	due, err := s.Ledger.ListRemindable(ctx, now, now.Add(s.Lookahead))
	if err != nil {
		return fmt.Errorf("reminder sweep: failed to list due appointments: %w", err)
	}

	sent := 0
	for _, appt := range due {
		if err := s.Notifier.SendReminder(ctx, appt); err != nil {
			logger.Error("reminder sweep: failed to send reminder",
				zap.String("appointmentId", appt.ID),
				zap.Error(err),
			)
			continue
		}
		if err := s.Ledger.MarkReminded(ctx, appt.ID, now); err != nil {
			// The reminder went out but the stamp failed; the next sweep may
			// re-send. Better a duplicate reminder than a lost one.
			logger.Error("reminder sweep: failed to mark appointment reminded",
				zap.String("appointmentId", appt.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	if len(due) > 0 {
		logger.Info("reminder sweep finished",
			zap.Int("due", len(due)),
			zap.Int("sent", sent),
		)
	}
	return nil
}
