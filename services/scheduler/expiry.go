// File: services/scheduler/expiry.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	appointmentRepo "medbuddy/database/repository/appointment"
	reservationRepo "medbuddy/database/repository/reservation"
	"medbuddy/utils"
)

// ExpiryScheduler releases slots held by reservations that were never
// confirmed within the expiry threshold.
type ExpiryScheduler struct {
	Ledger       appointmentRepo.AppointmentRepository
	Reservations reservationRepo.ReservationRepository

	// Expiry is how long an unconfirmed reservation may hold its slot.
	Expiry time.Duration

	// Now is injected for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *ExpiryScheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RunExpirySweep performs one sweep: every RESERVED appointment older than
// the threshold is moved to EXPIRED and its slot released, one transaction
// per appointment. Each expiry is conditioned on the row still being
// RESERVED, so a concurrent confirm or cancel wins and the row is skipped;
// re-running the sweep is a no-op because the selection predicate excludes
// non-RESERVED rows. A failed listing abandons the run until the next tick.
func (s *ExpiryScheduler) RunExpirySweep(ctx context.Context) error {
	logger := utils.GetLogger()
	now := s.now()
	cutoff := now.Add(-s.Expiry)

	stale, err := s.Ledger.ListReservedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("expiry sweep: failed to list stale reservations: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	expired := 0
	for _, appt := range stale {
		ok, err := s.Reservations.ExpireReservation(ctx, appt.ID, now)
		if err != nil {
			logger.Error("expiry sweep: failed to expire reservation",
				zap.String("appointmentId", appt.ID),
				zap.Error(err),
			)
			continue
		}
		if ok {
			expired++
			logger.Info("reservation expired",
				zap.String("appointmentId", appt.ID),
				zap.String("confirmationCode", appt.ConfirmationCode),
				zap.String("slotId", appt.SlotID),
			)
		}
	}

	logger.Debug("expiry sweep finished",
		zap.Int("candidates", len(stale)),
		zap.Int("expired", expired),
	)
	return nil
}
