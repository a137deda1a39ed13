// File: services/reservation/updates.go
package reservation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	appointmentRepo "medbuddy/database/repository/appointment"
	"medbuddy/models"
	"medbuddy/utils"
)

// UpdateStatus applies a staff update to an appointment. Unlike the loose
// overwrite this replaces, the transition is validated against the current
// lifecycle state: nothing moves out of CANCELLED or EXPIRED, and CONFIRMED
// may only be cancelled. A repeated status keeps the record's state and only
// refreshes meeting link and remarks.
func (s *DefaultReservationService) UpdateStatus(ctx context.Context, appointmentID string, req models.StatusUpdateRequest) (*models.Appointment, error) {
	next := models.Status(req.Status)
	if !next.Valid() {
		return nil, NewValidationError(fmt.Sprintf("unknown status %q", req.Status))
	}

	appt, err := s.Ledger.GetByID(ctx, appointmentID)
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		return nil, NewNotFoundError("appointment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}

	if next == appt.Status {
		if err := s.Ledger.UpdateMeta(ctx, appointmentID, req.MeetingLink, req.Remarks, s.now()); err != nil {
			return nil, fmt.Errorf("failed to update appointment: %w", err)
		}
		return s.Ledger.GetByID(ctx, appointmentID)
	}

	if !appt.Status.CanTransitionTo(next) {
		return nil, NewConflictError(fmt.Sprintf("cannot move appointment from %s to %s", appt.Status, next))
	}

	updated, err := s.Reservations.UpdateStatus(ctx, appointmentID, appt.Status, next, req.MeetingLink, req.Remarks, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	if !updated {
		// The status changed underneath us (e.g., the expiry sweep fired).
		return nil, NewConflictError("appointment changed concurrently, reload and retry")
	}

	utils.GetLogger().Info("appointment updated",
		zap.String("appointmentId", appointmentID),
		zap.String("from", string(appt.Status)),
		zap.String("to", string(next)),
	)
	return s.Ledger.GetByID(ctx, appointmentID)
}
