// File: services/reservation/book.go
package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	reservationRepo "medbuddy/database/repository/reservation"
	slotRepo "medbuddy/database/repository/slot"
	"medbuddy/models"
	"medbuddy/utils"
)

func (s *DefaultReservationService) Book(ctx context.Context, req models.BookingRequest) (*models.Appointment, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	slot, err := s.Slots.GetByID(ctx, req.SlotID)
	if errors.Is(err, slotRepo.ErrSlotNotFound) {
		return nil, NewSlotUnavailableError()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot: %w", err)
	}
	if slot.IsBooked {
		// Fast path; the transactional check-and-set below is what actually
		// decides races.
		return nil, NewSlotUnavailableError()
	}

	startAt, err := models.SlotStartAt(slot.Date, slot.StartTime)
	if err != nil {
		return nil, fmt.Errorf("slot %s has malformed schedule: %w", slot.ID, err)
	}

	now := s.now()
	appt := &models.Appointment{
		ID:              uuid.New().String(),
		PatientName:     strings.TrimSpace(req.PatientName),
		Mobile:          strings.TrimSpace(req.Mobile),
		Address:         strings.TrimSpace(req.Address),
		SlotID:          slot.ID,
		AppointmentDate: slot.Date,
		SlotTime:        slot.TimeRange(),
		StartAt:         startAt,
		Status:          models.StatusReserved,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	code, err := s.Reservations.BookSlot(ctx, slot.ID, appt)
	if errors.Is(err, reservationRepo.ErrSlotUnavailable) {
		return nil, NewSlotUnavailableError()
	}
	if err != nil {
		return nil, fmt.Errorf("booking failed: %w", err)
	}

	utils.GetLogger().Info("slot reserved",
		zap.String("slotId", slot.ID),
		zap.String("confirmationCode", code),
		zap.String("mobile", appt.Mobile),
	)
	return appt, nil
}

func validateBookingRequest(req models.BookingRequest) error {
	if strings.TrimSpace(req.SlotID) == "" {
		return NewValidationError("slot_id is required")
	}
	if strings.TrimSpace(req.PatientName) == "" {
		return NewValidationError("patient_name is required")
	}
	mobile := strings.TrimSpace(req.Mobile)
	if len(mobile) < 7 {
		return NewValidationError("mobile must have at least 7 digits")
	}
	for _, r := range mobile {
		if (r < '0' || r > '9') && r != '+' && r != ' ' && r != '-' {
			return NewValidationError("mobile contains invalid characters")
		}
	}
	return nil
}
