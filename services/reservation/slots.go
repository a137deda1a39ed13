// File: services/reservation/slots.go
package reservation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"medbuddy/models"
	"medbuddy/utils"
)

func (s *DefaultReservationService) ListAvailableSlots(ctx context.Context) ([]models.Slot, error) {
	slots, err := s.Slots.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

func (s *DefaultReservationService) AddSlot(ctx context.Context, req models.AddSlotRequest) (*models.Slot, error) {
	if err := validateSlotRequest(req); err != nil {
		return nil, err
	}

	slot := &models.Slot{
		Date:      strings.TrimSpace(req.Date),
		StartTime: strings.TrimSpace(req.StartTime),
		EndTime:   strings.TrimSpace(req.EndTime),
		IsBooked:  false,
	}
	id, err := s.Slots.Create(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}
	slot.ID = id

	utils.GetLogger().Info("slot published",
		zap.String("slotId", id),
		zap.String("date", slot.Date),
		zap.String("window", slot.TimeRange()),
	)
	return slot, nil
}

func validateSlotRequest(req models.AddSlotRequest) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date)); err != nil {
		return NewValidationError("slot_date must be YYYY-MM-DD")
	}
	start, err := time.Parse("15:04", strings.TrimSpace(req.StartTime))
	if err != nil {
		return NewValidationError("start_time must be HH:MM")
	}
	end, err := time.Parse("15:04", strings.TrimSpace(req.EndTime))
	if err != nil {
		return NewValidationError("end_time must be HH:MM")
	}
	if !end.After(start) {
		return NewValidationError("end_time must be after start_time")
	}
	return nil
}
