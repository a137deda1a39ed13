// File: services/reservation/queries.go
package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appointmentRepo "medbuddy/database/repository/appointment"
	"medbuddy/models"
)

func (s *DefaultReservationService) GetByCode(ctx context.Context, code string) (*models.Appointment, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, NewValidationError("confirmation code is required")
	}

	appt, err := s.Ledger.GetByCode(ctx, code)
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		return nil, NewNotFoundError("no appointment with that confirmation code")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup failed: %w", err)
	}
	return appt, nil
}

func (s *DefaultReservationService) GetHistory(ctx context.Context, mobile string) ([]models.Appointment, error) {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return nil, NewValidationError("mobile is required")
	}

	appts, err := s.Ledger.GetByMobile(ctx, mobile)
	if err != nil {
		return nil, fmt.Errorf("history lookup failed: %w", err)
	}
	return appts, nil
}
