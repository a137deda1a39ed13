// File: services/reservation/cancel.go
package reservation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"medbuddy/utils"
)

// Cancel is idempotent: cancelling an unknown code, or an appointment that is
// no longer RESERVED, is a silent no-op. A CONFIRMED appointment can only be
// cancelled by staff through UpdateStatus.
func (s *DefaultReservationService) Cancel(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return NewValidationError("confirmation code is required")
	}

	cancelled, err := s.Reservations.CancelByCode(ctx, code, s.now())
	if err != nil {
		return fmt.Errorf("cancel failed: %w", err)
	}
	if cancelled {
		utils.GetLogger().Info("reservation cancelled", zap.String("confirmationCode", code))
	}
	return nil
}
