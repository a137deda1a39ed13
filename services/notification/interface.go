// File: services/notification/interface.go
package notification

import (
	"context"

	"medbuddy/models"
)

// NotificationService is the reminder sink. The sweep's responsibility ends at
// emitting the signal; delivery is fire-and-forget from its perspective.
type NotificationService interface {
	SendReminder(ctx context.Context, appt models.Appointment) error
}
