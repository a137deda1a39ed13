// File: services/reservation/interface.go
package reservation

import (
	"context"
	"time"

	appointmentRepo "medbuddy/database/repository/appointment"
	reservationRepo "medbuddy/database/repository/reservation"
	slotRepo "medbuddy/database/repository/slot"
	"medbuddy/models"
)

// ReservationService is the engine behind patient booking and staff updates.
type ReservationService interface {
	// Book reserves a free slot and returns the appointment, including its
	// confirmation code. Fails with a slotUnavailable error when the slot
	// is unknown or already booked.
	Book(ctx context.Context, req models.BookingRequest) (*models.Appointment, error)

	// Cancel releases a RESERVED appointment by confirmation code. Calling
	// it on an unknown code or a non-RESERVED appointment is a no-op.
	Cancel(ctx context.Context, code string) error

	// UpdateStatus applies a staff update. Status transitions are validated
	// against the appointment lifecycle; illegal transitions are rejected.
	UpdateStatus(ctx context.Context, appointmentID string, req models.StatusUpdateRequest) (*models.Appointment, error)

	GetByCode(ctx context.Context, code string) (*models.Appointment, error)
	GetHistory(ctx context.Context, mobile string) ([]models.Appointment, error)

	ListAvailableSlots(ctx context.Context) ([]models.Slot, error)
	AddSlot(ctx context.Context, req models.AddSlotRequest) (*models.Slot, error)
}

// DefaultReservationService implements ReservationService on top of the slot,
// appointment and reservation repositories.
type DefaultReservationService struct {
	Slots        slotRepo.SlotRepository
	Ledger       appointmentRepo.AppointmentRepository
	Reservations reservationRepo.ReservationRepository

	// Now is injected for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultReservationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
