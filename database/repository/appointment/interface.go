// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"medbuddy/database"
	"medbuddy/models"
)

// ErrAppointmentNotFound is returned when no appointment matches the lookup.
var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentRepository is the read/update surface of the appointment ledger.
// Lifecycle transitions that must also touch the slot store (booking, cancel,
// expiry) live on the reservation repository so they stay in one transaction.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetByCode(ctx context.Context, code string) (*models.Appointment, error)
	GetByMobile(ctx context.Context, mobile string) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)

	// ListReservedBefore returns RESERVED appointments created at or before
	// the cutoff; the expiry sweep's candidate set.
	ListReservedBefore(ctx context.Context, cutoff time.Time) ([]models.Appointment, error)

	// ListRemindable returns RESERVED or CONFIRMED appointments starting
	// inside [from, until] that have not been reminded yet.
	ListRemindable(ctx context.Context, from, until time.Time) ([]models.Appointment, error)

	// MarkReminded records that a reminder signal was emitted, so the next
	// sweep skips the appointment.
	MarkReminded(ctx context.Context, id string, at time.Time) error

	// UpdateMeta overwrites meeting link and remarks without a status change.
	UpdateMeta(ctx context.Context, id, meetingLink, remarks string, at time.Time) error

	// Stats summarizes the ledger for the dashboard; today is "2006-01-02".
	Stats(ctx context.Context, today string) (models.DashboardStats, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	r := &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
	if err := r.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return r
}
