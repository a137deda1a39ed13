// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"medbuddy/config"
	"medbuddy/database"
	"medbuddy/models"
)

// ErrSlotUnavailable signals that the slot was already booked, including the
// case where a concurrent booking won the race. Callers treat it as a normal
// negative outcome, not a fault.
var ErrSlotUnavailable = errors.New("slot not available")

// ReservationRepository performs the lifecycle transitions that must touch
// the slot store and the appointment ledger atomically. Every method is one
// transaction: either both records change or neither does.
type ReservationRepository interface {
	// BookSlot marks the slot booked and inserts the appointment with a
	// freshly sequenced confirmation code, all in one transaction. The
	// slot update is conditional on is_booked=false, so of two concurrent
	// bookings on the same slot exactly one succeeds; the loser gets
	// ErrSlotUnavailable. Returns the confirmation code.
	BookSlot(ctx context.Context, slotID string, appt *models.Appointment) (string, error)

	// CancelByCode transitions a RESERVED appointment to CANCELLED and
	// releases its slot. Reports false without error when the code is
	// unknown or the appointment is not RESERVED, which makes the patient
	// cancel idempotent.
	CancelByCode(ctx context.Context, code string, at time.Time) (bool, error)

	// ExpireReservation transitions a RESERVED appointment to EXPIRED and
	// releases its slot. The update is conditional on the status still
	// being RESERVED at write time, so a confirm or cancel that lands
	// first wins and the expiry reports false.
	ExpireReservation(ctx context.Context, appointmentID string, at time.Time) (bool, error)

	// UpdateStatus transitions an appointment from one validated status to
	// another, overwriting meeting link and remarks. When the transition
	// deactivates the appointment (CANCELLED or EXPIRED) the slot is
	// released in the same transaction. Reports false when the current
	// status no longer matches from.
	UpdateStatus(ctx context.Context, appointmentID string, from, to models.Status, meetingLink, remarks string, at time.Time) (bool, error)
}

type mongoReservationRepo struct {
	client      *mongo.Client
	slotColl    *mongo.Collection
	apptColl    *mongo.Collection
	counterColl *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoReservationRepo{
		client:      database.MongoClient,
		slotColl:    db.Collection("slots"),
		apptColl:    db.Collection("appointments"),
		counterColl: db.Collection("counters"),
	}
}
