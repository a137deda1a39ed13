// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"medbuddy/database"
	"medbuddy/models"
)

// SlotRepository is the data access surface of the slot store. Booking-time
// mutation of is_booked goes through the reservation repository so the
// check-and-set stays transactional; this repository covers staff creation
// and read paths.
type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) (string, error)
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	ListAvailable(ctx context.Context) ([]models.Slot, error)
	ListAll(ctx context.Context) ([]models.Slot, error)
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	r := &mongoSlotRepo{
		coll: database.DB().Collection("slots"),
	}
	if err := r.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return r
}
