// File: database/repository/appointment/queries.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medbuddy/models"
)

func (r *mongoAppointmentRepo) ListReservedBefore(ctx context.Context, cutoff time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"status":     models.StatusReserved,
		"created_at": bson.M{"$lte": cutoff},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *mongoAppointmentRepo) ListRemindable(ctx context.Context, from, until time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"status":           bson.M{"$in": []models.Status{models.StatusReserved, models.StatusConfirmed}},
		"start_at":         bson.M{"$gte": from, "$lte": until},
		"last_reminded_at": bson.M{"$exists": false},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_at", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *mongoAppointmentRepo) Stats(ctx context.Context, today string) (models.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var stats models.DashboardStats
	var err error
	if stats.Total, err = r.coll.CountDocuments(ctx, bson.M{}); err != nil {
		return stats, fmt.Errorf("count total: %w", err)
	}
	if stats.Reserved, err = r.coll.CountDocuments(ctx, bson.M{"status": models.StatusReserved}); err != nil {
		return stats, fmt.Errorf("count reserved: %w", err)
	}
	if stats.Confirmed, err = r.coll.CountDocuments(ctx, bson.M{"status": models.StatusConfirmed}); err != nil {
		return stats, fmt.Errorf("count confirmed: %w", err)
	}
	if stats.Today, err = r.coll.CountDocuments(ctx, bson.M{"appointment_date": today}); err != nil {
		return stats, fmt.Errorf("count today: %w", err)
	}
	return stats, nil
}
