// File: database/repository/reservation/transaction.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medbuddy/models"
)

// withTxn runs fn inside a mongo session transaction with commit/rollback on
// every exit path.
func (repo *mongoReservationRepo) withTxn(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	sess, err := repo.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// nextSequence increments and returns the appointment counter. Running inside
// the booking transaction serializes concurrent bookings on the counter
// document, which keeps confirmation codes collision free.
func (repo *mongoReservationRepo) nextSequence(sc mongo.SessionContext) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := repo.counterColl.FindOneAndUpdate(
		sc,
		bson.M{"_id": "appointments"},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to advance appointment sequence: %w", err)
	}
	return counter.Seq, nil
}

func (repo *mongoReservationRepo) BookSlot(ctx context.Context, slotID string, appt *models.Appointment) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	txnFn := func(sc mongo.SessionContext) error {
		// Conditional check-and-set: matches only while the slot is free.
		res, err := repo.slotColl.UpdateOne(sc,
			bson.M{"id": slotID, "is_booked": false},
			bson.M{"$set": bson.M{"is_booked": true}},
		)
		if err != nil {
			return fmt.Errorf("failed to mark slot booked: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotUnavailable
		}

		seq, err := repo.nextSequence(sc)
		if err != nil {
			return err
		}
		appt.ConfirmationCode = models.ConfirmationCode(seq, appt.CreatedAt)

		if _, err := repo.apptColl.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := repo.withTxn(ctx, txnFn); err != nil {
		if err == ErrSlotUnavailable {
			return "", err
		}
		return "", fmt.Errorf("booking transaction failed: %w", err)
	}
	return appt.ConfirmationCode, nil
}

func (repo *mongoReservationRepo) CancelByCode(ctx context.Context, code string, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cancelled := false
	txnFn := func(sc mongo.SessionContext) error {
		var appt models.Appointment
		err := repo.apptColl.FindOneAndUpdate(sc,
			bson.M{"confirmation_code": code, "status": models.StatusReserved},
			bson.M{"$set": bson.M{"status": models.StatusCancelled, "updated_at": at}},
		).Decode(&appt)
		if err == mongo.ErrNoDocuments {
			// Unknown code or not RESERVED anymore; nothing to do.
			return nil
		}
		if err != nil {
			return fmt.Errorf("cancel update failed: %w", err)
		}

		if err := repo.releaseSlot(sc, appt.SlotID); err != nil {
			return err
		}
		cancelled = true
		return nil
	}

	if err := repo.withTxn(ctx, txnFn); err != nil {
		return false, fmt.Errorf("cancel transaction failed: %w", err)
	}
	return cancelled, nil
}

func (repo *mongoReservationRepo) ExpireReservation(ctx context.Context, appointmentID string, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	expired := false
	txnFn := func(sc mongo.SessionContext) error {
		var appt models.Appointment
		err := repo.apptColl.FindOneAndUpdate(sc,
			bson.M{"id": appointmentID, "status": models.StatusReserved},
			bson.M{"$set": bson.M{"status": models.StatusExpired, "updated_at": at}},
		).Decode(&appt)
		if err == mongo.ErrNoDocuments {
			// A confirm or cancel landed first; skip this row.
			return nil
		}
		if err != nil {
			return fmt.Errorf("expire update failed: %w", err)
		}

		if err := repo.releaseSlot(sc, appt.SlotID); err != nil {
			return err
		}
		expired = true
		return nil
	}

	if err := repo.withTxn(ctx, txnFn); err != nil {
		return false, fmt.Errorf("expire transaction failed: %w", err)
	}
	return expired, nil
}

func (repo *mongoReservationRepo) UpdateStatus(ctx context.Context, appointmentID string, from, to models.Status, meetingLink, remarks string, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	updated := false
	txnFn := func(sc mongo.SessionContext) error {
		var appt models.Appointment
		err := repo.apptColl.FindOneAndUpdate(sc,
			bson.M{"id": appointmentID, "status": from},
			bson.M{"$set": bson.M{
				"status":        to,
				"meeting_link":  meetingLink,
				"admin_remarks": remarks,
				"updated_at":    at,
			}},
		).Decode(&appt)
		if err == mongo.ErrNoDocuments {
			// Current status no longer matches; the caller re-reads.
			return nil
		}
		if err != nil {
			return fmt.Errorf("status update failed: %w", err)
		}

		if to.Terminal() {
			if err := repo.releaseSlot(sc, appt.SlotID); err != nil {
				return err
			}
		}
		updated = true
		return nil
	}

	if err := repo.withTxn(ctx, txnFn); err != nil {
		return false, fmt.Errorf("status update transaction failed: %w", err)
	}
	return updated, nil
}

func (repo *mongoReservationRepo) releaseSlot(sc mongo.SessionContext, slotID string) error {
	_, err := repo.slotColl.UpdateOne(sc,
		bson.M{"id": slotID},
		bson.M{"$set": bson.M{"is_booked": false}},
	)
	if err != nil {
		return fmt.Errorf("failed to release slot %s: %w", slotID, err)
	}
	return nil
}
