package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"workspot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var confirmedOnly = []models.BookingStatus{models.BookingConfirmed}

// withTransaction runs fn inside a MongoDB session transaction.
func (r *MongoBookingRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// CreateConfirmed checks for confirmed overlaps and inserts in one transaction.
func (r *MongoBookingRepo) CreateConfirmed(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		n, err := r.coll.CountDocuments(sc, overlapFilter(booking.Window(), confirmedOnly, ""))
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return ErrOverlap
		}
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	})
}

// Confirm checks for confirmed overlaps and flips pending to confirmed in one transaction.
func (r *MongoBookingRepo) Confirm(ctx context.Context, booking *models.Booking, at time.Time) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		n, err := r.coll.CountDocuments(sc, overlapFilter(booking.Window(), confirmedOnly, booking.ID))
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return ErrOverlap
		}

		filter := bson.M{"id": booking.ID, "status": models.BookingPending}
		update := bson.M{"$set": bson.M{"status": models.BookingConfirmed, "updatedAt": at}}
		res, err := r.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("confirm booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStatusConflict
		}
		return nil
	})
}
