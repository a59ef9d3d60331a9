package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"workspot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// overlapFilter matches bookings on the same space whose half-open window
// intersects w.
func overlapFilter(w models.BookingWindow, statuses []models.BookingStatus, excludeID string) bson.M {
	filter := bson.M{
		"space":     w.Space,
		"startTime": bson.M{"$lt": w.End},
		"endTime":   bson.M{"$gt": w.Start},
	}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

// FindOverlapping returns bookings intersecting window, optionally restricted by status.
func (r *MongoBookingRepo) FindOverlapping(ctx context.Context, window models.BookingWindow, statuses []models.BookingStatus, excludeID string) ([]models.Booking, error) {
	return r.find(ctx, overlapFilter(window, statuses, excludeID))
}

// ListBySpace returns every booking for a space ordered by start time.
func (r *MongoBookingRepo) ListBySpace(ctx context.Context, space string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"space": space})
}

// ListByGuest returns every booking made by a guest ordered by start time.
func (r *MongoBookingRepo) ListByGuest(ctx context.Context, guest string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"guest": guest})
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
