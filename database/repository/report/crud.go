package reportRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workspot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new report document.
func (r *MongoReportRepo) Create(ctx context.Context, report *models.Report) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetByID returns a report by its ID.
func (r *MongoReportRepo) GetByID(ctx context.Context, id string) (*models.Report, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var report models.Report
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&report); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch report with id %s: %w", id, err)
	}
	return &report, nil
}

// Update replaces the report document guarded by its expected status.
func (r *MongoReportRepo) Update(ctx context.Context, report *models.Report, expected models.ReportStatus) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": report.ID, "status": expected}
	res, err := r.coll.ReplaceOne(ctx, filter, report)
	if err != nil {
		return fmt.Errorf("failed to update report with id %s: %w", report.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrStatusConflict
	}
	return nil
}

// listFilter translates a ReportFilter into a query document.
func listFilter(f ReportFilter) bson.M {
	filter := bson.M{"id": bson.M{"$exists": true}}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.ReportedSpaceID != "" {
		filter["reportedSpaceId"] = f.ReportedSpaceID
	}
	if f.ReportedUserID != "" {
		filter["reportedUserId"] = f.ReportedUserID
	}
	if f.ReporterID != "" {
		filter["reporterId"] = f.ReporterID
	}
	return filter
}

// List returns reports matching f, newest first.
func (r *MongoReportRepo) List(ctx context.Context, f ReportFilter) ([]models.Report, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cursor, err := r.coll.Find(ctx, listFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := []models.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}
