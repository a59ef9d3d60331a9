package reportRepo

import (
	"context"
	"fmt"
	"time"

	"workspot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// legacyFilter matches documents written with the old flat shape.
var legacyFilter = bson.M{
	"reportedBy": bson.M{"$exists": true},
	"reporterId": bson.M{"$exists": false},
}

type legacyDocument struct {
	ObjectID            primitive.ObjectID `bson:"_id"`
	models.LegacyReport `bson:",inline"`
}

// MigrateLegacy replaces each legacy document in place, keeping its _id.
func (r *MongoReportRepo) MigrateLegacy(ctx context.Context, now time.Time) (int, error) {
	cursor, err := r.coll.Find(ctx, legacyFilter)
	if err != nil {
		return 0, fmt.Errorf("failed to query legacy reports: %w", err)
	}
	defer cursor.Close(ctx)

	migrated := 0
	for cursor.Next(ctx) {
		var doc legacyDocument
		if err := cursor.Decode(&doc); err != nil {
			return migrated, fmt.Errorf("failed to decode legacy report: %w", err)
		}
		// A document already rewritten earlier in this pass no longer has reportedBy.
		if doc.ReportedBy == "" {
			continue
		}

		canonical := doc.Canonical(uuid.New().String(), now)
		if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ObjectID}, canonical); err != nil {
			return migrated, fmt.Errorf("failed to migrate legacy report %s: %w", doc.ObjectID.Hex(), err)
		}
		migrated++
	}
	if err := cursor.Err(); err != nil {
		return migrated, fmt.Errorf("legacy report cursor failed: %w", err)
	}
	return migrated, nil
}
