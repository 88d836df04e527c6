package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	JobsCollection        = "jobs"
	TechniciansCollection = "technicians"
)

// Upsert seed jobs and technicians into the document store and ensure the
// indexes used by the planning reads.
func SeedMongo(ctx context.Context, db *mongo.Database, seed Seed) error {
	if db == nil {
		return errors.New("seed mongo: database is nil")
	}

	jobs := db.Collection(JobsCollection)
	_, err := jobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "scheduled_date", Value: 1}, {Key: "created_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("seed mongo: create jobs index: %w", err)
	}

	if len(seed.Jobs) > 0 {
		models := make([]mongo.WriteModel, 0, len(seed.Jobs))
		for _, j := range seed.Jobs {
			models = append(models, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": j.ID}).
				SetReplacement(j).
				SetUpsert(true))
		}
		if _, err := jobs.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
			return fmt.Errorf("seed mongo: upsert jobs: %w", err)
		}
	}

	if len(seed.Technicians) > 0 {
		models := make([]mongo.WriteModel, 0, len(seed.Technicians))
		for _, t := range seed.Technicians {
			models = append(models, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": t.ID}).
				SetReplacement(t).
				SetUpsert(true))
		}
		if _, err := db.Collection(TechniciansCollection).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
			return fmt.Errorf("seed mongo: upsert technicians: %w", err)
		}
	}

	return nil
}
