package repositories

import (
	"context"
	"errors"
	"fmt"
	"hvac-dispatch-service/internal/domain"
	"hvac-dispatch-service/internal/platform/obs"
	"hvac-dispatch-service/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo-backed implementation of the JobSource port.
type MongoJobSource struct {
	Jobs Finder
}

var _ ports.JobSource = (*MongoJobSource)(nil)

func NewMongoJobSource(jobs Finder) *MongoJobSource {
	return &MongoJobSource{Jobs: jobs}
}

// Return plannable jobs for date in creation order.
func (s *MongoJobSource) ScheduledJobsForDate(ctx context.Context, date string) (_ []domain.ScheduledJob, err error) {
	defer obs.Time(ctx, "jobs.ScheduledJobsForDate")(&err)

	if s.Jobs == nil {
		return nil, errors.New("mongo job source: collection is nil")
	}

	filter := bson.M{
		"scheduled_date": date,
		"status":         inactiveStatusFilter(),
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := s.Jobs.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("scheduled jobs: find: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []JobDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("scheduled jobs: decode: %w", err)
	}

	jobs := make([]domain.ScheduledJob, 0, len(docs))
	for _, d := range docs {
		if !d.plannable() {
			continue
		}
		jobs = append(jobs, d.toDomain())
	}

	return jobs, nil
}
