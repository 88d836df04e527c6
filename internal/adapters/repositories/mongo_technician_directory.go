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

// Mongo-backed implementation of the TechnicianDirectory port.
type MongoTechnicianDirectory struct {
	Technicians Finder
}

var _ ports.TechnicianDirectory = (*MongoTechnicianDirectory)(nil)

func NewMongoTechnicianDirectory(technicians Finder) *MongoTechnicianDirectory {
	return &MongoTechnicianDirectory{Technicians: technicians}
}

func (d *MongoTechnicianDirectory) TechniciansByIDs(
	ctx context.Context,
	ids []string,
) (_ []domain.TechnicianProfile, err error) {
	defer obs.Time(ctx, "technicians.TechniciansByIDs")(&err)

	if d.Technicians == nil {
		return nil, errors.New("mongo technician directory: collection is nil")
	}

	filter := bson.M{"active": true}
	if len(ids) > 0 {
		filter = bson.M{"_id": bson.M{"$in": ids}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := d.Technicians.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("technicians by ids: find: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []TechnicianDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("technicians by ids: decode: %w", err)
	}

	techs := make([]domain.TechnicianProfile, 0, len(docs))
	for _, doc := range docs {
		techs = append(techs, doc.toDomain())
	}

	if len(ids) > 0 {
		return orderByIDs(techs, ids), nil
	}
	return techs, nil
}
