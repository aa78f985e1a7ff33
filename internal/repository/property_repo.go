package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbeoliero/realty/internal/entity"
)

// PropertyRepo is the repository for property listings
type PropertyRepo struct {
	*Collection[entity.Property, *entity.Property]
}

// NewPropertyRepo creates a new PropertyRepo
func NewPropertyRepo(db *mongo.Database) *PropertyRepo {
	return &PropertyRepo{Collection: newCollection[entity.Property](db, "properties")}
}

func (r *PropertyRepo) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "property_code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "agencyId", Value: 1}}},
	})
	return err
}
