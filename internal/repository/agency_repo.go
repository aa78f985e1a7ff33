package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbeoliero/realty/internal/entity"
)

// AgencyRepo is the repository for agencies
type AgencyRepo struct {
	*Collection[entity.Agency, *entity.Agency]
}

// NewAgencyRepo creates a new AgencyRepo
func NewAgencyRepo(db *mongo.Database) *AgencyRepo {
	return &AgencyRepo{Collection: newCollection[entity.Agency](db, "agencies")}
}

func (r *AgencyRepo) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
	})
	return err
}
