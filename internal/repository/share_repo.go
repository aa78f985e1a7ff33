package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mbeoliero/realty/internal/entity"
)

// ShareRepo is the repository for property shares
type ShareRepo struct {
	*Collection[entity.PropertyShare, *entity.PropertyShare]
}

// NewShareRepo creates a new ShareRepo
func NewShareRepo(db *mongo.Database) *ShareRepo {
	return &ShareRepo{Collection: newCollection[entity.PropertyShare](db, "propertyshares")}
}

func (r *ShareRepo) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "agencyId", Value: 1}}},
		{Keys: bson.D{{Key: "sharedWithUserId", Value: 1}}},
	})
	return err
}
