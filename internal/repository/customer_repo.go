package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbeoliero/realty/internal/entity"
)

// CustomerRepo is the repository for customers (leads)
type CustomerRepo struct {
	*Collection[entity.Customer, *entity.Customer]
}

// NewCustomerRepo creates a new CustomerRepo
func NewCustomerRepo(db *mongo.Database) *CustomerRepo {
	return &CustomerRepo{Collection: newCollection[entity.Customer](db, "customers")}
}

// FindByPhone finds the customer of an agency with the given phone number
func (r *CustomerRepo) FindByPhone(ctx context.Context, agencyId, phone string) (*entity.Customer, error) {
	return r.FindOne(ctx, bson.M{"agencyId": agencyId, "phoneNumber": phone})
}

func (r *CustomerRepo) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "agencyId", Value: 1}, {Key: "phoneNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
