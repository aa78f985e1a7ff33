package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Agency is a real-estate agency owned by one user
type Agency struct {
	Id        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Slug      string             `json:"slug" bson:"slug"`
	Owner     string             `json:"owner" bson:"owner"`
	Email     string             `json:"email" bson:"email"`
	Phone     string             `json:"phone" bson:"phone"`
	Address   string             `json:"address" bson:"address"`
	LogoUrl   string             `json:"logoUrl,omitempty" bson:"logoUrl,omitempty"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func (a *Agency) SetId(id primitive.ObjectID) { a.Id = id }
func (a *Agency) GetId() primitive.ObjectID   { return a.Id }
