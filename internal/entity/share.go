package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyShare records a property recommended to a user
type PropertyShare struct {
	Id               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AgencyId         string             `json:"agencyId" bson:"agencyId"`
	PropertyId       string             `json:"propertyId" bson:"propertyId"`
	SharedWithUserId string             `json:"sharedWithUserId" bson:"sharedWithUserId"`
	SharedByUserId   string             `json:"sharedByUserId" bson:"sharedByUserId"`
	Message          string             `json:"message,omitempty" bson:"message,omitempty"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
}

func (s *PropertyShare) SetId(id primitive.ObjectID) { s.Id = id }
func (s *PropertyShare) GetId() primitive.ObjectID   { return s.Id }
