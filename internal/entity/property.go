package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyImage is a stored image path of a property
type PropertyImage struct {
	Url       string `json:"url" bson:"url"`
	Alt       string `json:"alt,omitempty" bson:"alt,omitempty"`
	IsPrimary bool   `json:"isPrimary" bson:"isPrimary"`
}

// Property is a listing managed by an agency
type Property struct {
	Id           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	Location     string             `json:"location" bson:"location"`
	Price        float64            `json:"price" bson:"price"`
	Images       []PropertyImage    `json:"images" bson:"images"`
	Type         string             `json:"type" bson:"type"`
	Category     string             `json:"category" bson:"category"`
	Size         float64            `json:"size,omitempty" bson:"size,omitempty"`
	Bedrooms     int                `json:"bedrooms,omitempty" bson:"bedrooms,omitempty"`
	Bathrooms    int                `json:"bathrooms,omitempty" bson:"bathrooms,omitempty"`
	Amenities    []string           `json:"amenities" bson:"amenities"`
	OwnerName    string             `json:"owner_name" bson:"owner_name"`
	OwnerContact string             `json:"owner_contact,omitempty" bson:"owner_contact,omitempty"`
	Owner        string             `json:"owner" bson:"owner"`
	AgencyId     string             `json:"agencyId" bson:"agencyId"`
	Status       string             `json:"status" bson:"status"`
	PropertyCode string             `json:"property_code" bson:"property_code"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func (p *Property) SetId(id primitive.ObjectID) { p.Id = id }
func (p *Property) GetId() primitive.ObjectID   { return p.Id }
