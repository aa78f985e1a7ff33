package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a lead tracked by an agency
type Customer struct {
	Id             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FullName       string             `json:"fullName" bson:"fullName"`
	Email          string             `json:"email,omitempty" bson:"email,omitempty"`
	PhoneNumber    string             `json:"phoneNumber" bson:"phoneNumber"`
	WhatsAppNumber string             `json:"whatsAppNumber,omitempty" bson:"whatsAppNumber,omitempty"`
	MinBudget      float64            `json:"minBudget,omitempty" bson:"minBudget,omitempty"`
	MaxBudget      float64            `json:"maxBudget,omitempty" bson:"maxBudget,omitempty"`
	LeadSource     string             `json:"leadSource,omitempty" bson:"leadSource,omitempty"`
	InitialNotes   string             `json:"initialNotes,omitempty" bson:"initialNotes,omitempty"`
	Status         string             `json:"status" bson:"status"`
	AgencyId       string             `json:"agencyId" bson:"agencyId"`
	UserId         string             `json:"userId,omitempty" bson:"userId,omitempty"`
	CreatedBy      string             `json:"createdBy" bson:"createdBy"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func (c *Customer) SetId(id primitive.ObjectID) { c.Id = id }
func (c *Customer) GetId() primitive.ObjectID   { return c.Id }
