package entity

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meeting date and time layouts
const (
	MeetingDateLayout = "2006-01-02"
	MeetingTimeLayout = "15:04"
)

// Meeting is an appointment between an agent and a customer about a property
type Meeting struct {
	Id         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title      string             `json:"title" bson:"title"`
	Agenda     string             `json:"agenda,omitempty" bson:"agenda,omitempty"`
	Date       string             `json:"date" bson:"date"`
	Time       string             `json:"time" bson:"time"`
	StartsAt   time.Time          `json:"startsAt" bson:"startsAt"`
	CustomerId string             `json:"customerId" bson:"customerId"`
	PropertyId string             `json:"propertyId,omitempty" bson:"propertyId,omitempty"`
	AgencyId   string             `json:"agencyId" bson:"agencyId"`
	CreatedBy  string             `json:"createdBy" bson:"createdBy"`
	Status     string             `json:"status" bson:"status"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func (m *Meeting) SetId(id primitive.ObjectID) { m.Id = id }
func (m *Meeting) GetId() primitive.ObjectID   { return m.Id }

// ParseMeetingStart combines a date and a wall-clock time in loc
func ParseMeetingStart(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(MeetingDateLayout+" "+MeetingTimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid meeting date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}
