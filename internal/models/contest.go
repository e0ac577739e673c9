package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contest represents a time-boxed contest players can enter
type Contest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code      string             `bson:"code" json:"code"`
	Name      string             `bson:"name" json:"name"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	EndDate   time.Time          `bson:"endDate" json:"endDate"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsActiveOn reports whether the contest's date window (inclusive on both
// ends) covers the calendar day of t.
func (c *Contest) IsActiveOn(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start := time.Date(c.StartDate.Year(), c.StartDate.Month(), c.StartDate.Day(), 0, 0, 0, 0, t.Location())
	end := time.Date(c.EndDate.Year(), c.EndDate.Month(), c.EndDate.Day(), 0, 0, 0, 0, t.Location())
	return !day.Before(start) && !day.After(end)
}
