package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prize represents a prize that can be won in a contest. PerDay is the hard
// daily win cap; changing it only affects slot generation for subsequent
// days, since slots are derived per calendar date.
type Prize struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code      string             `bson:"code" json:"code"`
	Name      string             `bson:"name" json:"name"`
	PerDay    int                `bson:"perday" json:"perday"`
	ContestID primitive.ObjectID `bson:"contestId" json:"contestId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
