package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WinRecord is one entry in the append-only win ledger. UserID is empty for
// anonymous plays. Records are never updated; the ledger is the single
// source of truth for "wins so far today".
type WinRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PrizeID   primitive.ObjectID `bson:"prizeId" json:"prizeId"`
	UserID    string             `bson:"userId,omitempty" json:"userId,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
