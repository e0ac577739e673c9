package mongodb

import (
	"context"
	"time"

	"github.com/contesthq/contest-backend/internal/models"
	"github.com/contesthq/contest-backend/internal/repositories"
	"github.com/contesthq/contest-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WinRepository implements the repositories.WinRepository interface.
// Counts reflect committed writes only; two concurrent plays can both
// observe the same count before either insert lands, so the daily cap can
// overshoot by at most the number of in-flight requests for a prize.
type WinRepository struct {
	collection *mongo.Collection
}

// NewWinRepository creates a new WinRepository
func NewWinRepository(db *mongo.Database) repositories.WinRepository {
	return &WinRepository{
		collection: db.Collection("win_records"),
	}
}

// Create appends a win record. The timestamp is assigned here if unset.
func (r *WinRepository) Create(ctx context.Context, record *models.WinRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = id
	}
	return nil
}

// CountByPrizeAndDate counts wins for a prize on the calendar day of date
func (r *WinRepository) CountByPrizeAndDate(ctx context.Context, prizeID primitive.ObjectID, date time.Time) (int64, error) {
	start, end := utils.DayBounds(date)
	return r.collection.CountDocuments(ctx, bson.M{
		"prizeId":   prizeID,
		"timestamp": bson.M{"$gte": start, "$lt": end},
	})
}

// CountByUserAndDate counts wins for a user on the calendar day of date,
// across all prizes and contests
func (r *WinRepository) CountByUserAndDate(ctx context.Context, userID string, date time.Time) (int64, error) {
	if userID == "" {
		return 0, nil
	}
	start, end := utils.DayBounds(date)
	return r.collection.CountDocuments(ctx, bson.M{
		"userId":    userID,
		"timestamp": bson.M{"$gte": start, "$lt": end},
	})
}

// FindByPrizeAndDate returns a prize's win records for the calendar day of
// date, ordered by timestamp ascending
func (r *WinRepository) FindByPrizeAndDate(ctx context.Context, prizeID primitive.ObjectID, date time.Time) ([]*models.WinRecord, error) {
	start, end := utils.DayBounds(date)
	opts := options.Find().SetSort(bson.M{"timestamp": 1})
	cursor, err := r.collection.Find(ctx, bson.M{
		"prizeId":   prizeID,
		"timestamp": bson.M{"$gte": start, "$lt": end},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*models.WinRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
