package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/contesthq/contest-backend/internal/models"
	"github.com/contesthq/contest-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PrizeRepository implements the repositories.PrizeRepository interface
type PrizeRepository struct {
	collection *mongo.Collection
}

// NewPrizeRepository creates a new PrizeRepository
func NewPrizeRepository(db *mongo.Database) repositories.PrizeRepository {
	return &PrizeRepository{
		collection: db.Collection("prizes"),
	}
}

// Create creates a new prize
func (r *PrizeRepository) Create(ctx context.Context, prize *models.Prize) error {
	prize.CreatedAt = time.Now()
	prize.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, prize)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		prize.ID = id
	}
	return nil
}

// FindByContestID finds all prizes belonging to a contest
func (r *PrizeRepository) FindByContestID(ctx context.Context, contestID primitive.ObjectID) ([]*models.Prize, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"contestId": contestID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prizes []*models.Prize
	if err := cursor.All(ctx, &prizes); err != nil {
		return nil, err
	}
	return prizes, nil
}

// FindFirstByContestID finds the oldest prize configured for a contest
func (r *PrizeRepository) FindFirstByContestID(ctx context.Context, contestID primitive.ObjectID) (*models.Prize, error) {
	opts := options.FindOne().SetSort(bson.M{"createdAt": 1})
	var prize models.Prize
	err := r.collection.FindOne(ctx, bson.M{"contestId": contestID}, opts).Decode(&prize)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &prize, nil
}

// Update updates a prize
func (r *PrizeRepository) Update(ctx context.Context, prize *models.Prize) error {
	prize.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": prize.ID}, prize)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a prize
func (r *PrizeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
