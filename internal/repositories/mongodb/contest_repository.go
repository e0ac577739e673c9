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

// ContestRepository implements the repositories.ContestRepository interface
type ContestRepository struct {
	collection *mongo.Collection
}

// NewContestRepository creates a new ContestRepository
func NewContestRepository(db *mongo.Database) repositories.ContestRepository {
	return &ContestRepository{
		collection: db.Collection("contests"),
	}
}

// Create creates a new contest
func (r *ContestRepository) Create(ctx context.Context, contest *models.Contest) error {
	contest.CreatedAt = time.Now()
	contest.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, contest)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		contest.ID = id
	}
	return nil
}

// FindByCode finds a contest by its unique code
func (r *ContestRepository) FindByCode(ctx context.Context, code string) (*models.Contest, error) {
	var contest models.Contest
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&contest)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &contest, nil
}

// FindAll returns all contests sorted by start date descending
func (r *ContestRepository) FindAll(ctx context.Context) ([]*models.Contest, error) {
	opts := options.Find().SetSort(bson.M{"startDate": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var contests []*models.Contest
	if err := cursor.All(ctx, &contests); err != nil {
		return nil, err
	}
	return contests, nil
}

// Update updates a contest
func (r *ContestRepository) Update(ctx context.Context, contest *models.Contest) error {
	contest.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": contest.ID}, contest)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a contest
func (r *ContestRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
