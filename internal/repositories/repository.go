package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/contesthq/contest-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by Find* methods when no document matches.
// Implementations translate their driver-specific error into this one.
var ErrNotFound = errors.New("not found")

// ContestRepository defines the interface for contest data operations
type ContestRepository interface {
	Create(ctx context.Context, contest *models.Contest) error
	FindByCode(ctx context.Context, code string) (*models.Contest, error)
	FindAll(ctx context.Context) ([]*models.Contest, error)
	Update(ctx context.Context, contest *models.Contest) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PrizeRepository defines the interface for prize data operations
type PrizeRepository interface {
	Create(ctx context.Context, prize *models.Prize) error
	FindByContestID(ctx context.Context, contestID primitive.ObjectID) ([]*models.Prize, error)
	FindFirstByContestID(ctx context.Context, contestID primitive.ObjectID) (*models.Prize, error)
	Update(ctx context.Context, prize *models.Prize) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// WinRepository is the append-only win ledger. Count and Find methods
// operate on the calendar day containing date, in date's location.
// CountByUserAndDate counts across all prizes and contests.
type WinRepository interface {
	Create(ctx context.Context, record *models.WinRecord) error
	CountByPrizeAndDate(ctx context.Context, prizeID primitive.ObjectID, date time.Time) (int64, error)
	CountByUserAndDate(ctx context.Context, userID string, date time.Time) (int64, error)
	FindByPrizeAndDate(ctx context.Context, prizeID primitive.ObjectID, date time.Time) ([]*models.WinRecord, error)
}

// AdminUserRepository defines the interface for admin account operations
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}
