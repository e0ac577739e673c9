package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/contesthq/contest-backend/internal/models"
	"github.com/contesthq/contest-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Validation errors for contest and prize configuration
var (
	ErrContestExists    = errors.New("a contest with this code already exists")
	ErrInvalidDateRange = errors.New("contest end date is before its start date")
	ErrInvalidQuota     = errors.New("prize daily quota must not be negative")
	ErrPrizeNotFound    = errors.New("prize not found")
)

// Compile-time check to ensure ContestServiceImpl implements ContestService
var _ ContestService = (*ContestServiceImpl)(nil)

// ContestService handles contest and prize administration
type ContestService interface {
	CreateContest(ctx context.Context, contest *models.Contest) error
	GetContest(ctx context.Context, code string) (*models.Contest, error)
	ListContests(ctx context.Context) ([]*models.Contest, error)
	UpdateContest(ctx context.Context, contest *models.Contest) error
	DeleteContest(ctx context.Context, id primitive.ObjectID) error
	AddPrize(ctx context.Context, contestCode string, prize *models.Prize) error
	ListPrizes(ctx context.Context, contestCode string) ([]*models.Prize, error)
	UpdatePrize(ctx context.Context, prize *models.Prize) error
	DeletePrize(ctx context.Context, id primitive.ObjectID) error
}

// ContestServiceImpl validates and persists contest and prize configuration.
// Malformed configuration (inverted date windows, negative quotas) is
// rejected here so the play path never sees it.
type ContestServiceImpl struct {
	contestRepo repositories.ContestRepository
	prizeRepo   repositories.PrizeRepository
}

// NewContestService creates a new ContestServiceImpl
func NewContestService(contestRepo repositories.ContestRepository, prizeRepo repositories.PrizeRepository) *ContestServiceImpl {
	return &ContestServiceImpl{
		contestRepo: contestRepo,
		prizeRepo:   prizeRepo,
	}
}

// CreateContest creates a new contest after validating its date window and
// code uniqueness
func (s *ContestServiceImpl) CreateContest(ctx context.Context, contest *models.Contest) error {
	if contest.EndDate.Before(contest.StartDate) {
		return ErrInvalidDateRange
	}

	_, err := s.contestRepo.FindByCode(ctx, contest.Code)
	if err == nil {
		return ErrContestExists
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check for existing contest %s: %w", contest.Code, err)
	}

	if err := s.contestRepo.Create(ctx, contest); err != nil {
		slog.Error("Failed to create contest", "error", err, "contest", contest.Code)
		return fmt.Errorf("failed to create contest %s: %w", contest.Code, err)
	}
	slog.Info("Contest created", "contest", contest.Code, "start", contest.StartDate, "end", contest.EndDate)
	return nil
}

// GetContest finds a contest by code
func (s *ContestServiceImpl) GetContest(ctx context.Context, code string) (*models.Contest, error) {
	contest, err := s.contestRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, fmt.Errorf("failed to look up contest %s: %w", code, err)
	}
	return contest, nil
}

// ListContests returns all contests
func (s *ContestServiceImpl) ListContests(ctx context.Context) ([]*models.Contest, error) {
	contests, err := s.contestRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}
	return contests, nil
}

// UpdateContest updates a contest after validating its date window
func (s *ContestServiceImpl) UpdateContest(ctx context.Context, contest *models.Contest) error {
	if contest.EndDate.Before(contest.StartDate) {
		return ErrInvalidDateRange
	}
	if err := s.contestRepo.Update(ctx, contest); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrContestNotFound
		}
		return fmt.Errorf("failed to update contest %s: %w", contest.Code, err)
	}
	return nil
}

// DeleteContest deletes a contest
func (s *ContestServiceImpl) DeleteContest(ctx context.Context, id primitive.ObjectID) error {
	if err := s.contestRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrContestNotFound
		}
		return fmt.Errorf("failed to delete contest: %w", err)
	}
	return nil
}

// AddPrize attaches a new prize to a contest after validating its quota
func (s *ContestServiceImpl) AddPrize(ctx context.Context, contestCode string, prize *models.Prize) error {
	if prize.PerDay < 0 {
		return ErrInvalidQuota
	}

	contest, err := s.GetContest(ctx, contestCode)
	if err != nil {
		return err
	}

	prize.ContestID = contest.ID
	if err := s.prizeRepo.Create(ctx, prize); err != nil {
		slog.Error("Failed to create prize", "error", err, "prize", prize.Code, "contest", contestCode)
		return fmt.Errorf("failed to create prize %s: %w", prize.Code, err)
	}
	slog.Info("Prize created", "prize", prize.Code, "contest", contestCode, "perday", prize.PerDay)
	return nil
}

// ListPrizes returns all prizes configured for a contest
func (s *ContestServiceImpl) ListPrizes(ctx context.Context, contestCode string) ([]*models.Prize, error) {
	contest, err := s.GetContest(ctx, contestCode)
	if err != nil {
		return nil, err
	}
	prizes, err := s.prizeRepo.FindByContestID(ctx, contest.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prizes for contest %s: %w", contestCode, err)
	}
	return prizes, nil
}

// UpdatePrize updates a prize after validating its quota
func (s *ContestServiceImpl) UpdatePrize(ctx context.Context, prize *models.Prize) error {
	if prize.PerDay < 0 {
		return ErrInvalidQuota
	}
	if err := s.prizeRepo.Update(ctx, prize); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPrizeNotFound
		}
		return fmt.Errorf("failed to update prize %s: %w", prize.Code, err)
	}
	return nil
}

// DeletePrize deletes a prize
func (s *ContestServiceImpl) DeletePrize(ctx context.Context, id primitive.ObjectID) error {
	if err := s.prizeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPrizeNotFound
		}
		return fmt.Errorf("failed to delete prize: %w", err)
	}
	return nil
}
