package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/contesthq/contest-backend/internal/models"
	"github.com/contesthq/contest-backend/internal/repositories"
)

// Sentinel errors surfaced by PlayService; handlers map these to HTTP
// statuses.
var (
	ErrContestNotFound   = errors.New("contest not found")
	ErrContestInactive   = errors.New("contest is not active")
	ErrNoPrizeConfigured = errors.New("no prize configured for contest")
	ErrUserLimitReached  = errors.New("user daily win limit reached")
)

// WinDecider decides whether a single play request wins a prize. Implemented
// by distribution.Engine.
type WinDecider interface {
	Decide(ctx context.Context, prize *models.Prize, now time.Time) (bool, error)
}

// Compile-time check to ensure PlayServiceImpl implements PlayService
var _ PlayService = (*PlayServiceImpl)(nil)

// PlayService handles play attempts against a contest
type PlayService interface {
	Play(ctx context.Context, contestCode, userID string, now time.Time) (*models.PlayResult, error)
}

// PlayServiceImpl validates the contest and user limits, asks the win
// decider for an outcome, and records wins in the ledger
type PlayServiceImpl struct {
	contestRepo       repositories.ContestRepository
	prizeRepo         repositories.PrizeRepository
	winRepo           repositories.WinRepository
	decider           WinDecider
	userMaxWinsPerDay int
}

// NewPlayService creates a new PlayServiceImpl
func NewPlayService(
	contestRepo repositories.ContestRepository,
	prizeRepo repositories.PrizeRepository,
	winRepo repositories.WinRepository,
	decider WinDecider,
	userMaxWinsPerDay int,
) *PlayServiceImpl {
	return &PlayServiceImpl{
		contestRepo:       contestRepo,
		prizeRepo:         prizeRepo,
		winRepo:           winRepo,
		decider:           decider,
		userMaxWinsPerDay: userMaxWinsPerDay,
	}
}

// Play processes one play attempt for a contest. The user identifier is
// optional; anonymous plays skip the per-user daily limit check and their
// wins are recorded without a user.
func (s *PlayServiceImpl) Play(ctx context.Context, contestCode, userID string, now time.Time) (*models.PlayResult, error) {
	contest, err := s.contestRepo.FindByCode(ctx, contestCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrContestNotFound
		}
		slog.Error("Failed to look up contest", "error", err, "contest", contestCode)
		return nil, fmt.Errorf("failed to look up contest %s: %w", contestCode, err)
	}

	if !contest.IsActiveOn(now) {
		return nil, ErrContestInactive
	}

	if userID != "" {
		userWins, err := s.winRepo.CountByUserAndDate(ctx, userID, now)
		if err != nil {
			slog.Error("Failed to count user wins", "error", err, "user", userID)
			return nil, fmt.Errorf("failed to count wins for user %s: %w", userID, err)
		}
		if userWins >= int64(s.userMaxWinsPerDay) {
			slog.Info("User reached daily win limit", "user", userID, "limit", s.userMaxWinsPerDay)
			return nil, ErrUserLimitReached
		}
	}

	prize, err := s.prizeRepo.FindFirstByContestID(ctx, contest.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			slog.Error("Contest has no prize configured", "contest", contestCode)
			return nil, ErrNoPrizeConfigured
		}
		return nil, fmt.Errorf("failed to look up prize for contest %s: %w", contestCode, err)
	}

	win, err := s.decider.Decide(ctx, prize, now)
	if err != nil {
		slog.Error("Win decision failed", "error", err, "prize", prize.Code)
		return nil, fmt.Errorf("win decision failed for prize %s: %w", prize.Code, err)
	}

	result := &models.PlayResult{
		Win:       win,
		Contest:   contest,
		Timestamp: now,
	}

	if win {
		record := &models.WinRecord{
			PrizeID:   prize.ID,
			UserID:    userID,
			Timestamp: now,
		}
		if err := s.winRepo.Create(ctx, record); err != nil {
			slog.Error("Failed to record win", "error", err, "prize", prize.Code, "user", userID)
			return nil, fmt.Errorf("failed to record win for prize %s: %w", prize.Code, err)
		}
		result.Prize = prize
		slog.Info("Play won a prize", "contest", contestCode, "prize", prize.Code, "user", userID)
	}

	return result, nil
}
