package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/contesthq/contest-backend/internal/distribution"
	"github.com/contesthq/contest-backend/internal/repositories"
)

// Compile-time check to ensure StatsServiceImpl implements StatsService
var _ StatsService = (*StatsServiceImpl)(nil)

// StatsService builds distribution reports for a contest's prizes
type StatsService interface {
	ContestReport(ctx context.Context, contestCode string, now time.Time) ([]distribution.Report, error)
}

// StatsServiceImpl assembles reports from the slot schedule and the win
// ledger. Reports are computed fresh per call, never cached.
type StatsServiceImpl struct {
	contestRepo repositories.ContestRepository
	prizeRepo   repositories.PrizeRepository
	winRepo     repositories.WinRepository
}

// NewStatsService creates a new StatsServiceImpl
func NewStatsService(
	contestRepo repositories.ContestRepository,
	prizeRepo repositories.PrizeRepository,
	winRepo repositories.WinRepository,
) *StatsServiceImpl {
	return &StatsServiceImpl{
		contestRepo: contestRepo,
		prizeRepo:   prizeRepo,
		winRepo:     winRepo,
	}
}

// ContestReport builds one distribution report per prize configured for the
// contest, for the calendar day of now. A contest with no prizes yields an
// empty slice.
func (s *StatsServiceImpl) ContestReport(ctx context.Context, contestCode string, now time.Time) ([]distribution.Report, error) {
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

	prizes, err := s.prizeRepo.FindByContestID(ctx, contest.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prizes for contest %s: %w", contestCode, err)
	}

	reports := make([]distribution.Report, 0, len(prizes))
	for _, prize := range prizes {
		records, err := s.winRepo.FindByPrizeAndDate(ctx, prize.ID, now)
		if err != nil {
			slog.Error("Failed to load win records", "error", err, "prize", prize.Code)
			return nil, fmt.Errorf("failed to load win records for prize %s: %w", prize.Code, err)
		}
		reports = append(reports, distribution.BuildReport(contest.Code, prize, now, records))
	}
	return reports, nil
}
