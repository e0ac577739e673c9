package distribution

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"time"

	"github.com/contesthq/contest-backend/internal/models"
	"github.com/contesthq/contest-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// slotWindowSeconds is the half-width of the win window around each slot
	slotWindowSeconds = 30

	// defaultTrafficMultiplier assumes traffic runs ~100 play attempts per
	// intended winner; probabilities are tuned against it
	defaultTrafficMultiplier = 100

	secondsPerDay = 24 * 60 * 60
)

// Ledger is the win-count view the engine needs. Satisfied by
// repositories.WinRepository.
type Ledger interface {
	CountByPrizeAndDate(ctx context.Context, prizeID primitive.ObjectID, date time.Time) (int64, error)
}

// Engine decides whether a play request wins a prize. Decisions combine the
// deterministic slot schedule with unpredictable draws: the schedule says
// when wins should land, the draw says whether this particular request gets
// one. Safe for concurrent use; every call re-reads the ledger count.
type Engine struct {
	ledger            Ledger
	trafficMultiplier int
	logger            *slog.Logger
}

// NewEngine creates a win decision engine backed by the given ledger. A
// trafficMultiplier of zero or less falls back to the default of 100.
func NewEngine(ledger Ledger, trafficMultiplier int, logger *slog.Logger) *Engine {
	if trafficMultiplier <= 0 {
		trafficMultiplier = defaultTrafficMultiplier
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		ledger:            ledger,
		trafficMultiplier: trafficMultiplier,
		logger:            logger,
	}
}

// Decide determines whether a request at now wins the prize. It returns
// false whenever the daily quota is already met, the prize has no slots
// (quota zero), or the probability draws miss. Ledger errors propagate.
func (e *Engine) Decide(ctx context.Context, prize *models.Prize, now time.Time) (bool, error) {
	currentWins, err := e.ledger.CountByPrizeAndDate(ctx, prize.ID, now)
	if err != nil {
		return false, fmt.Errorf("failed to count wins for prize %s: %w", prize.Code, err)
	}
	if currentWins >= int64(prize.PerDay) {
		return false, nil
	}

	secondsElapsed := float64(utils.SecondsOfDay(now))
	expectedWinsByNow := secondsElapsed / secondsPerDay * float64(prize.PerDay)

	slots := GenerateSlots(prize.Code, now, prize.PerDay)
	if len(slots) == 0 {
		return false, nil
	}

	for _, slot := range slots {
		if math.Abs(secondsElapsed-float64(slot.Seconds())) > slotWindowSeconds {
			continue
		}

		requestsPerSlot := float64(prize.PerDay*e.trafficMultiplier) / float64(len(slots))
		baseProbability := 1 / requestsPerSlot

		// Push probability up when behind pace, down when ahead
		scheduleFactor := 1.0
		if expectedWinsByNow > 0 {
			remaining := float64(prize.PerDay) - float64(currentWins)
			scheduleFactor = clamp(remaining/(float64(prize.PerDay)-expectedWinsByNow), 0.5, 2.0)
		}

		winProbability := clamp(baseProbability*scheduleFactor, 0.001, 0.05)

		e.logger.Debug("play request in win slot",
			"prize", prize.Code,
			"slot", slot.String(),
			"probability", winProbability,
			"currentWins", currentWins,
			"expectedByNow", expectedWinsByNow,
			"scheduleFactor", scheduleFactor)

		win, err := drawBelow(winProbability)
		if err != nil {
			return false, err
		}
		if win {
			return true, nil
		}
	}

	// Safety valve so sparse early traffic does not strand quota at day end
	catchUpFactor := math.Max(0, (expectedWinsByNow-float64(currentWins))/float64(prize.PerDay))
	if catchUpFactor > 0.1 {
		catchUpProbability := clamp(0.05*catchUpFactor, 0, 0.01)

		e.logger.Debug("prize behind schedule, applying catch-up",
			"prize", prize.Code,
			"catchUpFactor", catchUpFactor,
			"probability", catchUpProbability)

		return drawBelow(catchUpProbability)
	}

	return false, nil
}

// drawBelow draws a uniform integer in [0, 10000) from an unpredictable
// source and reports whether it falls under probability. The seeded slot
// generator must never be used here: the schedule is reproducible on
// purpose, the outcomes must not be.
func drawBelow(probability float64) (bool, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return false, fmt.Errorf("failed to draw random number: %w", err)
	}
	return n.Int64() < int64(probability*10000), nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
