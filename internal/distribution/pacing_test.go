package distribution

import (
	"testing"
	"time"

	"github.com/contesthq/contest-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func recordAt(prizeID primitive.ObjectID, t time.Time) *models.WinRecord {
	return &models.WinRecord{ID: primitive.NewObjectID(), PrizeID: prizeID, Timestamp: t}
}

func TestHourlyPlanSumsToQuota(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	for _, quota := range []int{0, 1, 10, 100} {
		plan := HourlyPlan("gold", date, quota)
		total := 0
		for _, n := range plan {
			total += n
		}
		assert.Equal(t, quota, total)
	}
}

func TestComputeDailyStatsEmpty(t *testing.T) {
	date := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	stats := ComputeDailyStats("gold", date, 10, nil)

	assert.Equal(t, "2026-03-14", stats.Date)
	assert.Equal(t, 0, stats.TotalActualWins)
	assert.Equal(t, 0, stats.TotalLimitedWins)
	assert.Equal(t, 10, stats.RemainingWins)
	assert.Equal(t, 1.0, stats.Evenness)
}

func TestComputeDailyStatsLimitedRespectsPlan(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	prizeID := primitive.NewObjectID()
	quota := 10

	// Pile every win into one hour; the limited view must cap that hour at
	// its planned allocation
	var records []*models.WinRecord
	for i := 0; i < quota; i++ {
		records = append(records, recordAt(prizeID, date.Add(9*time.Hour+time.Duration(i)*time.Minute)))
	}

	stats := ComputeDailyStats("gold", date, quota, records)
	require.Equal(t, quota, stats.TotalActualWins)
	assert.Equal(t, quota, stats.ActualByHour[9])
	assert.Equal(t, stats.IdealByHour[9], stats.LimitedByHour[9])
	assert.LessOrEqual(t, stats.TotalLimitedWins, quota)
	assert.Equal(t, quota-stats.TotalLimitedWins, stats.RemainingWins)

	// Clustered wins score worse than wins placed on the plan
	var planned []*models.WinRecord
	for hour, n := range stats.IdealByHour {
		for i := 0; i < n; i++ {
			planned = append(planned, recordAt(prizeID, date.Add(time.Duration(hour)*time.Hour+time.Duration(i)*time.Minute)))
		}
	}
	onPlan := ComputeDailyStats("gold", date, quota, planned)
	assert.Equal(t, 1.0, onPlan.Evenness)
	assert.Less(t, stats.Evenness, onPlan.Evenness)
}

func TestComputeDailyStatsLimitedNeverExceedsQuota(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	prizeID := primitive.NewObjectID()

	// More raw wins than the quota allows (overshoot scenario)
	var records []*models.WinRecord
	for i := 0; i < 30; i++ {
		records = append(records, recordAt(prizeID, date.Add(time.Duration(i*47)*time.Minute)))
	}

	stats := ComputeDailyStats("gold", date, 10, records)
	total := 0
	for _, n := range stats.LimitedByHour {
		total += n
	}
	assert.Equal(t, stats.TotalLimitedWins, total)
	assert.LessOrEqual(t, stats.TotalLimitedWins, 10)
}
