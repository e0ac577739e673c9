package distribution

import (
	"time"

	"github.com/contesthq/contest-backend/internal/models"
)

// DailyStats aggregates a prize's win distribution for one calendar day.
// IdealByHour is the slot schedule's plan for the day; ActualByHour is the
// raw ledger count per hour; LimitedByHour replays the day's wins in
// timestamp order and only credits a win to an hour while that hour's
// allocation is not yet exhausted.
type DailyStats struct {
	Date             string  `json:"date"`
	Quota            int     `json:"quota"`
	IdealByHour      [24]int `json:"idealByHour"`
	ActualByHour     [24]int `json:"actualByHour"`
	LimitedByHour    [24]int `json:"limitedByHour"`
	TotalActualWins  int     `json:"totalActualWins"`
	TotalLimitedWins int     `json:"totalLimitedWins"`
	RemainingWins    int     `json:"remainingWins"`
	Evenness         float64 `json:"evenness"`
}

// HourlyPlan returns the number of win slots falling in each hour of the day
// for a prize on the given date
func HourlyPlan(prizeCode string, date time.Time, quota int) [24]int {
	var plan [24]int
	for _, slot := range GenerateSlots(prizeCode, date, quota) {
		plan[slot.Hour]++
	}
	return plan
}

// ComputeDailyStats builds the distribution statistics for a prize on the
// calendar day of date. records must hold the day's win records in timestamp
// ascending order, as returned by the win ledger.
func ComputeDailyStats(prizeCode string, date time.Time, quota int, records []*models.WinRecord) DailyStats {
	stats := DailyStats{
		Date:        date.Format("2006-01-02"),
		Quota:       quota,
		IdealByHour: HourlyPlan(prizeCode, date, quota),
	}

	for _, record := range records {
		stats.ActualByHour[record.Timestamp.Hour()]++
		stats.TotalActualWins++
	}

	// Replay in order so early wins consume an hour's allocation first
	for _, record := range records {
		hour := record.Timestamp.Hour()
		if stats.LimitedByHour[hour] < stats.IdealByHour[hour] {
			stats.LimitedByHour[hour]++
			stats.TotalLimitedWins++
		}
	}

	stats.RemainingWins = quota - stats.TotalLimitedWins
	stats.Evenness = evenness(stats.IdealByHour, stats.ActualByHour, stats.TotalActualWins, quota)
	return stats
}

// evenness scores how uniformly the actual wins track the plan, from 1.0
// (perfectly matched) down toward 0 as the spread degrades. The plan is
// scaled to the number of wins recorded so far, so a partially elapsed day
// with on-schedule wins still scores 1.0. No wins means nothing has deviated
// yet, which also scores 1.0.
func evenness(ideal, actual [24]int, totalActual, quota int) float64 {
	if totalActual == 0 || quota <= 0 {
		return 1.0
	}
	scale := float64(totalActual) / float64(quota)
	var sum float64
	for h := 0; h < 24; h++ {
		dev := float64(actual[h]) - float64(ideal[h])*scale
		sum += dev * dev
	}
	variance := sum / 24
	return 1 / (1 + variance)
}
