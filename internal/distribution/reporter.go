package distribution

import (
	"fmt"
	"strings"
	"time"

	"github.com/contesthq/contest-backend/internal/models"
	"github.com/contesthq/contest-backend/internal/utils"
)

// Report is an operator-facing view of a prize's distribution for one day:
// the day's statistics, a pacing status, and the slot plan for the next day.
type Report struct {
	ContestCode  string     `json:"contestCode"`
	PrizeCode    string     `json:"prizeCode"`
	PrizeName    string     `json:"prizeName"`
	Stats        DailyStats `json:"stats"`
	Status       string     `json:"status"`
	TomorrowPlan [24]int    `json:"tomorrowPlan"`
}

// Pacing statuses reported against the linear target
const (
	StatusOnTrack = "ON TRACK"
	StatusBehind  = "BEHIND"
	StatusAhead   = "AHEAD"
)

// BuildReport assembles the distribution report for a prize at now. records
// must hold the day's win records in timestamp ascending order.
func BuildReport(contestCode string, prize *models.Prize, now time.Time, records []*models.WinRecord) Report {
	stats := ComputeDailyStats(prize.Code, now, prize.PerDay, records)
	return Report{
		ContestCode:  contestCode,
		PrizeCode:    prize.Code,
		PrizeName:    prize.Name,
		Stats:        stats,
		Status:       pacingStatus(stats.TotalActualWins, prize.PerDay, now),
		TomorrowPlan: HourlyPlan(prize.Code, now.AddDate(0, 0, 1), prize.PerDay),
	}
}

// pacingStatus compares actual wins to the linear expectation, with a 10%
// tolerance band either side
func pacingStatus(actualWins, quota int, now time.Time) string {
	expected := float64(utils.SecondsOfDay(now)) / secondsPerDay * float64(quota)
	switch {
	case float64(actualWins) < expected*0.9:
		return StatusBehind
	case float64(actualWins) > expected*1.1:
		return StatusAhead
	default:
		return StatusOnTrack
	}
}

// RenderText formats the report as a fixed-width console table
func (r Report) RenderText() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Prize: %s (%s)\n", r.PrizeName, r.PrizeCode)
	fmt.Fprintf(&b, "Daily win limit: %d\n\n", r.Stats.Quota)

	fmt.Fprintf(&b, "Distribution for %s:\n", r.Stats.Date)
	fmt.Fprintf(&b, "Wins respecting hourly allocations: %d out of %d\n", r.Stats.TotalLimitedWins, r.Stats.Quota)
	fmt.Fprintf(&b, "Total actual wins: %d\n", r.Stats.TotalActualWins)
	fmt.Fprintf(&b, "Remaining wins: %d\n", r.Stats.RemainingWins)
	fmt.Fprintf(&b, "Distribution evenness: %.2f\n", r.Stats.Evenness)
	fmt.Fprintf(&b, "Status: %s\n", r.Status)

	b.WriteString("\nHourly Distribution:\n")
	b.WriteString("Hour  | Actual Wins | Ideal Allocation | Limited Wins\n")
	b.WriteString(strings.Repeat("-", 55) + "\n")
	for hour := 0; hour < 24; hour++ {
		fmt.Fprintf(&b, "%-5s | %11d | %16d | %12d\n",
			hourLabel(hour), r.Stats.ActualByHour[hour], r.Stats.IdealByHour[hour], r.Stats.LimitedByHour[hour])
	}

	b.WriteString("\nRecommended Distribution for Tomorrow:\n")
	b.WriteString("Hour  | Target Wins\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	for hour := 0; hour < 24; hour++ {
		fmt.Fprintf(&b, "%-5s | %d\n", hourLabel(hour), r.TomorrowPlan[hour])
	}

	return b.String()
}

// hourLabel formats an hour like "9 AM" or "3 PM"
func hourLabel(hour int) string {
	display := hour % 12
	if display == 0 {
		display = 12
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d %s", display, suffix)
}
