package distribution

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"
)

// Slot is a target win instant within a day, expressed as a time of day.
type Slot struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// Seconds returns the slot's offset from midnight in seconds
func (s Slot) Seconds() int {
	return s.Hour*3600 + s.Minute*60 + s.Second
}

// String formats the slot as HH:MM:SS
func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", s.Hour, s.Minute, s.Second)
}

const minutesPerDay = 24 * 60

// GenerateSlots derives the win slots for a prize on a given calendar date.
// The slots are a pure function of (prizeCode, date, quota): the generator is
// seeded from an FNV-1a hash of "code:YYYY-MM-DD", so every process computes
// the identical schedule for the same day without any stored state. The seed
// and generator are part of the contract; changing either changes every
// schedule.
//
// The day is divided into quota equal segments with one slot per segment,
// jittered by up to 40% of the segment size (capped at 30 minutes) so the
// schedule is spread evenly without being mechanical. Slots come back in
// ascending time order. A quota of zero or less yields no slots.
func GenerateSlots(prizeCode string, date time.Time, quota int) []Slot {
	if quota <= 0 {
		return nil
	}

	h := fnv.New64a()
	h.Write([]byte(prizeCode + ":" + date.Format("2006-01-02")))
	seed := int64(h.Sum64() & math.MaxInt64)
	rng := rand.New(rand.NewSource(seed))

	segmentSize := float64(minutesPerDay) / float64(quota)
	maxJitter := math.Min(segmentSize*0.4, 30)

	slots := make([]Slot, 0, quota)
	for i := 0; i < quota; i++ {
		base := float64(i) * segmentSize
		jitter := rng.Float64()*2*maxJitter - maxJitter
		point := math.Min(math.Max(base+jitter, 0), float64(minutesPerDay-1))

		minutes := int(point)
		slots = append(slots, Slot{
			Hour:   minutes / 60,
			Minute: minutes % 60,
			Second: int((point - float64(minutes)) * 60),
		})
	}
	return slots
}
