package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/contesthq/contest-backend/internal/models"
	"github.com/contesthq/contest-backend/internal/repositories"
	"github.com/contesthq/contest-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WinRepository is a mutex-serialized in-memory win ledger. Unlike the
// Mongo-backed ledger it gives a hard quota ceiling in a single process:
// Create and the count queries serialize on one lock, so a count observed
// under it cannot race a concurrent insert. Used by tests and available as
// a drop-in for single-instance deployments.
type WinRepository struct {
	mu      sync.Mutex
	records []*models.WinRecord
}

// NewWinRepository creates an empty in-memory ledger
func NewWinRepository() *WinRepository {
	return &WinRepository{}
}

// Create appends a win record
func (r *WinRepository) Create(_ context.Context, record *models.WinRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	cp := *record
	r.records = append(r.records, &cp)
	return nil
}

// CountByPrizeAndDate counts wins for a prize on the calendar day of date
func (r *WinRepository) CountByPrizeAndDate(_ context.Context, prizeID primitive.ObjectID, date time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	start, end := utils.DayBounds(date)
	var n int64
	for _, rec := range r.records {
		if rec.PrizeID == prizeID && !rec.Timestamp.Before(start) && rec.Timestamp.Before(end) {
			n++
		}
	}
	return n, nil
}

// CountByUserAndDate counts wins for a user on the calendar day of date
func (r *WinRepository) CountByUserAndDate(_ context.Context, userID string, date time.Time) (int64, error) {
	if userID == "" {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	start, end := utils.DayBounds(date)
	var n int64
	for _, rec := range r.records {
		if rec.UserID == userID && !rec.Timestamp.Before(start) && rec.Timestamp.Before(end) {
			n++
		}
	}
	return n, nil
}

// FindByPrizeAndDate returns a prize's win records for the calendar day of
// date, ordered by timestamp ascending
func (r *WinRepository) FindByPrizeAndDate(_ context.Context, prizeID primitive.ObjectID, date time.Time) ([]*models.WinRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	start, end := utils.DayBounds(date)
	var out []*models.WinRecord
	for _, rec := range r.records {
		if rec.PrizeID == prizeID && !rec.Timestamp.Before(start) && rec.Timestamp.Before(end) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

var _ repositories.WinRepository = (*WinRepository)(nil)
