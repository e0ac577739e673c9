package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/contesthq/contest-backend/internal/models"
	"github.com/contesthq/contest-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrizeRepository is an in-memory implementation of
// repositories.PrizeRepository.
type PrizeRepository struct {
	mu     sync.RWMutex
	prizes map[primitive.ObjectID]*models.Prize
}

// NewPrizeRepository creates an empty in-memory prize store
func NewPrizeRepository() *PrizeRepository {
	return &PrizeRepository{prizes: make(map[primitive.ObjectID]*models.Prize)}
}

// Create creates a new prize
func (r *PrizeRepository) Create(_ context.Context, prize *models.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prize.CreatedAt = time.Now()
	prize.UpdatedAt = time.Now()
	if prize.ID.IsZero() {
		prize.ID = primitive.NewObjectID()
	}
	cp := *prize
	r.prizes[prize.ID] = &cp
	return nil
}

// FindByContestID finds all prizes belonging to a contest, oldest first
func (r *PrizeRepository) FindByContestID(_ context.Context, contestID primitive.ObjectID) ([]*models.Prize, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Prize
	for _, prize := range r.prizes {
		if prize.ContestID == contestID {
			cp := *prize
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// FindFirstByContestID finds the oldest prize configured for a contest
func (r *PrizeRepository) FindFirstByContestID(ctx context.Context, contestID primitive.ObjectID) (*models.Prize, error) {
	prizes, err := r.FindByContestID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if len(prizes) == 0 {
		return nil, repositories.ErrNotFound
	}
	return prizes[0], nil
}

// Update updates a prize
func (r *PrizeRepository) Update(_ context.Context, prize *models.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.prizes[prize.ID]; !ok {
		return repositories.ErrNotFound
	}
	prize.UpdatedAt = time.Now()
	cp := *prize
	r.prizes[prize.ID] = &cp
	return nil
}

// Delete deletes a prize
func (r *PrizeRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.prizes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.prizes, id)
	return nil
}

var _ repositories.PrizeRepository = (*PrizeRepository)(nil)
