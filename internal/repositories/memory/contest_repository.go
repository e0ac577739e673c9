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

// ContestRepository is an in-memory implementation of
// repositories.ContestRepository, keyed by contest code.
type ContestRepository struct {
	mu       sync.RWMutex
	contests map[string]*models.Contest
}

// NewContestRepository creates an empty in-memory contest store
func NewContestRepository() *ContestRepository {
	return &ContestRepository{contests: make(map[string]*models.Contest)}
}

// Create creates a new contest
func (r *ContestRepository) Create(_ context.Context, contest *models.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	contest.CreatedAt = time.Now()
	contest.UpdatedAt = time.Now()
	if contest.ID.IsZero() {
		contest.ID = primitive.NewObjectID()
	}
	cp := *contest
	r.contests[contest.Code] = &cp
	return nil
}

// FindByCode finds a contest by its unique code
func (r *ContestRepository) FindByCode(_ context.Context, code string) (*models.Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	contest, ok := r.contests[code]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *contest
	return &cp, nil
}

// FindAll returns all contests sorted by start date descending
func (r *ContestRepository) FindAll(_ context.Context) ([]*models.Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Contest, 0, len(r.contests))
	for _, contest := range r.contests {
		cp := *contest
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

// Update updates a contest
func (r *ContestRepository) Update(_ context.Context, contest *models.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	contest.UpdatedAt = time.Now()
	for code, existing := range r.contests {
		if existing.ID == contest.ID {
			if code != contest.Code {
				delete(r.contests, code)
			}
			cp := *contest
			r.contests[contest.Code] = &cp
			return nil
		}
	}
	return repositories.ErrNotFound
}

// Delete deletes a contest
func (r *ContestRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for code, existing := range r.contests {
		if existing.ID == id {
			delete(r.contests, code)
			return nil
		}
	}
	return repositories.ErrNotFound
}

var _ repositories.ContestRepository = (*ContestRepository)(nil)
