package memory

import (
	"context"
	"sync"
	"time"

	"github.com/contesthq/contest-backend/internal/models"
	"github.com/contesthq/contest-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminUserRepository is an in-memory implementation of
// repositories.AdminUserRepository, keyed by email.
type AdminUserRepository struct {
	mu    sync.RWMutex
	users map[string]*models.AdminUser
}

// NewAdminUserRepository creates an empty in-memory admin user store
func NewAdminUserRepository() *AdminUserRepository {
	return &AdminUserRepository{users: make(map[string]*models.AdminUser)}
}

// Create creates a new admin user
func (r *AdminUserRepository) Create(_ context.Context, user *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

// FindByEmail finds an admin user by email
func (r *AdminUserRepository) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

var _ repositories.AdminUserRepository = (*AdminUserRepository)(nil)
