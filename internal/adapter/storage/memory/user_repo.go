package memory

import (
	"context"
	"fmt"
	"sync"

	"token-shop/internal/core/domain"

	"github.com/google/uuid"
)

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]domain.User
	byEmail map[string]uuid.UUID
}

// NewUserRepo creates an empty UserRepo.
func NewUserRepo() *UserRepo {
	return &UserRepo{
		users:   make(map[uuid.UUID]domain.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := domain.NormalizeEmail(u.Email)
	if _, ok := r.byEmail[email]; ok {
		return domain.ErrEmailTaken
	}
	r.users[u.ID] = *u
	r.byEmail[email] = u.ID
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	u := r.users[id]
	return &u, nil
}

func (r *UserRepo) SetAgeVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user not found: %s", id)
	}
	u.AgeVerified = verified
	r.users[id] = u
	return nil
}
