package memory

import (
	"context"
	"sync"

	"token-shop/internal/core/domain"

	"github.com/google/uuid"
)

// NotificationRepo implements ports.NotificationRepository. Each owner's
// list is kept newest first.
type NotificationRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID][]domain.Notification
}

// NewNotificationRepo creates an empty NotificationRepo.
func NewNotificationRepo() *NotificationRepo {
	return &NotificationRepo{items: make(map[uuid.UUID][]domain.Notification)}
}

func (r *NotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[n.OwnerID] = append([]domain.Notification{*n}, r.items[n.OwnerID]...)
	return nil
}

func (r *NotificationRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src := r.items[ownerID]
	out := make([]domain.Notification, len(src))
	copy(out, src)
	return out, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.items[ownerID]
	for i := range list {
		if list[i].ID == id {
			list[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	list := r.items[ownerID]
	for i := range list {
		if !list[i].Read {
			list[i].Read = true
			n++
		}
	}
	return n, nil
}

func (r *NotificationRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.items[ownerID]
	for i := range list {
		if list[i].ID == id {
			r.items[ownerID] = append(list[:i:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *NotificationRepo) DeleteAll(ctx context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, ownerID)
	return nil
}
