package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"token-shop/internal/core/domain"
	"token-shop/internal/core/ports"
	"token-shop/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NotificationServiceImpl implements ports.NotificationService.
type NotificationServiceImpl struct {
	repo ports.NotificationRepository
	now  func() time.Time
	log  zerolog.Logger
}

// NewNotificationService creates a new NotificationServiceImpl.
func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
		log:  log,
	}
}

func (s *NotificationServiceImpl) Add(ctx context.Context, ownerID uuid.UUID, typ domain.NotificationType, title, message string) (*domain.Notification, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperror.Validation("notification title is required")
	}
	if typ == "" {
		typ = domain.NotificationInfo
	}

	n := domain.NewNotification(ownerID, typ, title, message, s.now())
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create notification: %w", err))
	}

	reqLog(ctx, s.log).Debug().
		Str("owner_id", ownerID.String()).
		Str("notification_id", n.ID.String()).
		Str("title", title).
		Msg("notification added")

	return n, nil
}

func (s *NotificationServiceImpl) List(ctx context.Context, ownerID uuid.UUID) (*ports.NotificationList, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list notifications: %w", err))
	}

	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}
	return &ports.NotificationList{Notifications: items, UnreadCount: unread}, nil
}

func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, ownerID, id uuid.UUID) error {
	ok, err := s.repo.MarkRead(ctx, ownerID, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("mark notification read: %w", err))
	}
	if !ok {
		return apperror.ErrNotificationNotFound()
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, ownerID uuid.UUID) error {
	if _, err := s.repo.MarkAllRead(ctx, ownerID); err != nil {
		return apperror.InternalError(fmt.Errorf("mark all notifications read: %w", err))
	}
	return nil
}

func (s *NotificationServiceImpl) Remove(ctx context.Context, ownerID, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("delete notification: %w", err))
	}
	if !ok {
		return apperror.ErrNotificationNotFound()
	}
	return nil
}

func (s *NotificationServiceImpl) Clear(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.repo.DeleteAll(ctx, ownerID); err != nil {
		return apperror.InternalError(fmt.Errorf("clear notifications: %w", err))
	}
	return nil
}
