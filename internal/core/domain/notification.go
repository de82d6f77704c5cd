package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType is the severity shown in the notification center.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification is an entry in a user's notification center.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	OwnerID   uuid.UUID        `json:"owner_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Link      string           `json:"link,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewNotification creates an unread notification.
func NewNotification(ownerID uuid.UUID, typ NotificationType, title, message string, now time.Time) *Notification {
	return &Notification{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: now,
	}
}
