package service

import (
	"context"
	"testing"

	"token-shop/internal/adapter/storage/memory"
	"token-shop/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_Lifecycle(t *testing.T) {
	svc := NewNotificationService(memory.NewNotificationRepo(), zerolog.Nop())
	ctx := context.Background()
	owner := uuid.New()

	first, err := svc.Add(ctx, owner, domain.NotificationSuccess, "Order Placed", "Your order has been placed successfully.")
	require.NoError(t, err)
	second, err := svc.Add(ctx, owner, "", "Welcome", "Hello")
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationInfo, second.Type)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 2)
	assert.Equal(t, 2, list.UnreadCount)

	require.NoError(t, svc.MarkAsRead(ctx, owner, first.ID))
	list, err = svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, list.UnreadCount)

	require.NoError(t, svc.MarkAllAsRead(ctx, owner))
	list, err = svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, list.UnreadCount)

	require.NoError(t, svc.Remove(ctx, owner, second.ID))
	list, err = svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, first.ID, list.Notifications[0].ID)

	require.NoError(t, svc.Clear(ctx, owner))
	list, err = svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list.Notifications)
}

func TestNotificationService_Errors(t *testing.T) {
	svc := NewNotificationService(memory.NewNotificationRepo(), zerolog.Nop())
	ctx := context.Background()
	owner := uuid.New()

	_, err := svc.Add(ctx, owner, domain.NotificationInfo, "  ", "body")
	assertAppCode(t, err, "REQ_001")

	assertAppCode(t, svc.MarkAsRead(ctx, owner, uuid.New()), "NTF_001")
	assertAppCode(t, svc.Remove(ctx, owner, uuid.New()), "NTF_001")
}

func TestNotificationService_OwnersAreIsolated(t *testing.T) {
	svc := NewNotificationService(memory.NewNotificationRepo(), zerolog.Nop())
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	n, err := svc.Add(ctx, alice, domain.NotificationWarning, "Low balance", "Top up soon")
	require.NoError(t, err)

	assertAppCode(t, svc.MarkAsRead(ctx, bob, n.ID), "NTF_001")
	assertAppCode(t, svc.Remove(ctx, bob, n.ID), "NTF_001")

	list, err := svc.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, list.Notifications)
}
