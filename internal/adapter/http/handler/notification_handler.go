package handler

import (
	"token-shop/internal/core/ports"
	"token-shop/pkg/response"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the notification center.
type NotificationHandler struct {
	notificationSvc ports.NotificationService
}

func NewNotificationHandler(notificationSvc ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List handles GET /api/v1/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	list, err := h.notificationSvc.List(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, list)
}

// MarkRead handles POST /api/v1/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkAsRead(c.Request.Context(), owner, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// MarkAllRead handles POST /api/v1/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkAllAsRead(c.Request.Context(), owner); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Remove handles DELETE /api/v1/notifications/:id.
func (h *NotificationHandler) Remove(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.notificationSvc.Remove(c.Request.Context(), owner, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Clear handles DELETE /api/v1/notifications.
func (h *NotificationHandler) Clear(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.Clear(c.Request.Context(), owner); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
