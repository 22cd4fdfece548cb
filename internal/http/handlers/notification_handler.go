package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/dto"
	"github.com/ignatzorin/skillswap-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List GET /notificaciones/
func (h *NotificationHandler) List(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}

	items, err := h.notifications.ListNotifications(c.Request.Context(), cred)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, items)
}

// UnreadCount GET /notificaciones/no-leidas/
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}

	count, err := h.notifications.CountUnread(c.Request.Context(), cred)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, dto.UnreadCountResponse{NoLeidas: count})
}

// MarkRead PATCH /notificaciones/:id/marcar-leida/
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.notifications.MarkRead(c.Request.Context(), cred, id)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, item)
}

// MarkAllRead POST /notificaciones/marcar-todas-leidas/
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}

	n, err := h.notifications.MarkAllRead(c.Request.Context(), cred)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, dto.MarkAllReadResponse{
		Detail:       "Todas las notificaciones marcadas como leídas.",
		Actualizadas: n,
	})
}
