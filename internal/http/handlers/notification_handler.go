// README: Notification handlers for listing and mark-read.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/http/middleware"
	"shuttle/internal/modules/notify"
	"shuttle/internal/types"
)

type NotificationHandler struct {
	notify *notify.Service
}

func NewNotificationHandler(svc *notify.Service) *NotificationHandler {
	return &NotificationHandler{notify: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := types.ID(middleware.CallerUID(c))
	unreadOnly := c.Query("unread") == "true"
	items, err := h.notify.List(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		writeNotifyError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"notifications": items})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing notification id")
		return
	}
	userID := types.ID(middleware.CallerUID(c))
	if err := h.notify.MarkRead(c.Request.Context(), userID, types.ID(id)); err != nil {
		writeNotifyError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": "read"})
}
