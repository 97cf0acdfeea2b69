// README: Admin metrics handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/http/middleware"
	"shuttle/internal/modules/booking"
	"shuttle/internal/modules/metrics"
)

type MetricsHandler struct {
	recorder *metrics.Recorder
}

func NewMetricsHandler(rec *metrics.Recorder) *MetricsHandler {
	return &MetricsHandler{recorder: rec}
}

func (h *MetricsHandler) Summary(c *gin.Context) {
	if middleware.CallerRole(c) != booking.RoleAdmin {
		writeError(c, http.StatusForbidden, "admin role required")
		return
	}
	summary, err := h.recorder.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, summary)
}
