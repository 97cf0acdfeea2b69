// README: Booking handlers for create and history.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/http/middleware"
	"shuttle/internal/modules/booking"
	"shuttle/internal/types"
)

type BookingHandler struct {
	booking *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{booking: svc}
}

type createBookingReq struct {
	RouteID    string  `json:"routeId"`
	FromStopID string  `json:"fromStopId"`
	ToStopID   string  `json:"toStopId"`
	ScheduleID *string `json:"scheduleId"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd := booking.CreateCommand{
		UserID:     types.ID(middleware.CallerUID(c)),
		Role:       middleware.CallerRole(c),
		RouteID:    types.ID(req.RouteID),
		FromStopID: types.ID(req.FromStopID),
		ToStopID:   types.ID(req.ToStopID),
	}
	if req.ScheduleID != nil && *req.ScheduleID != "" {
		sid := types.ID(*req.ScheduleID)
		cmd.ScheduleID = &sid
	}
	b, err := h.booking.Create(c.Request.Context(), cmd)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, b)
}

func (h *BookingHandler) History(c *gin.Context) {
	page, limit := pagination(c)
	userID := types.ID(middleware.CallerUID(c))
	items, total, err := h.booking.History(c.Request.Context(), userID, page, limit)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"bookings": items,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}
