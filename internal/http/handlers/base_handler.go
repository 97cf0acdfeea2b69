// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shuttle/internal/modules/booking"
	"shuttle/internal/modules/notify"
	"shuttle/internal/modules/planner"
	"shuttle/internal/modules/wallet"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrUnauthorized):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, booking.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrWalletNotFound), errors.Is(err, booking.ErrRouteNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrInsufficientBalance):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeWalletError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, wallet.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, wallet.ErrInvalidAmount), errors.Is(err, wallet.ErrInsufficientBalance):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writePlannerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, planner.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, planner.ErrStopNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeNotifyError(c *gin.Context, err error) {
	if errors.Is(err, notify.ErrNotFound) {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}
	writeError(c, http.StatusInternalServerError, "internal error")
}

// pagination reads page/limit query params with sane defaults.
func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
