// README: Route planner handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/modules/planner"
	"shuttle/internal/types"
)

type PlannerHandler struct {
	planner *planner.Service
}

func NewPlannerHandler(svc *planner.Service) *PlannerHandler {
	return &PlannerHandler{planner: svc}
}

type optimizeReq struct {
	FromStopID string `json:"fromStopId"`
	ToStopID   string `json:"toStopId"`
}

func (h *PlannerHandler) Optimize(c *gin.Context) {
	var req optimizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	plan, err := h.planner.Plan(c.Request.Context(), types.ID(req.FromStopID), types.ID(req.ToStopID))
	if err != nil {
		writePlannerError(c, err)
		return
	}
	if plan.Direct != nil {
		writeJSON(c, http.StatusOK, map[string]any{"type": "direct", "route": plan.Direct})
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"type": "transfer", "options": plan.Transfers})
}
