// README: Wallet handlers for balance, top-up, and statement.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/http/middleware"
	"shuttle/internal/modules/wallet"
	"shuttle/internal/types"
)

type WalletHandler struct {
	wallet *wallet.Service
}

func NewWalletHandler(svc *wallet.Service) *WalletHandler {
	return &WalletHandler{wallet: svc}
}

func (h *WalletHandler) Balance(c *gin.Context) {
	userID := types.ID(middleware.CallerUID(c))
	balance, err := h.wallet.Balance(c.Request.Context(), userID)
	if err != nil {
		writeWalletError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"balance": balance})
}

type topUpReq struct {
	Points int64 `json:"points"`
}

func (h *WalletHandler) TopUp(c *gin.Context) {
	var req topUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	userID := types.ID(middleware.CallerUID(c))
	balance, err := h.wallet.TopUp(c.Request.Context(), userID, req.Points)
	if err != nil {
		writeWalletError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"balance": balance})
}

func (h *WalletHandler) Statement(c *gin.Context) {
	page, limit := pagination(c)
	userID := types.ID(middleware.CallerUID(c))
	txs, err := h.wallet.Statement(c.Request.Context(), userID, page, limit)
	if err != nil {
		writeWalletError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"transactions": txs,
		"page":         page,
		"limit":        limit,
	})
}
