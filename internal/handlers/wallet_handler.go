package handlers

import (
	"net/http"

	"taxigo/internal/services"
	"taxigo/internal/utils"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	ledgerService services.LedgerService
}

func NewWalletHandler(ledgerService services.LedgerService) *WalletHandler {
	return &WalletHandler{ledgerService: ledgerService}
}

type TopUpRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// GetWallet handles GET /wallet
func (h *WalletHandler) GetWallet(c *gin.Context) {
	wallet, err := h.ledgerService.Wallet(c.Request.Context())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// TopUp handles POST /wallet/topup
func (h *WalletHandler) TopUp(c *gin.Context) {
	var request TopUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&request); err != nil {
		utils.BadRequestResponse(c, "amount must be greater than zero")
		return
	}

	balance, err := h.ledgerService.TopUp(c.Request.Context(), request.Amount)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "balance": balance})
}

// ListTransactions handles GET /transactions
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	transactions, err := h.ledgerService.Transactions(c.Request.Context())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, transactions)
}
