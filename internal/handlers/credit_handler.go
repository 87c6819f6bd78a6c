package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
	"centavo/internal/services"
)

// CreditHandler handles the internal credit line.
type CreditHandler struct {
	ledgerService      services.LedgerServicer
	transactionService services.TransactionServicer
}

// NewCreditHandler creates a new CreditHandler.
func NewCreditHandler(ledgerService services.LedgerServicer, transactionService services.TransactionServicer) *CreditHandler {
	return &CreditHandler{ledgerService: ledgerService, transactionService: transactionService}
}

// GetCreditInfo returns the current limit, used balance, and headroom.
func (h *CreditHandler) GetCreditInfo(c *gin.Context) {
	cfg, err := h.ledgerService.GetCreditInfo()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"limit":     cfg.Limit,
		"used":      cfg.Used,
		"available": cfg.Available(),
	})
}

// UpdateCreditLimitRequest carries the new limit in cents.
type UpdateCreditLimitRequest struct {
	Limit int64 `json:"limit" binding:"required,gte=0"`
}

// UpdateCreditLimit sets a new total credit limit.
func (h *CreditHandler) UpdateCreditLimit(c *gin.Context) {
	var req UpdateCreditLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cfg, err := h.ledgerService.UpdateCreditLimit(req.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"limit": cfg.Limit, "used": cfg.Used})
}

// PayCreditRequest carries a payment toward the used balance, in cents.
type PayCreditRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Date        string `json:"date" binding:"omitempty,tx_date"`
	Description string `json:"description" binding:"max=500"`
}

// PayCredit records a credit-payment transaction; the ledger caps the
// balance at zero if the payment overshoots.
func (h *CreditHandler) PayCredit(c *gin.Context) {
	var req PayCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(
		models.KindCreditPayment, "", req.Amount, req.Date, req.Description, models.MethodTransfer)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ReconcileCredit recomputes credit and plan balances from the ledger
// and reports any drift. Read-only diagnostic.
func (h *CreditHandler) ReconcileCredit(c *gin.Context) {
	result, err := h.ledgerService.ReconcileCredit()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reconciliation": result})
}
