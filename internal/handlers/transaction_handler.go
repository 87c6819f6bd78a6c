package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
	"centavo/internal/services"
)

// defaultListLimit bounds unqualified transaction listings.
const defaultListLimit = 50

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	ledgerService      services.LedgerServicer
	reportService      services.ReportServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(
	transactionService services.TransactionServicer,
	ledgerService services.LedgerServicer,
	reportService services.ReportServicer,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		ledgerService:      ledgerService,
		reportService:      reportService,
	}
}

// CreateTransactionRequest is the payload for recording a ledger entry.
// Amount is in cents. An empty date defaults to today.
type CreateTransactionRequest struct {
	Kind        models.TransactionKind `json:"kind" binding:"required,transaction_kind"`
	Category    string                 `json:"category" binding:"max=100"`
	Amount      int64                  `json:"amount" binding:"required,gt=0"`
	Date        string                 `json:"date" binding:"omitempty,tx_date"`
	Description string                 `json:"description" binding:"max=500"`
	Method      models.PaymentMethod   `json:"method" binding:"required,payment_method"`
}

// CreateTransaction records a new ledger entry through the validation
// façade.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(
		req.Kind, req.Category, req.Amount, req.Date, req.Description, req.Method)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions lists the most recent transactions, newest first.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	transactions, err := h.reportService.GetTransactions(limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// GetRecentTransactions lists transactions within a trailing day window,
// oldest first; this is the input feed of the savings-rate estimator.
func (h *TransactionHandler) GetRecentTransactions(c *gin.Context) {
	days := 90
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "days must be a positive integer"))
			return
		}
		days = parsed
	}

	transactions, err := h.reportService.GetRecentTransactions(days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions, "window_days": days})
}

// DeleteTransaction removes a ledger entry, reversing its credit side
// effect. Deleting an id that does not exist is still a 204.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledgerService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
