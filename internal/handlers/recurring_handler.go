package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "centavo/internal/errors"
	"centavo/internal/services"
)

// RecurringHandler handles the declarative list of recurring charges.
type RecurringHandler struct {
	ledgerService services.LedgerServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(ledgerService services.LedgerServicer) *RecurringHandler {
	return &RecurringHandler{ledgerService: ledgerService}
}

// AddRecurringRequest registers a monthly charge (amount in cents).
type AddRecurringRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	DayOfMonth int    `json:"day_of_month" binding:"required,min=1,max=31"`
	Category   string `json:"category" binding:"max=100"`
}

// AddRecurring registers a new recurring charge.
func (h *RecurringHandler) AddRecurring(c *gin.Context) {
	var req AddRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	charge, err := h.ledgerService.AddRecurring(req.Name, req.Amount, req.DayOfMonth, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recurring": charge})
}

// GetRecurring lists active recurring charges.
func (h *RecurringHandler) GetRecurring(c *gin.Context) {
	charges, err := h.ledgerService.GetRecurring()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring": charges})
}

// DeleteRecurring removes a recurring charge.
func (h *RecurringHandler) DeleteRecurring(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledgerService.DeleteRecurring(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
