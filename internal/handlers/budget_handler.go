package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "centavo/internal/errors"
	"centavo/internal/services"
)

// BudgetHandler handles per-category monthly budgets.
type BudgetHandler struct {
	ledgerService services.LedgerServicer
	reportService services.ReportServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(ledgerService services.LedgerServicer, reportService services.ReportServicer) *BudgetHandler {
	return &BudgetHandler{ledgerService: ledgerService, reportService: reportService}
}

// UpsertBudgetRequest sets a monthly limit (cents) for a category.
type UpsertBudgetRequest struct {
	Category     string `json:"category" binding:"required,max=100"`
	MonthlyLimit int64  `json:"monthly_limit" binding:"required,gt=0"`
}

// UpsertBudget inserts or overwrites the budget for a category.
func (h *BudgetHandler) UpsertBudget(c *gin.Context) {
	var req UpsertBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.ledgerService.UpsertBudget(req.Category, req.MonthlyLimit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetBudgets lists all configured budgets.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	budgets, err := h.ledgerService.GetBudgets()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// GetBudgetComparison returns spend-vs-limit for the current month.
func (h *BudgetHandler) GetBudgetComparison(c *gin.Context) {
	comparisons, err := h.reportService.GetBudgetComparison()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparison": comparisons})
}
