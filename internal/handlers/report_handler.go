package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "centavo/internal/errors"
	"centavo/internal/finance"
	"centavo/internal/services"
)

// ReportHandler serves the read-side aggregations and the what-if
// projection.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetSummary returns total income and expense over the whole ledger.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.reportService.GetSummary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetExpensesByCategory returns expense totals grouped by category.
func (h *ReportHandler) GetExpensesByCategory(c *gin.Context) {
	totals, err := h.reportService.GetExpensesByCategory()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": totals})
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, name+" must be a positive integer")
	}
	return parsed, nil
}

// GetProjection simulates compound growth of the current balance plus
// the estimated monthly savings rate. The snapshot is pulled once from
// the ledger; nothing is written back.
func (h *ReportHandler) GetProjection(c *gin.Context) {
	months, err := queryInt(c, "months", 120)
	if err != nil {
		respondWithError(c, err)
		return
	}
	windowDays, err := queryInt(c, "window_days", 90)
	if err != nil {
		respondWithError(c, err)
		return
	}

	annualRate := 0.08
	if raw := c.Query("rate"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "rate must be a non-negative number"))
			return
		}
		annualRate = parsed
	}

	summary, err := h.reportService.GetSummary()
	if err != nil {
		respondWithError(c, err)
		return
	}
	recent, err := h.reportService.GetRecentTransactions(windowDays)
	if err != nil {
		respondWithError(c, err)
		return
	}

	average := finance.AverageMonthlySavings(recent, windowDays)

	// The simulation assumes a contribution, not a drain: a negative
	// savings rate is surfaced but contributes zero.
	contribution := average
	if contribution < 0 {
		contribution = 0
	}

	timePoints, amounts := finance.CompoundGrowth(float64(summary.Balance), contribution, annualRate, months)

	c.JSON(http.StatusOK, gin.H{
		"principal":               summary.Balance,
		"average_monthly_savings": average,
		"monthly_contribution":    contribution,
		"annual_rate":             annualRate,
		"months":                  timePoints,
		"amounts":                 amounts,
	})
}
