package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "centavo/internal/errors"
	"centavo/internal/services"
)

// PlanHandler handles savings plans.
type PlanHandler struct {
	ledgerService services.LedgerServicer
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(ledgerService services.LedgerServicer) *PlanHandler {
	return &PlanHandler{ledgerService: ledgerService}
}

// CreatePlanRequest is the payload for creating a savings plan.
type CreatePlanRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	TargetAmount int64  `json:"target_amount" binding:"required,gt=0"`
	DueDate      string `json:"due_date" binding:"omitempty,tx_date"`
	Color        string `json:"color" binding:"omitempty,hex_color"`
}

// CreatePlan creates a savings plan with a zero balance.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plan, err := h.ledgerService.CreatePlan(req.Name, req.TargetAmount, req.DueDate, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

// GetPlans lists all savings plans with a derived done flag.
func (h *PlanHandler) GetPlans(c *gin.Context) {
	plans, err := h.ledgerService.GetPlans()
	if err != nil {
		respondWithError(c, err)
		return
	}

	type planView struct {
		ID            uint   `json:"id"`
		Name          string `json:"name"`
		TargetAmount  int64  `json:"target_amount"`
		CurrentAmount int64  `json:"current_amount"`
		DueDate       string `json:"due_date,omitempty"`
		Color         string `json:"color,omitempty"`
		Done          bool   `json:"done"`
	}

	views := make([]planView, 0, len(plans))
	for _, p := range plans {
		views = append(views, planView{
			ID:            p.ID,
			Name:          p.Name,
			TargetAmount:  p.TargetAmount,
			CurrentAmount: p.CurrentAmount,
			DueDate:       p.DueDate,
			Color:         p.Color,
			Done:          p.Done(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"plans": views})
}

// DepositRequest carries a deposit amount in cents.
type DepositRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// Deposit records progress toward a plan, writing the companion expense
// and the balance increment atomically.
func (h *PlanHandler) Deposit(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plan, err := h.ledgerService.DepositToPlan(id, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// DeletePlan removes a savings plan.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledgerService.DeletePlan(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
