package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"centavo/internal/auth"
	apperrors "centavo/internal/errors"
	"centavo/internal/middleware"
)

// AuthHandler fronts the PIN gate collaborator and issues session
// tokens. It never touches the ledger.
type AuthHandler struct {
	store *auth.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store *auth.Store) *AuthHandler {
	return &AuthHandler{store: store}
}

// Status reports whether first-time setup is still pending.
func (h *AuthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"first_time": h.store.IsFirstTime()})
}

// SetupRequest configures the PIN, optional recovery pair, and profile.
type SetupRequest struct {
	PIN              string `json:"pin" binding:"required,min=4,max=32"`
	RecoveryQuestion string `json:"recovery_question" binding:"max=200"`
	RecoveryAnswer   string `json:"recovery_answer" binding:"max=200"`
	Name             string `json:"name" binding:"max=100"`
	Surname          string `json:"surname" binding:"max=100"`
	Age              int    `json:"age" binding:"omitempty,min=1,max=150"`
}

// Setup performs first-time configuration and logs the owner in.
func (h *AuthHandler) Setup(c *gin.Context) {
	var req SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile := auth.Profile{Name: req.Name, Surname: req.Surname, Age: req.Age}
	if err := h.store.Setup(req.PIN, req.RecoveryQuestion, req.RecoveryAnswer, profile); err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateSessionToken()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// LoginRequest carries the PIN.
type LoginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// Login verifies the PIN and issues a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.store.VerifyPIN(req.PIN); err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateSessionToken()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// RecoveryQuestion returns the configured recovery question.
func (h *AuthHandler) RecoveryQuestion(c *gin.Context) {
	question, err := h.store.RecoveryQuestion()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recovery_question": question})
}

// RecoverRequest resets the PIN after answering the recovery question.
type RecoverRequest struct {
	Answer string `json:"answer" binding:"required"`
	NewPIN string `json:"new_pin" binding:"required,min=4,max=32"`
}

// Recover resets the PIN using the recovery answer.
func (h *AuthHandler) Recover(c *gin.Context) {
	var req RecoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.store.ResetPIN(req.Answer, req.NewPIN); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "pin_reset"})
}

// Profile returns the stored user profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	profile, err := h.store.Profile()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
