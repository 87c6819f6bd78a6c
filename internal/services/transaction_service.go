package services

import (
	"time"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
)

// transactionService is the validation façade in front of the ledger
// store. Cheap structural mistakes are rejected here, before any I/O;
// balance-dependent rules (the credit limit) are only ever evaluated
// inside the ledger's atomic write path, where the read and the write
// cannot be separated by another writer.
type transactionService struct {
	ledger LedgerServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(ledger LedgerServicer) TransactionServicer {
	return &transactionService{ledger: ledger}
}

// CreateTransaction validates the request and delegates to the ledger
// store's atomic create. Ledger errors propagate unchanged, so a
// CREDIT_LIMIT_EXCEEDED surfaces identically regardless of which layer
// raised it.
func (s *transactionService) CreateTransaction(
	kind models.TransactionKind,
	category string,
	amount int64,
	date, description string,
	method models.PaymentMethod,
) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !models.ValidKind(kind) {
		return nil, apperrors.ErrInvalidKind
	}
	if !models.ValidMethod(method) {
		return nil, apperrors.ErrInvalidMethod
	}

	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if !ValidDate(date) {
		return nil, apperrors.ErrInvalidDate
	}

	return s.ledger.CreateTransaction(kind, category, amount, date, description, method)
}

// ValidDate reports whether s is a real calendar date in the fixed-width
// YYYY-MM-DD format the store depends on for lexicographic ordering and
// month-prefix filtering.
func ValidDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
