package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"centavo/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Today returns the current date in the ledger's YYYY-MM-DD format.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// DaysAgo returns the date n days before today in YYYY-MM-DD format.
func DaysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format("2006-01-02")
}

// SeedCreditConfig inserts the credit singleton with the given limit
// and used balance (both in cents).
func SeedCreditConfig(t *testing.T, db *gorm.DB, limit, used int64) *models.CreditConfig {
	t.Helper()

	cfg := &models.CreditConfig{Limit: limit, Used: used}
	if err := db.Create(cfg).Error; err != nil {
		t.Fatalf("failed to seed credit config: %v", err)
	}
	return cfg
}

// CreateTestTransaction inserts a ledger row directly, bypassing the
// services, for read-side tests.
func CreateTestTransaction(t *testing.T, db *gorm.DB, kind models.TransactionKind, category string, amount int64, date string, method models.PaymentMethod) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		Kind:     kind,
		Category: category,
		Amount:   amount,
		Date:     date,
		Method:   method,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestPlan inserts a savings plan with a zero balance.
func CreateTestPlan(t *testing.T, db *gorm.DB, target int64) *models.SavingsPlan {
	t.Helper()

	plan := &models.SavingsPlan{
		Name:         fmt.Sprintf("Test Plan %d", nextID()),
		TargetAmount: target,
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to create test plan: %v", err)
	}
	return plan
}

// CreateTestBudget inserts a budget for the given category.
func CreateTestBudget(t *testing.T, db *gorm.DB, category string, monthlyLimit int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{Category: category, MonthlyLimit: monthlyLimit}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestRecurring inserts an active recurring charge.
func CreateTestRecurring(t *testing.T, db *gorm.DB, dayOfMonth int) *models.RecurringCharge {
	t.Helper()

	charge := &models.RecurringCharge{
		Name:       fmt.Sprintf("Test Charge %d", nextID()),
		Amount:     999,
		DayOfMonth: dayOfMonth,
		Active:     true,
	}
	if err := db.Create(charge).Error; err != nil {
		t.Fatalf("failed to create test recurring charge: %v", err)
	}
	return charge
}
