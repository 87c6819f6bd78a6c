package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
)

// ledgerService is the durable, atomic write surface of the store.
//
// The sqlite store is opened with _txlock=immediate, so every unit of
// work below holds the write lock from its first statement: the credit
// balance can never be read by one writer and updated by another in
// between. The credit check itself is also phrased as a guarded UPDATE,
// which keeps the no-lost-update property on any driver.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// planContributionDescription is the description stamped on the
// companion expense of a plan deposit. ReconcileCredit relies on the
// exact format to re-attribute deposits to plans.
func planContributionDescription(planName string) string {
	return "Plan contribution: " + planName
}

// CreateTransaction inserts a ledger row and applies its credit side
// effect in one atomic unit of work. On any failure nothing is
// persisted: not the row, not the balance change.
func (s *ledgerService) CreateTransaction(
	kind models.TransactionKind,
	category string,
	amount int64,
	date, description string,
	method models.PaymentMethod,
) (*models.Transaction, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be non-negative")
	}

	transaction := &models.Transaction{
		Kind:        kind,
		Category:    category,
		Amount:      amount,
		Date:        date,
		Description: description,
		Method:      method,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.applyCreditEffect(tx, transaction)
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// applyCreditEffect updates the credit singleton for entries that touch
// the internal credit line. Must run inside the same transaction that
// created (or is about to delete) the row.
func (s *ledgerService) applyCreditEffect(tx *gorm.DB, transaction *models.Transaction) error {
	switch {
	case transaction.IsCreditFunded():
		cfg, err := creditConfig(tx)
		if err != nil {
			return err
		}
		// Guarded increment: succeeds only while used + amount stays
		// within the limit, no matter what ran since the read above.
		res := tx.Model(&models.CreditConfig{}).
			Where("id = ? AND used + ? <= limit_total", cfg.ID, transaction.Amount).
			UpdateColumn("used", gorm.Expr("used + ?", transaction.Amount))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrCreditLimitExceeded
		}

	case transaction.Kind == models.KindCreditPayment:
		cfg, err := creditConfig(tx)
		if err != nil {
			return err
		}
		// Payments cannot drive the balance negative; excess is capped.
		res := tx.Model(&models.CreditConfig{}).
			Where("id = ?", cfg.ID).
			UpdateColumn("used", gorm.Expr("CASE WHEN used > ? THEN used - ? ELSE 0 END", transaction.Amount, transaction.Amount))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
	}
	return nil
}

// reverseCreditEffect undoes exactly what applyCreditEffect did for the
// given row.
func (s *ledgerService) reverseCreditEffect(tx *gorm.DB, transaction *models.Transaction) error {
	switch {
	case transaction.IsCreditFunded():
		cfg, err := creditConfig(tx)
		if err != nil {
			return err
		}
		res := tx.Model(&models.CreditConfig{}).
			Where("id = ?", cfg.ID).
			UpdateColumn("used", gorm.Expr("CASE WHEN used > ? THEN used - ? ELSE 0 END", transaction.Amount, transaction.Amount))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}

	case transaction.Kind == models.KindCreditPayment:
		cfg, err := creditConfig(tx)
		if err != nil {
			return err
		}
		res := tx.Model(&models.CreditConfig{}).
			Where("id = ?", cfg.ID).
			UpdateColumn("used", gorm.Expr("used + ?", transaction.Amount))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
	}
	return nil
}

// creditConfig fetches the singleton row, distinguishing an absent row
// (corrupted or uninitialized store) from an I/O failure.
func creditConfig(tx *gorm.DB) (*models.CreditConfig, error) {
	var cfg models.CreditConfig
	if err := tx.First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCreditConfigMissing
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &cfg, nil
}

// DeleteTransaction removes a row and reverses the credit side effect
// its creation caused, atomically. A missing id is a benign no-op.
//
// Lookup, delete, and reversal all live in one unit of work, and the
// reversal only fires when this call is the one that removed the row.
// Two callers racing on the same id therefore reverse the balance
// exactly once between them.
func (s *ledgerService) DeleteTransaction(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		if err := tx.First(&transaction, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		res := tx.Delete(&transaction)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return s.reverseCreditEffect(tx, &transaction)
	})
}

// DepositToPlan records progress toward a savings goal. The deposit is
// simultaneously a cash outflow and plan progress, so the companion
// expense row and the balance increment are committed together or not
// at all.
func (s *ledgerService) DepositToPlan(planID uint, amount int64) (*models.SavingsPlan, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "deposit amount must be greater than zero")
	}

	var plan models.SavingsPlan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&plan, planID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrPlanNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		companion := &models.Transaction{
			Kind:        models.KindExpense,
			Category:    models.CategorySavings,
			Amount:      amount,
			Date:        time.Now().Format("2006-01-02"),
			Description: planContributionDescription(plan.Name),
			Method:      models.MethodPlanDeposit,
		}
		if err := tx.Create(companion).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		res := tx.Model(&models.SavingsPlan{}).
			Where("id = ?", plan.ID).
			UpdateColumn("current_amount", gorm.Expr("current_amount + ?", amount))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}

		return tx.First(&plan, plan.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetCreditInfo returns a copy of the credit singleton.
func (s *ledgerService) GetCreditInfo() (*models.CreditConfig, error) {
	return creditConfig(s.db)
}

// UpdateCreditLimit sets a new total limit. Lowering the limit below the
// current used balance is allowed; it only blocks further credit-funded
// expenses.
func (s *ledgerService) UpdateCreditLimit(newLimit int64) (*models.CreditConfig, error) {
	if newLimit < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "credit limit must be non-negative")
	}

	cfg, err := creditConfig(s.db)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(cfg).UpdateColumn("limit_total", newLimit).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	cfg.Limit = newLimit
	return cfg, nil
}

// ReconcileCredit recomputes the credit balance and every plan balance
// from the transaction history and reports drift against the stored
// values. Diagnostic only; it never writes.
func (s *ledgerService) ReconcileCredit() (*CreditReconciliation, error) {
	cfg, err := creditConfig(s.db)
	if err != nil {
		return nil, err
	}

	var creditSpent, creditPaid int64
	if err := s.db.Model(&models.Transaction{}).
		Where("kind = ? AND method = ?", models.KindExpense, models.MethodInternalCredit).
		Select("COALESCE(SUM(amount), 0)").Scan(&creditSpent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.Transaction{}).
		Where("kind = ?", models.KindCreditPayment).
		Select("COALESCE(SUM(amount), 0)").Scan(&creditPaid).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	computed := creditSpent - creditPaid
	if computed < 0 {
		computed = 0
	}

	result := &CreditReconciliation{
		StoredUsed:   cfg.Used,
		ComputedUsed: computed,
		Drift:        cfg.Used - computed,
	}

	plans, err := s.GetPlans()
	if err != nil {
		return nil, err
	}
	for _, plan := range plans {
		var deposited int64
		if err := s.db.Model(&models.Transaction{}).
			Where("method = ? AND description = ?", models.MethodPlanDeposit, planContributionDescription(plan.Name)).
			Select("COALESCE(SUM(amount), 0)").Scan(&deposited).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result.Plans = append(result.Plans, PlanReconciliation{
			PlanID:   plan.ID,
			Name:     plan.Name,
			Stored:   plan.CurrentAmount,
			Computed: deposited,
			Drift:    plan.CurrentAmount - deposited,
		})
	}

	return result, nil
}

// CreatePlan creates a savings plan with a zero starting balance.
// Names must be unique; deposit reconciliation keys on them.
func (s *ledgerService) CreatePlan(name string, targetAmount int64, dueDate, color string) (*models.SavingsPlan, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "plan name is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}

	plan := &models.SavingsPlan{
		Name:         name,
		TargetAmount: targetAmount,
		DueDate:      dueDate,
		Color:        color,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.SavingsPlan{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "a plan named "+name+" already exists")
		}
		if err := tx.Create(plan).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// GetPlans returns all savings plans.
func (s *ledgerService) GetPlans() ([]models.SavingsPlan, error) {
	var plans []models.SavingsPlan
	if err := s.db.Order("id ASC").Find(&plans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return plans, nil
}

// DeletePlan removes a plan. Its past deposit transactions stay in the
// ledger: the cash already left.
func (s *ledgerService) DeletePlan(id uint) error {
	res := s.db.Delete(&models.SavingsPlan{}, id)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrPlanNotFound
	}
	return nil
}

// UpsertBudget inserts a budget for an unseen category or overwrites
// the existing limit.
func (s *ledgerService) UpsertBudget(category string, monthlyLimit int64) (*models.Budget, error) {
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget category is required")
	}
	if monthlyLimit <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget limit must be greater than zero")
	}

	budget := &models.Budget{Category: category, MonthlyLimit: monthlyLimit}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"monthly_limit"}),
	}).Create(budget).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Re-read so the caller sees the row id on the overwrite path too.
	var saved models.Budget
	if err := s.db.Where("category = ?", category).First(&saved).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &saved, nil
}

// GetBudgets returns all configured budgets.
func (s *ledgerService) GetBudgets() ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Order("category ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// AddRecurring registers a declarative monthly charge.
func (s *ledgerService) AddRecurring(name string, amount int64, dayOfMonth int, category string) (*models.RecurringCharge, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "recurring charge name is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "recurring charge amount must be greater than zero")
	}
	if dayOfMonth < 1 || dayOfMonth > 31 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("day of month %d is out of range 1-31", dayOfMonth))
	}

	charge := &models.RecurringCharge{
		Name:       name,
		Amount:     amount,
		DayOfMonth: dayOfMonth,
		Category:   category,
		Active:     true,
	}
	if err := s.db.Create(charge).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return charge, nil
}

// GetRecurring returns all active recurring charges ordered by their
// day of month.
func (s *ledgerService) GetRecurring() ([]models.RecurringCharge, error) {
	var charges []models.RecurringCharge
	if err := s.db.Where("active = ?", true).Order("day_of_month ASC").Find(&charges).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return charges, nil
}

// DeleteRecurring removes a recurring charge.
func (s *ledgerService) DeleteRecurring(id uint) error {
	res := s.db.Delete(&models.RecurringCharge{}, id)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRecurringNotFound
	}
	return nil
}
