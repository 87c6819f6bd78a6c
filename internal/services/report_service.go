package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
)

// reportService is the read-only aggregation side. Nothing is cached:
// every call recomputes from the ledger, trading repeated scans for
// trivial consistency with the store.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

func (s *reportService) sumAmount(query *gorm.DB) (int64, error) {
	var total int64
	if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// GetSummary sums income and expense over the whole ledger.
// Credit payments count toward neither side; that cash flow was already
// counted when the underlying credit-funded expense was recorded.
func (s *reportService) GetSummary() (*Summary, error) {
	income, err := s.sumAmount(s.db.Model(&models.Transaction{}).Where("kind = ?", models.KindIncome))
	if err != nil {
		return nil, err
	}
	expense, err := s.sumAmount(s.db.Model(&models.Transaction{}).Where("kind = ?", models.KindExpense))
	if err != nil {
		return nil, err
	}
	return &Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income - expense,
	}, nil
}

// GetExpensesByCategory groups expense rows by their exact category
// string; empty categories form their own group.
func (s *reportService) GetExpensesByCategory() ([]CategoryTotal, error) {
	var totals []CategoryTotal
	err := s.db.Model(&models.Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("kind = ?", models.KindExpense).
		Group("category").
		Order("category ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return totals, nil
}

// GetBudgetComparison pairs every configured budget with the spend in
// its category this calendar month. Month selection is a string-prefix
// match on the date column, which is correct because dates are always
// stored as fixed-width YYYY-MM-DD.
func (s *reportService) GetBudgetComparison() ([]BudgetComparison, error) {
	var budgets []models.Budget
	if err := s.db.Order("category ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	monthPrefix := time.Now().Format("2006-01") + "%"

	comparisons := make([]BudgetComparison, 0, len(budgets))
	for _, budget := range budgets {
		spent, err := s.sumAmount(s.db.Model(&models.Transaction{}).
			Where("kind = ? AND category = ? AND date LIKE ?", models.KindExpense, budget.Category, monthPrefix))
		if err != nil {
			return nil, err
		}
		comparisons = append(comparisons, BudgetComparison{
			Category:     budget.Category,
			Spent:        spent,
			MonthlyLimit: budget.MonthlyLimit,
		})
	}
	return comparisons, nil
}

// GetRecentTransactions returns every transaction dated within the last
// windowDays, ascending by date with id as insertion-order tiebreak.
func (s *reportService) GetRecentTransactions(windowDays int) ([]models.Transaction, error) {
	if windowDays <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "window must be at least one day")
	}

	cutoff := time.Now().AddDate(0, 0, -windowDays).Format("2006-01-02")

	var transactions []models.Transaction
	err := s.db.Where("date >= ?", cutoff).
		Order("date ASC, id ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetTransactions returns the most recent limit transactions, newest
// first; same-day rows fall back to reverse insertion order.
func (s *reportService) GetTransactions(limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be at least one")
	}

	var transactions []models.Transaction
	err := s.db.Order("date DESC, id DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
