package services

import (
	"io"

	"centavo/internal/models"
)

// LedgerServicer is the single write surface of the store. Every
// mutation that carries a cross-table side effect (credit balance, plan
// balance) happens inside one atomic unit of work.
type LedgerServicer interface {
	CreateTransaction(kind models.TransactionKind, category string, amount int64, date, description string, method models.PaymentMethod) (*models.Transaction, error)
	DeleteTransaction(id uint) error
	DepositToPlan(planID uint, amount int64) (*models.SavingsPlan, error)

	GetCreditInfo() (*models.CreditConfig, error)
	UpdateCreditLimit(newLimit int64) (*models.CreditConfig, error)
	ReconcileCredit() (*CreditReconciliation, error)

	CreatePlan(name string, targetAmount int64, dueDate, color string) (*models.SavingsPlan, error)
	GetPlans() ([]models.SavingsPlan, error)
	DeletePlan(id uint) error

	UpsertBudget(category string, monthlyLimit int64) (*models.Budget, error)
	GetBudgets() ([]models.Budget, error)

	AddRecurring(name string, amount int64, dayOfMonth int, category string) (*models.RecurringCharge, error)
	GetRecurring() ([]models.RecurringCharge, error)
	DeleteRecurring(id uint) error
}

// TransactionServicer is the validation façade callers must go through
// for transaction creation. Structural checks happen here, in memory,
// before any I/O; balance-dependent checks stay inside the ledger's
// atomic write path.
type TransactionServicer interface {
	CreateTransaction(kind models.TransactionKind, category string, amount int64, date, description string, method models.PaymentMethod) (*models.Transaction, error)
}

// Summary holds the income/expense totals of the whole ledger.
// Credit-payment rows are excluded from both sides: the cash outflow was
// already counted when the credit-funded expense was recorded.
type Summary struct {
	TotalIncome  int64 `json:"total_income"`
	TotalExpense int64 `json:"total_expense"`
	Balance      int64 `json:"balance"`
}

// CategoryTotal is one row of the per-category expense aggregation.
// Categories group by exact string; the empty category is its own group.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

// BudgetComparison pairs a configured budget with the amount spent in
// its category during the current calendar month.
type BudgetComparison struct {
	Category     string `json:"category"`
	Spent        int64  `json:"spent"`
	MonthlyLimit int64  `json:"monthly_limit"`
}

// ReportServicer is the pure read side: every call recomputes from the
// ledger, so results are trivially consistent with the store.
type ReportServicer interface {
	GetSummary() (*Summary, error)
	GetExpensesByCategory() ([]CategoryTotal, error)
	GetBudgetComparison() ([]BudgetComparison, error)
	GetRecentTransactions(windowDays int) ([]models.Transaction, error)
	GetTransactions(limit int) ([]models.Transaction, error)
}

// PlanReconciliation reports one plan's stored balance against the
// balance recomputed from its deposit transactions.
type PlanReconciliation struct {
	PlanID   uint   `json:"plan_id"`
	Name     string `json:"name"`
	Stored   int64  `json:"stored"`
	Computed int64  `json:"computed"`
	Drift    int64  `json:"drift"`
}

// CreditReconciliation reports the stored credit balance against the
// balance recomputed from the transaction history. Drift of zero means
// the procedural invariants held.
type CreditReconciliation struct {
	StoredUsed   int64                `json:"stored_used"`
	ComputedUsed int64                `json:"computed_used"`
	Drift        int64                `json:"drift"`
	Plans        []PlanReconciliation `json:"plans"`
}

// ExportServicer serializes the ledger for the export/backup
// collaborators. Neither operation mutates ledger state.
type ExportServicer interface {
	ExportTransactionsCSV(w io.Writer) error
	ReadTransactionsCSV(r io.Reader) ([]models.Transaction, error)
	BackupStore() (string, error)
}
