package models

// TransactionKind classifies a ledger entry.
type TransactionKind string

const (
	KindIncome        TransactionKind = "income"
	KindExpense       TransactionKind = "expense"
	KindCreditPayment TransactionKind = "credit_payment"
)

// PaymentMethod is how a transaction was funded. The set is closed;
// anything outside it must be recorded as MethodOther.
type PaymentMethod string

const (
	MethodCash           PaymentMethod = "cash"
	MethodDebit          PaymentMethod = "debit"
	MethodInternalCredit PaymentMethod = "internal_credit"
	MethodTransfer       PaymentMethod = "transfer"
	MethodPlanDeposit    PaymentMethod = "plan_deposit"
	MethodOther          PaymentMethod = "other"
)

// CategorySavings is the category stamped on the companion expense
// created by a savings-plan deposit.
const CategorySavings = "Savings"

// DefaultCategories is surfaced to the presentation layer for pickers.
// Categories remain free-form strings in the ledger itself.
var DefaultCategories = []string{
	"Food", "Rent", "Transport", "Utilities",
	"Entertainment", "Health", "Salary", "Freelance", "Other",
}

// Transaction is a single ledger entry: the system of record.
// Rows are never updated in place; they are created and, at most, deleted.
//
// Date is always a fixed-width "YYYY-MM-DD" string. Storage and every
// date-ordered or month-prefixed query depend on that invariant.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Kind        TransactionKind `gorm:"not null;index" json:"kind"`
	Category    string          `gorm:"index" json:"category"`
	Amount      int64           `gorm:"type:bigint;not null;check:amount >= 0" json:"amount"`
	Date        string          `gorm:"size:10;not null;index" json:"date"`
	Description string          `json:"description"`
	Method      PaymentMethod   `json:"method"`
}

// IsCreditFunded reports whether the entry increases the internal
// credit balance when created.
func (t *Transaction) IsCreditFunded() bool {
	return t.Kind == KindExpense && t.Method == MethodInternalCredit
}

// ValidKind reports whether k is one of the three ledger entry kinds.
func ValidKind(k TransactionKind) bool {
	switch k {
	case KindIncome, KindExpense, KindCreditPayment:
		return true
	}
	return false
}

// ValidMethod reports whether m belongs to the closed payment-method set.
func ValidMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodDebit, MethodInternalCredit, MethodTransfer, MethodPlanDeposit, MethodOther:
		return true
	}
	return false
}
