package services

import (
	"testing"

	"centavo/internal/models"
	"centavo/internal/testutil"
)

func TestGetSummary(t *testing.T) {
	t.Run("empty_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		summary, err := svc.GetSummary()
		testutil.AssertNoError(t, err)
		if summary.TotalIncome != 0 || summary.TotalExpense != 0 || summary.Balance != 0 {
			t.Errorf("expected all-zero summary, got %+v", summary)
		}
	})

	t.Run("credit_payments_count_toward_neither_side", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		testutil.CreateTestTransaction(t, db, models.KindIncome, "Salary", 10000, testutil.Today(), models.MethodDebit)
		testutil.CreateTestTransaction(t, db, models.KindCreditPayment, "", 5000, testutil.Today(), models.MethodTransfer)

		summary, err := svc.GetSummary()
		testutil.AssertNoError(t, err)
		if summary.TotalIncome != 10000 {
			t.Errorf("expected income 10000, got %d", summary.TotalIncome)
		}
		if summary.TotalExpense != 0 {
			t.Errorf("expected expense 0, got %d", summary.TotalExpense)
		}
		if summary.Balance != 10000 {
			t.Errorf("expected balance 10000, got %d", summary.Balance)
		}
	})

	t.Run("balance_is_income_minus_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		testutil.CreateTestTransaction(t, db, models.KindIncome, "Salary", 250000, testutil.Today(), models.MethodDebit)
		testutil.CreateTestTransaction(t, db, models.KindExpense, "Rent", 90000, testutil.Today(), models.MethodDebit)
		testutil.CreateTestTransaction(t, db, models.KindExpense, "Food", 12500, testutil.Today(), models.MethodCash)

		summary, err := svc.GetSummary()
		testutil.AssertNoError(t, err)
		if summary.Balance != 250000-90000-12500 {
			t.Errorf("expected balance %d, got %d", 250000-90000-12500, summary.Balance)
		}
	})
}

func TestGetExpensesByCategory(t *testing.T) {
	t.Run("groups_by_exact_category_string", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		testutil.CreateTestTransaction(t, db, models.KindExpense, "Food", 1000, testutil.Today(), models.MethodCash)
		testutil.CreateTestTransaction(t, db, models.KindExpense, "Food", 2500, testutil.Today(), models.MethodDebit)
		testutil.CreateTestTransaction(t, db, models.KindExpense, "", 700, testutil.Today(), models.MethodCash)
		testutil.CreateTestTransaction(t, db, models.KindIncome, "Food", 9999, testutil.Today(), models.MethodDebit)

		totals, err := svc.GetExpensesByCategory()
		testutil.AssertNoError(t, err)

		if len(totals) != 2 {
			t.Fatalf("expected 2 groups (empty category is its own group), got %d: %+v", len(totals), totals)
		}
		// Ordered by category ASC, so the empty string sorts first.
		if totals[0].Category != "" || totals[0].Total != 700 {
			t.Errorf("expected empty-category group with total 700, got %+v", totals[0])
		}
		if totals[1].Category != "Food" || totals[1].Total != 3500 {
			t.Errorf("expected Food group with total 3500, got %+v", totals[1])
		}
	})

	t.Run("empty_ledger_returns_no_groups", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		totals, err := svc.GetExpensesByCategory()
		testutil.AssertNoError(t, err)
		if len(totals) != 0 {
			t.Errorf("expected no groups, got %+v", totals)
		}
	})
}

func TestGetBudgetComparison(t *testing.T) {
	t.Run("only_counts_current_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		testutil.CreateTestBudget(t, db, "Food", 30000)
		testutil.CreateTestTransaction(t, db, models.KindExpense, "Food", 5000, testutil.Today(), models.MethodCash)
		// Last month's spend must not count. 40 days back is always
		// outside the current calendar month.
		testutil.CreateTestTransaction(t, db, models.KindExpense, "Food", 8000, testutil.DaysAgo(40), models.MethodCash)

		comparisons, err := svc.GetBudgetComparison()
		testutil.AssertNoError(t, err)

		if len(comparisons) != 1 {
			t.Fatalf("expected one comparison, got %d", len(comparisons))
		}
		if comparisons[0].Spent != 5000 {
			t.Errorf("expected spent 5000 for current month, got %d", comparisons[0].Spent)
		}
		if comparisons[0].MonthlyLimit != 30000 {
			t.Errorf("expected limit 30000, got %d", comparisons[0].MonthlyLimit)
		}
	})

	t.Run("budget_with_no_spend_reports_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		testutil.CreateTestBudget(t, db, "Entertainment", 10000)

		comparisons, err := svc.GetBudgetComparison()
		testutil.AssertNoError(t, err)
		if len(comparisons) != 1 || comparisons[0].Spent != 0 {
			t.Errorf("expected zero spend, got %+v", comparisons)
		}
	})
}

func TestGetRecentTransactions(t *testing.T) {
	t.Run("window_filters_and_orders_ascending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		old := testutil.CreateTestTransaction(t, db, models.KindExpense, "Food", 100, testutil.DaysAgo(120), models.MethodCash)
		mid := testutil.CreateTestTransaction(t, db, models.KindExpense, "Food", 200, testutil.DaysAgo(10), models.MethodCash)
		recent := testutil.CreateTestTransaction(t, db, models.KindIncome, "Salary", 300, testutil.Today(), models.MethodDebit)

		transactions, err := svc.GetRecentTransactions(90)
		testutil.AssertNoError(t, err)

		if len(transactions) != 2 {
			t.Fatalf("expected 2 transactions in a 90-day window, got %d", len(transactions))
		}
		if transactions[0].ID != mid.ID || transactions[1].ID != recent.ID {
			t.Errorf("expected ascending date order [%d %d], got [%d %d]",
				mid.ID, recent.ID, transactions[0].ID, transactions[1].ID)
		}
		for _, tx := range transactions {
			if tx.ID == old.ID {
				t.Error("transaction outside the window leaked into the result")
			}
		}
	})

	t.Run("same_day_rows_keep_insertion_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		first := testutil.CreateTestTransaction(t, db, models.KindExpense, "Food", 100, testutil.Today(), models.MethodCash)
		second := testutil.CreateTestTransaction(t, db, models.KindExpense, "Food", 200, testutil.Today(), models.MethodCash)

		transactions, err := svc.GetRecentTransactions(7)
		testutil.AssertNoError(t, err)
		if len(transactions) != 2 || transactions[0].ID != first.ID || transactions[1].ID != second.ID {
			t.Errorf("expected insertion order [%d %d], got %+v", first.ID, second.ID, transactions)
		}
	})

	t.Run("non_positive_window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		_, err := svc.GetRecentTransactions(0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetTransactions(t *testing.T) {
	t.Run("newest_first_with_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		testutil.CreateTestTransaction(t, db, models.KindExpense, "Food", 100, testutil.DaysAgo(2), models.MethodCash)
		yesterday := testutil.CreateTestTransaction(t, db, models.KindExpense, "Food", 200, testutil.DaysAgo(1), models.MethodCash)
		today := testutil.CreateTestTransaction(t, db, models.KindIncome, "Salary", 300, testutil.Today(), models.MethodDebit)

		transactions, err := svc.GetTransactions(2)
		testutil.AssertNoError(t, err)

		if len(transactions) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(transactions))
		}
		if transactions[0].ID != today.ID || transactions[1].ID != yesterday.ID {
			t.Errorf("expected newest first [%d %d], got [%d %d]",
				today.ID, yesterday.ID, transactions[0].ID, transactions[1].ID)
		}
	})

	t.Run("non_positive_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		_, err := svc.GetTransactions(0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
