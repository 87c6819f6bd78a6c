package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"centavo/internal/models"
	"centavo/internal/testutil"
)

type mockBackuper struct {
	backupToFn func(targetDir string) (string, error)
}

func (m *mockBackuper) BackupTo(targetDir string) (string, error) {
	return m.backupToFn(targetDir)
}

func TestExportTransactionsCSV(t *testing.T) {
	t.Run("round_trip_preserves_every_field", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		seeded := []*models.Transaction{
			testutil.CreateTestTransaction(t, db, models.KindIncome, "Salary", 250000, "2026-08-01", models.MethodDebit),
			testutil.CreateTestTransaction(t, db, models.KindExpense, "Food", 1999, "2026-08-02", models.MethodInternalCredit),
			testutil.CreateTestTransaction(t, db, models.KindCreditPayment, "", 1999, "2026-08-03", models.MethodTransfer),
		}

		svc := NewExportService(NewReportService(db), &mockBackuper{}, "backups")

		var buf bytes.Buffer
		testutil.AssertNoError(t, svc.ExportTransactionsCSV(&buf))

		parsed, err := svc.ReadTransactionsCSV(&buf)
		testutil.AssertNoError(t, err)

		if len(parsed) != len(seeded) {
			t.Fatalf("expected %d rows, got %d", len(seeded), len(parsed))
		}

		byID := make(map[uint]models.Transaction, len(parsed))
		for _, tx := range parsed {
			byID[tx.ID] = tx
		}
		for _, want := range seeded {
			got, ok := byID[want.ID]
			if !ok {
				t.Errorf("row %d missing from export", want.ID)
				continue
			}
			if got.Kind != want.Kind || got.Category != want.Category ||
				got.Amount != want.Amount || got.Date != want.Date ||
				got.Method != want.Method {
				t.Errorf("row %d mismatch: got %+v want %+v", want.ID, got, *want)
			}
		}
	})

	t.Run("amounts_render_with_two_decimals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		testutil.CreateTestTransaction(t, db, models.KindExpense, "Food", 1050, "2026-08-02", models.MethodCash)

		svc := NewExportService(NewReportService(db), &mockBackuper{}, "backups")

		var buf bytes.Buffer
		testutil.AssertNoError(t, svc.ExportTransactionsCSV(&buf))

		if !strings.Contains(buf.String(), "10.50") {
			t.Errorf("expected amount rendered as 10.50, got:\n%s", buf.String())
		}
	})

	t.Run("empty_ledger_exports_header_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		svc := NewExportService(NewReportService(db), &mockBackuper{}, "backups")

		var buf bytes.Buffer
		testutil.AssertNoError(t, svc.ExportTransactionsCSV(&buf))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 || !strings.HasPrefix(lines[0], "id,kind,category") {
			t.Errorf("expected a lone header line, got:\n%s", buf.String())
		}
	})
}

func TestReadTransactionsCSV(t *testing.T) {
	svc := NewExportService(nil, &mockBackuper{}, "backups")

	t.Run("rejects_empty_input", func(t *testing.T) {
		_, err := svc.ReadTransactionsCSV(strings.NewReader(""))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_bad_amount", func(t *testing.T) {
		csv := "id,kind,category,amount,date,description,method\n1,expense,Food,abc,2026-08-01,,cash\n"
		_, err := svc.ReadTransactionsCSV(strings.NewReader(csv))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_ragged_rows", func(t *testing.T) {
		csv := "id,kind,category,amount,date,description,method\n1,expense,Food\n"
		_, err := svc.ReadTransactionsCSV(strings.NewReader(csv))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestBackupStore(t *testing.T) {
	t.Run("returns_backup_path", func(t *testing.T) {
		var gotDir string
		backuper := &mockBackuper{
			backupToFn: func(targetDir string) (string, error) {
				gotDir = targetDir
				return targetDir + "/backup_20260828_120000.db", nil
			},
		}
		svc := NewExportService(nil, backuper, "backups")

		path, err := svc.BackupStore()
		testutil.AssertNoError(t, err)
		if gotDir != "backups" {
			t.Errorf("expected configured backup dir, got %q", gotDir)
		}
		if path != "backups/backup_20260828_120000.db" {
			t.Errorf("unexpected backup path %q", path)
		}
	})

	t.Run("wraps_failure_as_backup_error", func(t *testing.T) {
		backuper := &mockBackuper{
			backupToFn: func(targetDir string) (string, error) {
				return "", errors.New("disk full")
			},
		}
		svc := NewExportService(nil, backuper, "backups")

		_, err := svc.BackupStore()
		testutil.AssertAppError(t, err, "BACKUP_FAILED")
	})
}
