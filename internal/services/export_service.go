package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
)

// exportFetchLimit is "all transactions" for export purposes.
const exportFetchLimit = 10000

var csvHeader = []string{"id", "kind", "category", "amount", "date", "description", "method"}

// StoreBackuper copies the raw persisted store to a target directory.
type StoreBackuper interface {
	BackupTo(targetDir string) (string, error)
}

// exportService serializes the ledger to CSV and drives store backups.
// Both operations are read-only with respect to ledger state.
type exportService struct {
	reports   ReportServicer
	backuper  StoreBackuper
	backupDir string
}

// NewExportService creates a new ExportServicer.
func NewExportService(reports ReportServicer, backuper StoreBackuper, backupDir string) ExportServicer {
	return &exportService{reports: reports, backuper: backuper, backupDir: backupDir}
}

// ExportTransactionsCSV writes all transactions to w as CSV, newest
// first. Amounts are rendered as fixed two-decimal strings.
func (s *exportService) ExportTransactionsCSV(w io.Writer) error {
	transactions, err := s.reports.GetTransactions(exportFetchLimit)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, t := range transactions {
		record := []string{
			strconv.FormatUint(uint64(t.ID), 10),
			string(t.Kind),
			t.Category,
			decimal.New(t.Amount, -2).StringFixed(2),
			t.Date,
			t.Description,
			string(t.Method),
		}
		if err := writer.Write(record); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ReadTransactionsCSV parses a CSV produced by ExportTransactionsCSV
// back into transaction values. IDs are parsed but the store reassigns
// them on any re-insert.
func (s *exportService) ReadTransactionsCSV(r io.Reader) ([]models.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.WithMessage(apperrors.ErrInvalidInput, "malformed CSV"), err)
	}
	if len(records) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "CSV is missing a header row")
	}

	transactions := make([]models.Transaction, 0, len(records)-1)
	for i, record := range records[1:] {
		id, err := strconv.ParseUint(record[0], 10, 32)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("row %d: bad id %q", i+1, record[0]))
		}
		amount, err := decimal.NewFromString(record[3])
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("row %d: bad amount %q", i+1, record[3]))
		}

		transactions = append(transactions, models.Transaction{
			ID:          uint(id),
			Kind:        models.TransactionKind(record[1]),
			Category:    record[2],
			Amount:      amount.Shift(2).IntPart(),
			Date:        record[4],
			Description: record[5],
			Method:      models.PaymentMethod(record[6]),
		})
	}
	return transactions, nil
}

// BackupStore copies the persisted store file into the configured
// backup directory and returns the new file's path.
func (s *exportService) BackupStore() (string, error) {
	path, err := s.backuper.BackupTo(s.backupDir)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrBackupFailed, err)
	}
	return path, nil
}
