// Package common holds the CSV import and export of ledger transactions and
// the helpers shared by the import paths.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fjacquet/butterfly-ledger/internal/currencyutils"
	"fjacquet/butterfly-ledger/internal/dateutils"
	"fjacquet/butterfly-ledger/internal/fileutils"
	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
	"fjacquet/butterfly-ledger/internal/parsererror"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// DefaultDelimiter is used when no delimiter is configured.
const DefaultDelimiter = ','

// TransactionCSVRow is the column layout of a ledger CSV file. Only Date,
// Description and Amount are required when importing.
type TransactionCSVRow struct {
	ID           string `csv:"ID"`
	Date         string `csv:"Date"`
	Description  string `csv:"Description"`
	Amount       string `csv:"Amount"`
	Category     string `csv:"Category"`
	Type         string `csv:"Type"`
	IsRecurring  string `csv:"IsRecurring"`
	IsPaid       string `csv:"IsPaid"`
	ReminderSent string `csv:"ReminderSent"`
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string, delimiter rune, logger logging.Logger) ([]TCSVRow, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger.Debug("Reading CSV file", logging.Field{Key: logging.FieldFile, Value: filePath})

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows, err := ReadCSV[TCSVRow](file, delimiter)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{FilePath: filePath, ExpectedFormat: "CSV with a header row", Msg: err.Error()}
	}

	logger.Debug("Successfully read CSV data", logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

// ReadCSV decodes CSV rows from r.
func ReadCSV[TCSVRow any](r io.Reader, delimiter rune) ([]TCSVRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ReadTransactionsCSV reads a ledger CSV file. Rows without a category keep an
// empty Category so the caller can suggest one. Rows without an ID keep an
// empty ID. Blank lines are skipped.
func ReadTransactionsCSV(filePath string, delimiter rune, logger logging.Logger) ([]models.Transaction, error) {
	rows, err := ReadCSVFile[TransactionCSVRow](filePath, delimiter, logger)
	if err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		// header is line 1
		tx, err := rowToTransaction(row, filePath, i+2)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func isBlankRow(row TransactionCSVRow) bool {
	return strings.TrimSpace(row.Date) == "" &&
		strings.TrimSpace(row.Description) == "" &&
		strings.TrimSpace(row.Amount) == ""
}

func rowToTransaction(row TransactionCSVRow, source string, line int) (models.Transaction, error) {
	parseErr := func(field, value string, err error) error {
		return &parsererror.ParseError{Source: source, Line: line, Field: field, Value: value, Err: err}
	}

	date, err := dateutils.NormalizeDate(row.Date)
	if err != nil {
		return models.Transaction{}, parseErr("Date", row.Date, err)
	}

	amount, err := currencyutils.ParseAmount(row.Amount)
	if err != nil {
		return models.Transaction{}, parseErr("Amount", row.Amount, err)
	}

	txType := models.TransactionTypeExpense
	if strings.TrimSpace(row.Type) != "" {
		parsed, ok := models.ParseTransactionType(row.Type)
		if !ok {
			return models.Transaction{}, parseErr("Type", row.Type, fmt.Errorf("must be expense or income"))
		}
		txType = parsed
	}
	// bank exports carry spending as negative amounts
	if amount.IsNegative() {
		if strings.TrimSpace(row.Type) != "" {
			return models.Transaction{}, parseErr("Amount", row.Amount, fmt.Errorf("must not be negative"))
		}
		amount = amount.Abs()
	}

	var category models.Category
	if strings.TrimSpace(row.Category) != "" {
		parsed, ok := models.ParseCategory(row.Category)
		if !ok {
			return models.Transaction{}, parseErr("Category", row.Category, fmt.Errorf("unknown category"))
		}
		category = parsed
	}

	flags := [3]bool{}
	for i, raw := range []struct{ name, value string }{
		{"IsRecurring", row.IsRecurring},
		{"IsPaid", row.IsPaid},
		{"ReminderSent", row.ReminderSent},
	} {
		v, err := parseFlag(raw.value)
		if err != nil {
			return models.Transaction{}, parseErr(raw.name, raw.value, err)
		}
		flags[i] = v
	}

	return models.Transaction{
		ID:           strings.TrimSpace(row.ID),
		Date:         date,
		Description:  strings.TrimSpace(row.Description),
		Amount:       amount,
		Category:     category,
		Type:         txType,
		IsRecurring:  flags[0],
		IsPaid:       flags[1],
		ReminderSent: flags[2],
	}, nil
}

func parseFlag(s string) (bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return false, nil
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// formatAmount writes cents with two decimals and keeps any finer precision.
func formatAmount(amount decimal.Decimal) string {
	if amount.Equal(amount.Round(2)) {
		return amount.StringFixed(2)
	}
	return amount.String()
}

func transactionToRow(tx models.Transaction) TransactionCSVRow {
	return TransactionCSVRow{
		ID:           tx.ID,
		Date:         tx.Date,
		Description:  tx.Description,
		Amount:       formatAmount(tx.Amount),
		Category:     string(tx.Category),
		Type:         string(tx.Type),
		IsRecurring:  strconv.FormatBool(tx.IsRecurring),
		IsPaid:       strconv.FormatBool(tx.IsPaid),
		ReminderSent: strconv.FormatBool(tx.ReminderSent),
	}
}

// WriteTransactionsCSV writes transactions as CSV to w.
func WriteTransactionsCSV(w io.Writer, transactions []models.Transaction, delimiter rune) error {
	rows := make([]TransactionCSVRow, len(transactions))
	for i, tx := range transactions {
		rows[i] = transactionToRow(tx)
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteTransactionsToCSV writes transactions to a CSV file that
// ReadTransactionsCSV reads back unchanged.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string, delimiter rune, logger logging.Logger) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	if err := fileutils.EnsureParentDirectory(csvFile); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := WriteTransactionsCSV(file, transactions, delimiter); err != nil {
		return err
	}

	logger.Info("Wrote transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(delimiter)})
	return nil
}
