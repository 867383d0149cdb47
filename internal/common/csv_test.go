package common

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
	"fjacquet/butterfly-ledger/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCSVRow represents a test CSV row for gocsv unmarshaling
type testCSVRow struct {
	Name    string `csv:"Name"`
	Country string `csv:"Country"`
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReadCSVFile(t *testing.T) {
	path := writeTemp(t, "people.csv", "Name;Country\nJohn Doe; USA\nJane Smith;Canada\n")

	rows, err := ReadCSVFile[testCSVRow](path, ';', logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "John Doe", rows[0].Name)
	assert.Equal(t, "USA", rows[0].Country)
	assert.Equal(t, "Canada", rows[1].Country)

	_, err = ReadCSVFile[testCSVRow](filepath.Join(t.TempDir(), "missing.csv"), ',', nil)
	assert.Error(t, err)
}

func TestReadTransactionsCSV(t *testing.T) {
	content := `Date,Description,Amount,Category,Type,IsRecurring
2025-03-01,Coffee,3.50,,expense,
15.03.2025,Salary,"$3,000.00",,income,no
2025-03-02,Rent,1200,housing,,yes
,,,,,
2025-03-03,Card payment,-42.10,,,
`
	path := writeTemp(t, "bank.csv", content)

	txs, err := ReadTransactionsCSV(path, ',', logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, txs, 4)

	assert.Equal(t, "2025-03-01", txs[0].Date)
	assert.Equal(t, models.Category(""), txs[0].Category)
	assert.Equal(t, models.TransactionTypeExpense, txs[0].Type)
	assert.Empty(t, txs[0].ID)

	assert.Equal(t, "2025-03-15", txs[1].Date)
	assert.True(t, decimal.NewFromInt(3000).Equal(txs[1].Amount))
	assert.Equal(t, models.TransactionTypeIncome, txs[1].Type)

	assert.Equal(t, models.CategoryHousing, txs[2].Category)
	assert.True(t, txs[2].IsRecurring)
	assert.Equal(t, models.TransactionTypeExpense, txs[2].Type)

	// negative amount without a type is an expense
	assert.True(t, decimal.RequireFromString("42.10").Equal(txs[3].Amount))
	assert.Equal(t, models.TransactionTypeExpense, txs[3].Type)
}

func TestReadTransactionsCSV_Errors(t *testing.T) {
	tests := []struct {
		name      string
		row       string
		wantField string
	}{
		{"bad date", "someday,Coffee,3,,", "Date"},
		{"bad amount", "2025-03-01,Coffee,abc,,", "Amount"},
		{"bad type", "2025-03-01,Coffee,3,,transfer", "Type"},
		{"negative with type", "2025-03-01,Coffee,-3,,expense", "Amount"},
		{"unknown category", "2025-03-01,Coffee,3,Pets,", "Category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "bad.csv", "Date,Description,Amount,Category,Type\n"+tt.row+"\n")

			_, err := ReadTransactionsCSV(path, ',', logging.NewMockLogger())
			var parseErr *parsererror.ParseError
			require.True(t, errors.As(err, &parseErr), "got %v", err)
			assert.Equal(t, tt.wantField, parseErr.Field)
			assert.Equal(t, 2, parseErr.Line)
		})
	}
}

func TestReadTransactionsCSV_BadFlag(t *testing.T) {
	path := writeTemp(t, "flags.csv", "Date,Description,Amount,IsPaid\n2025-03-01,Coffee,3,maybe\n")

	_, err := ReadTransactionsCSV(path, ',', logging.NewMockLogger())
	var parseErr *parsererror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "IsPaid", parseErr.Field)
}

func TestWriteTransactionsToCSV_RoundTrip(t *testing.T) {
	txs := []models.Transaction{
		{
			ID: "a", Date: "2025-03-01", Description: "Coffee, large",
			Amount: decimal.RequireFromString("3.5"), Category: models.CategoryFood,
			Type: models.TransactionTypeExpense, IsPaid: true,
		},
		{
			ID: "b", Date: "2025-03-02", Description: "Salary",
			Amount: decimal.NewFromInt(3000), Category: models.CategoryIncome,
			Type: models.TransactionTypeIncome, IsRecurring: true,
		},
	}
	path := filepath.Join(t.TempDir(), "out", "export.csv")
	logger := logging.NewMockLogger()

	require.NoError(t, WriteTransactionsToCSV(txs, path, ';', logger))
	assert.True(t, logger.HasEntry("INFO", "Wrote transactions to CSV file"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "ID;Date;Description;Amount;Category;Type;IsRecurring;IsPaid;ReminderSent"))
	assert.Contains(t, string(data), "3.50")

	back, err := ReadTransactionsCSV(path, ';', logger)
	require.NoError(t, err)
	require.Len(t, back, 2)
	for i := range txs {
		assert.Equal(t, txs[i].ID, back[i].ID)
		assert.Equal(t, txs[i].Description, back[i].Description)
		assert.True(t, txs[i].Amount.Equal(back[i].Amount))
		assert.Equal(t, txs[i].Category, back[i].Category)
		assert.Equal(t, txs[i].Type, back[i].Type)
		assert.Equal(t, txs[i].IsRecurring, back[i].IsRecurring)
		assert.Equal(t, txs[i].IsPaid, back[i].IsPaid)
	}
}

func TestWriteTransactionsCSV_KeepsPrecision(t *testing.T) {
	tests := []struct {
		amount  string
		written string
	}{
		{"1.005", "1.005"},
		{"0.125", "0.125"},
		{"12.3456", "12.3456"},
		{"7", "7.00"},
		{"2.5", "2.50"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			tx := models.Transaction{
				ID: "a", Date: "2025-03-01", Description: "Fuel",
				Amount: decimal.RequireFromString(tt.amount), Category: models.CategoryTransport,
				Type: models.TransactionTypeExpense,
			}

			var buf bytes.Buffer
			require.NoError(t, WriteTransactionsCSV(&buf, []models.Transaction{tx}, ','))
			assert.Contains(t, buf.String(), ","+tt.written+",")

			path := writeTemp(t, "export.csv", buf.String())
			back, err := ReadTransactionsCSV(path, ',', logging.NewMockLogger())
			require.NoError(t, err)
			require.Len(t, back, 1)
			assert.True(t, tx.Amount.Equal(back[0].Amount), "read back %s", back[0].Amount)
		})
	}
}

func TestWriteTransactionsCSV_Writer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, []models.Transaction{}, ','))
	assert.Equal(t, "ID,Date,Description,Amount,Category,Type,IsRecurring,IsPaid,ReminderSent\n", buf.String())

	assert.Error(t, WriteTransactionsToCSV(nil, filepath.Join(t.TempDir(), "x.csv"), ',', nil))
}
