// Package validation checks records at the ledger boundary so the core can
// trust its inputs.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/butterfly-ledger/internal/dateutils"
	"fjacquet/butterfly-ledger/internal/models"
	"fjacquet/butterfly-ledger/internal/parsererror"

	"github.com/shopspring/decimal"
)

// ValidateTransaction checks a record before it is stored.
func ValidateTransaction(tx models.Transaction) error {
	if strings.TrimSpace(tx.ID) == "" {
		return &parsererror.ValidationError{Field: "id", Reason: "is required"}
	}
	if _, err := dateutils.ParseISODate(tx.Date); err != nil {
		return &parsererror.ValidationError{Field: "date", Value: tx.Date, Reason: "must be YYYY-MM-DD"}
	}
	if strings.TrimSpace(tx.Description) == "" {
		return &parsererror.ValidationError{Field: "description", Reason: "is required"}
	}
	if tx.Amount.IsNegative() {
		return &parsererror.ValidationError{Field: "amount", Value: tx.Amount.String(), Reason: "must not be negative"}
	}
	if !tx.Category.IsValid() {
		return &parsererror.ValidationError{Field: "category", Value: string(tx.Category), Reason: "unknown category"}
	}
	if _, ok := models.ParseTransactionType(string(tx.Type)); !ok {
		return &parsererror.ValidationError{Field: "type", Value: string(tx.Type), Reason: "must be expense or income"}
	}
	return nil
}

// ValidateTransactions stops at the first invalid record and names its position.
func ValidateTransactions(txs []models.Transaction) error {
	for i, tx := range txs {
		if err := ValidateTransaction(tx); err != nil {
			return fmt.Errorf("transaction %d (%s): %w", i+1, tx.ID, err)
		}
	}
	return nil
}

// ValidateBaseAmount checks a user-set monthly allowance.
func ValidateBaseAmount(base decimal.Decimal) error {
	if base.IsNegative() {
		return &parsererror.ValidationError{Field: "base amount", Value: base.String(), Reason: "must not be negative"}
	}
	return nil
}

// ValidateSavingsGoal checks a savings goal entered by the user.
func ValidateSavingsGoal(g models.SavingsGoal) error {
	if strings.TrimSpace(g.Name) == "" {
		return &parsererror.ValidationError{Field: "goal name", Reason: "is required"}
	}
	if !g.TargetAmount.IsPositive() {
		return &parsererror.ValidationError{Field: "target amount", Value: g.TargetAmount.String(), Reason: "must be positive"}
	}
	if g.CurrentAmount.IsNegative() {
		return &parsererror.ValidationError{Field: "current amount", Value: g.CurrentAmount.String(), Reason: "must not be negative"}
	}
	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "table", "json":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'table', 'json'", format)
	}
}

// IsValidPath checks if a given path exists and is accessible.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	return nil
}
