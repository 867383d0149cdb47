// Package models provides the data structures used throughout the application.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction is a single ledger entry. Once created only the flag fields change.
type Transaction struct {
	ID           string          `json:"id" csv:"ID"`
	Date         string          `json:"date" csv:"Date"` // YYYY-MM-DD
	Description  string          `json:"description" csv:"Description"`
	Amount       decimal.Decimal `json:"amount" csv:"Amount"`
	Category     Category        `json:"category" csv:"Category"`
	Type         TransactionType `json:"type" csv:"Type"`
	IsRecurring  bool            `json:"isRecurring,omitempty" csv:"IsRecurring"`
	IsPaid       bool            `json:"isPaid,omitempty" csv:"IsPaid"`
	ReminderSent bool            `json:"reminderSent,omitempty" csv:"ReminderSent"`
}

// IsExpense reports whether the transaction counts towards spending.
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// IsIncome reports whether the transaction is income.
func (t Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// MonthKey returns the YYYY-MM prefix of the date, or "" when the date is too short.
func (t Transaction) MonthKey() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}

// NormalizedDescription is the grouping key used for recurrence detection.
func (t Transaction) NormalizedDescription() string {
	return NormalizeDescription(t.Description)
}

// NormalizeDescription trims and lower-cases a free-text label.
func NormalizeDescription(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CloneTransactions returns a copy of txs that callers may hand to concurrent readers.
func CloneTransactions(txs []Transaction) []Transaction {
	if txs == nil {
		return nil
	}
	out := make([]Transaction, len(txs))
	copy(out, txs)
	return out
}
