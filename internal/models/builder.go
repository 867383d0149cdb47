package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const isoDateLayout = "2006-01-02"

// TransactionBuilder provides a fluent API for constructing transactions
type TransactionBuilder struct {
	tx  Transaction
	err error
}

// NewTransactionBuilder creates a builder for an unpaid expense in CategoryOther.
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		tx: Transaction{
			Amount:   decimal.Zero,
			Category: CategoryOther,
			Type:     TransactionTypeExpense,
		},
	}
}

// WithID sets the transaction ID
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.ID = id
	return b
}

// WithDate sets the date from a YYYY-MM-DD string
func (b *TransactionBuilder) WithDate(dateStr string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	dateStr = strings.TrimSpace(dateStr)
	if _, err := time.Parse(isoDateLayout, dateStr); err != nil {
		b.err = fmt.Errorf("invalid date %q: %w", dateStr, err)
		return b
	}
	b.tx.Date = dateStr
	return b
}

// WithDateFromTime sets the date from a time.Time value
func (b *TransactionBuilder) WithDateFromTime(date time.Time) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Date = date.Format(isoDateLayout)
	return b
}

// WithDescription sets the free-text label
func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Description = strings.TrimSpace(description)
	return b
}

// WithAmount sets the amount
func (b *TransactionBuilder) WithAmount(amount decimal.Decimal) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Amount = amount
	return b
}

// WithAmountFromString parses and sets the amount
func (b *TransactionBuilder) WithAmountFromString(amountStr string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(amountStr))
	if err != nil {
		b.err = fmt.Errorf("invalid amount %q: %w", amountStr, err)
		return b
	}
	b.tx.Amount = amount
	return b
}

// WithCategory sets the category
func (b *TransactionBuilder) WithCategory(category Category) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Category = category
	return b
}

// AsExpense marks the transaction as an expense
func (b *TransactionBuilder) AsExpense() *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Type = TransactionTypeExpense
	return b
}

// AsIncome marks the transaction as income and files it under CategoryIncome
func (b *TransactionBuilder) AsIncome() *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Type = TransactionTypeIncome
	b.tx.Category = CategoryIncome
	return b
}

// Recurring flags the transaction as a recurring one
func (b *TransactionBuilder) Recurring(recurring bool) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.IsRecurring = recurring
	return b
}

// Paid sets the paid flag
func (b *TransactionBuilder) Paid(paid bool) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.IsPaid = paid
	return b
}

// Build validates the transaction and returns it. A new UUID is assigned when no ID was set.
func (b *TransactionBuilder) Build() (Transaction, error) {
	if b.err != nil {
		return Transaction{}, fmt.Errorf("builder error: %w", b.err)
	}

	if b.tx.Date == "" {
		return Transaction{}, errors.New("date is required")
	}
	if b.tx.Description == "" {
		return Transaction{}, errors.New("description is required")
	}
	if b.tx.Amount.IsNegative() {
		return Transaction{}, errors.New("amount must not be negative")
	}
	if !b.tx.Category.IsValid() {
		return Transaction{}, fmt.Errorf("unknown category %q", b.tx.Category)
	}

	if b.tx.ID == "" {
		b.tx.ID = uuid.New().String()
	}
	return b.tx, nil
}

// Clone creates a copy of the current builder state
func (b *TransactionBuilder) Clone() *TransactionBuilder {
	return &TransactionBuilder{
		tx:  b.tx,
		err: b.err,
	}
}
