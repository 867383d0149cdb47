package models

import (
	"github.com/shopspring/decimal"
)

// BudgetState is the caller-owned budget record.
// MonthlyLimit always equals BaseAmount + RolloverAmount.
type BudgetState struct {
	BaseAmount        decimal.Decimal `json:"baseAmount"`
	RolloverAmount    decimal.Decimal `json:"rolloverAmount"`
	MonthlyLimit      decimal.Decimal `json:"monthlyLimit"`
	LastRolloverMonth string          `json:"lastRolloverMonth"`
}

// NewBudgetState returns a budget with no carry-over, already settled for monthKey.
func NewBudgetState(base decimal.Decimal, monthKey string) BudgetState {
	return BudgetState{
		BaseAmount:        base,
		RolloverAmount:    decimal.Zero,
		MonthlyLimit:      base,
		LastRolloverMonth: monthKey,
	}
}

// DefaultBudgetState is the budget of a ledger that has never been saved.
func DefaultBudgetState(monthKey string) BudgetState {
	return NewBudgetState(decimal.NewFromInt(InitialBudget), monthKey)
}

// UpdateBudget sets a new base allowance and recomputes the effective limit.
// The carry-over is left as is.
func (b BudgetState) UpdateBudget(newBase decimal.Decimal) BudgetState {
	b.BaseAmount = newBase
	b.MonthlyLimit = newBase.Add(b.RolloverAmount)
	return b
}

// IsConsistent reports whether the derived limit matches its parts.
func (b BudgetState) IsConsistent() bool {
	return b.MonthlyLimit.Equal(b.BaseAmount.Add(b.RolloverAmount))
}

// BudgetRecord is a persisted budget as read back from storage. Records written
// before rollover tracking existed only carry MonthlyLimit.
type BudgetRecord struct {
	MonthlyLimit      decimal.Decimal  `json:"monthlyLimit"`
	BaseAmount        *decimal.Decimal `json:"baseAmount,omitempty"`
	RolloverAmount    *decimal.Decimal `json:"rolloverAmount,omitempty"`
	LastRolloverMonth *string          `json:"lastRolloverMonth,omitempty"`
}

// IsLegacy reports whether the record predates rollover tracking.
func (r BudgetRecord) IsLegacy() bool {
	return r.BaseAmount == nil
}

// MigrateBudget turns a stored record into a BudgetState. A legacy record keeps
// its limit as the base, starts with no carry-over and is marked as settled for
// currentMonth so that no rollover fires on the first run after migration.
// A partial record gets the same defaults for its missing fields, and its limit
// is always recomputed from base and carry-over.
// The second return value is true when the record had to be changed.
func MigrateBudget(r BudgetRecord, currentMonth string) (BudgetState, bool) {
	if r.IsLegacy() {
		return BudgetState{
			BaseAmount:        r.MonthlyLimit,
			RolloverAmount:    decimal.Zero,
			MonthlyLimit:      r.MonthlyLimit,
			LastRolloverMonth: currentMonth,
		}, true
	}

	changed := false
	state := BudgetState{
		BaseAmount:        *r.BaseAmount,
		RolloverAmount:    decimal.Zero,
		LastRolloverMonth: currentMonth,
	}
	if r.RolloverAmount != nil {
		state.RolloverAmount = *r.RolloverAmount
	} else {
		changed = true
	}
	if r.LastRolloverMonth != nil && *r.LastRolloverMonth != "" {
		state.LastRolloverMonth = *r.LastRolloverMonth
	} else {
		changed = true
	}
	state.MonthlyLimit = state.BaseAmount.Add(state.RolloverAmount)
	if !state.MonthlyLimit.Equal(r.MonthlyLimit) {
		changed = true
	}
	return state, changed
}

// Record converts a state into its persisted form.
func (b BudgetState) Record() BudgetRecord {
	base := b.BaseAmount
	rollover := b.RolloverAmount
	month := b.LastRolloverMonth
	return BudgetRecord{
		MonthlyLimit:      b.MonthlyLimit,
		BaseAmount:        &base,
		RolloverAmount:    &rollover,
		LastRolloverMonth: &month,
	}
}
