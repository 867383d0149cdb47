package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDefaultBudgetState(t *testing.T) {
	b := DefaultBudgetState("2025-04")

	assert.True(t, dec("2000").Equal(b.BaseAmount))
	assert.True(t, b.RolloverAmount.IsZero())
	assert.True(t, dec("2000").Equal(b.MonthlyLimit))
	assert.Equal(t, "2025-04", b.LastRolloverMonth)
	assert.True(t, b.IsConsistent())
}

func TestBudgetState_UpdateBudget(t *testing.T) {
	tests := []struct {
		name      string
		rollover  string
		newBase   string
		wantLimit string
	}{
		{"no carry-over", "0", "1500", "1500"},
		{"surplus is kept", "200", "1500", "1700"},
		{"deficit is kept", "-300", "1000", "700"},
		{"limit may go negative", "-300", "100", "-200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BudgetState{
				BaseAmount:        dec("2000"),
				RolloverAmount:    dec(tt.rollover),
				MonthlyLimit:      dec("2000").Add(dec(tt.rollover)),
				LastRolloverMonth: "2025-04",
			}

			got := b.UpdateBudget(dec(tt.newBase))

			assert.True(t, dec(tt.newBase).Equal(got.BaseAmount))
			assert.True(t, dec(tt.rollover).Equal(got.RolloverAmount))
			assert.True(t, dec(tt.wantLimit).Equal(got.MonthlyLimit), "limit %s", got.MonthlyLimit)
			assert.Equal(t, "2025-04", got.LastRolloverMonth)
			assert.True(t, got.IsConsistent())
			assert.True(t, dec("2000").Equal(b.BaseAmount), "receiver must not change")
		})
	}
}

func TestMigrateBudget(t *testing.T) {
	t.Run("legacy record suppresses rollover", func(t *testing.T) {
		got, migrated := MigrateBudget(BudgetRecord{MonthlyLimit: dec("1800")}, "2025-06")

		assert.True(t, migrated)
		assert.True(t, dec("1800").Equal(got.BaseAmount))
		assert.True(t, got.RolloverAmount.IsZero())
		assert.True(t, dec("1800").Equal(got.MonthlyLimit))
		assert.Equal(t, "2025-06", got.LastRolloverMonth)
	})

	t.Run("current record is taken as is", func(t *testing.T) {
		state := BudgetState{
			BaseAmount:        dec("1000"),
			RolloverAmount:    dec("-50"),
			MonthlyLimit:      dec("950"),
			LastRolloverMonth: "2025-05",
		}

		got, migrated := MigrateBudget(state.Record(), "2025-06")

		assert.False(t, migrated)
		assert.True(t, state.BaseAmount.Equal(got.BaseAmount))
		assert.True(t, state.RolloverAmount.Equal(got.RolloverAmount))
		assert.True(t, state.MonthlyLimit.Equal(got.MonthlyLimit))
		assert.Equal(t, "2025-05", got.LastRolloverMonth)
	})

	t.Run("partial records are repaired", func(t *testing.T) {
		tests := []struct {
			name        string
			record      BudgetRecord
			expectLimit string
			expectMonth string
		}{
			{
				name:        "missing carry-over and month",
				record:      BudgetRecord{MonthlyLimit: dec("2500"), BaseAmount: ptr(dec("2000"))},
				expectLimit: "2000",
				expectMonth: "2025-06",
			},
			{
				name: "limit out of sync",
				record: BudgetRecord{MonthlyLimit: dec("900"), BaseAmount: ptr(dec("1000")),
					RolloverAmount: ptr(dec("200")), LastRolloverMonth: ptr("2025-05")},
				expectLimit: "1200",
				expectMonth: "2025-05",
			},
			{
				name: "empty month",
				record: BudgetRecord{MonthlyLimit: dec("1000"), BaseAmount: ptr(dec("1000")),
					RolloverAmount: ptr(dec("0")), LastRolloverMonth: ptr("")},
				expectLimit: "1000",
				expectMonth: "2025-06",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, changed := MigrateBudget(tt.record, "2025-06")
				assert.True(t, changed)
				assert.True(t, got.IsConsistent())
				assert.True(t, dec(tt.expectLimit).Equal(got.MonthlyLimit), got.MonthlyLimit.String())
				assert.Equal(t, tt.expectMonth, got.LastRolloverMonth)
			})
		}
	})
}

func ptr[T any](v T) *T { return &v }

func TestSavingsGoal_Progress(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		current string
		want    string
	}{
		{"default goal", "5000", "1250", "25"},
		{"over target is clamped", "100", "150", "100"},
		{"negative saved is clamped", "100", "-10", "0"},
		{"zero target", "0", "10", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := SavingsGoal{Name: "x", TargetAmount: dec(tt.target), CurrentAmount: dec(tt.current)}
			assert.True(t, dec(tt.want).Equal(g.Progress()), "got %s", g.Progress())
		})
	}

	assert.True(t, dec("3750").Equal(DefaultSavingsGoal().Remaining()))
}

func TestReminder_Message(t *testing.T) {
	r := Reminder{Description: "Rent", Amount: dec("1200"), DaysUntilDue: 0}
	assert.Equal(t, "Friendly reminder: This expense of $1200.00 is due today.", r.Message())

	r.DaysUntilDue = 2
	assert.Equal(t, "Friendly reminder: This expense of $1200.00 is due in 2 days.", r.Message())
	assert.Equal(t, "Payment Due Soon: Rent", r.Title())
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" food ")
	assert.True(t, ok)
	assert.Equal(t, CategoryFood, c)

	_, ok = ParseCategory("Pets")
	assert.False(t, ok)

	assert.Len(t, AllCategories(), 10)
	assert.True(t, CategoryIncome.IsValid())
	assert.False(t, Category("").IsValid())
}
