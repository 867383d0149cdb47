package models

import "github.com/shopspring/decimal"

// SavingsGoal tracks progress towards a named target.
type SavingsGoal struct {
	Name          string          `json:"name" yaml:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount" yaml:"target_amount"`
	CurrentAmount decimal.Decimal `json:"currentAmount" yaml:"current_amount"`
}

// DefaultSavingsGoal is the goal shown before the user sets one.
func DefaultSavingsGoal() SavingsGoal {
	return SavingsGoal{
		Name:          DefaultSavingsName,
		TargetAmount:  decimal.NewFromInt(DefaultSavingsTarget),
		CurrentAmount: decimal.NewFromInt(DefaultSavingsSaved),
	}
}

var hundred = decimal.NewFromInt(100)

// Progress is the saved share of the target in percent, clamped to [0, 100].
func (g SavingsGoal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	pct := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
	if pct.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// Remaining is what is still missing to reach the target, never negative.
func (g SavingsGoal) Remaining() decimal.Decimal {
	left := g.TargetAmount.Sub(g.CurrentAmount)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}
