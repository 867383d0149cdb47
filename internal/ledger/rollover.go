package ledger

import (
	"fmt"
	"time"

	"fjacquet/butterfly-ledger/internal/dateutils"
	"fjacquet/butterfly-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// ProcessRollover settles the month before today into the budget.
//
// It returns false when the budget was already settled for today's month.
// Otherwise the surplus (limit minus last month's expenses, possibly negative)
// becomes the new carry-over and the limit is recomputed from the base.
// Only the immediately preceding month is reconciled.
func ProcessRollover(budget models.BudgetState, txs []models.Transaction, today time.Time) (models.RolloverResult, bool) {
	currentKey := dateutils.MonthKey(today)
	if budget.LastRolloverMonth == currentKey {
		return models.RolloverResult{}, false
	}

	prevExpenses := ExpensesForMonth(txs, dateutils.PreviousMonthKey(today))
	surplus := budget.MonthlyLimit.Sub(prevExpenses)

	updated := models.BudgetState{
		BaseAmount:        budget.BaseAmount,
		RolloverAmount:    surplus,
		MonthlyLimit:      budget.BaseAmount.Add(surplus),
		LastRolloverMonth: currentKey,
	}

	return models.RolloverResult{
		Budget:  updated,
		Message: rolloverMessage(surplus, budget.BaseAmount),
		Surplus: surplus,
	}, true
}

// ExpensesForMonth sums expense amounts whose date falls in monthKey (YYYY-MM).
func ExpensesForMonth(txs []models.Transaction, monthKey string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.IsExpense() && tx.MonthKey() == monthKey {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func rolloverMessage(surplus, base decimal.Decimal) string {
	switch surplus.Sign() {
	case 1:
		return fmt.Sprintf("Rollover processed! You have an extra $%s from last month!", surplus.StringFixed(2))
	case -1:
		return fmt.Sprintf("Budget adjusted. Last month's overspending of $%s was deducted.", surplus.Abs().StringFixed(2))
	default:
		return fmt.Sprintf("New month started. Your budget is reset to $%s.", base.String())
	}
}
