package ledger

import (
	"time"

	"fjacquet/butterfly-ledger/internal/dateutils"
	"fjacquet/butterfly-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Summarize aggregates today's accounting month: expense and income totals,
// spending per category and what is left of the effective limit.
// Categories appear in their display order and only when they have spending.
func Summarize(txs []models.Transaction, budget models.BudgetState, today time.Time) models.MonthlySummary {
	month := dateutils.MonthKey(today)

	expenses := decimal.Zero
	income := decimal.Zero
	byCategory := make(map[models.Category]decimal.Decimal)

	for _, tx := range txs {
		if tx.MonthKey() != month {
			continue
		}
		if tx.IsIncome() {
			income = income.Add(tx.Amount)
			continue
		}
		if tx.IsExpense() {
			expenses = expenses.Add(tx.Amount)
			byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
		}
	}

	totals := []models.CategoryTotal{}
	for _, c := range models.AllCategories() {
		if amount, ok := byCategory[c]; ok {
			totals = append(totals, models.CategoryTotal{Category: c, Total: amount})
		}
	}

	remaining := budget.MonthlyLimit.Sub(expenses)
	return models.MonthlySummary{
		Month:         month,
		TotalExpenses: expenses,
		TotalIncome:   income,
		MonthlyLimit:  budget.MonthlyLimit,
		Remaining:     remaining,
		OverBudget:    remaining.IsNegative(),
		ByCategory:    totals,
	}
}

// TransactionsInMonth returns the transactions dated in monthKey, in input order.
func TransactionsInMonth(txs []models.Transaction, monthKey string) []models.Transaction {
	out := []models.Transaction{}
	for _, tx := range txs {
		if tx.MonthKey() == monthKey {
			out = append(out, tx)
		}
	}
	return out
}
