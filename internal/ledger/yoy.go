package ledger

import (
	"time"

	"fjacquet/butterfly-ledger/internal/dateutils"
	"fjacquet/butterfly-ledger/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculateYoYComparison compares expenses of today's calendar month with the
// same calendar month one year earlier.
//
// With no spending last year the change is 100% when there is spending now and
// 0% otherwise. HasHistory tells whether last year's month had any spending.
func CalculateYoYComparison(txs []models.Transaction, today time.Time) models.YoYStats {
	lastYear, month := dateutils.SameMonthLastYear(today)

	current := expensesForCalendarMonth(txs, today.Year(), today.Month())
	previous := expensesForCalendarMonth(txs, lastYear, month)
	variance := current.Sub(previous)

	pct := decimal.Zero
	switch {
	case previous.IsPositive():
		pct = variance.Div(previous).Mul(hundred)
	case previous.IsZero() && current.IsPositive():
		pct = hundred
	}

	return models.YoYStats{
		CurrentMonthTotal:  current,
		LastYearMonthTotal: previous,
		Variance:           variance,
		PercentageChange:   pct,
		HasHistory:         previous.IsPositive(),
	}
}

func expensesForCalendarMonth(txs []models.Transaction, year int, month time.Month) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		d, err := dateutils.ParseISODate(tx.Date)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month {
			total = total.Add(tx.Amount)
		}
	}
	return total
}
