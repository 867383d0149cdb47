package ledger

import (
	"time"

	"fjacquet/butterfly-ledger/internal/models"

	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(date, desc, amount string, category models.Category) models.Transaction {
	return models.Transaction{
		ID:          date + "-" + desc,
		Date:        date,
		Description: desc,
		Amount:      dec(amount),
		Category:    category,
		Type:        models.TransactionTypeExpense,
	}
}

func income(date, amount string) models.Transaction {
	return models.Transaction{
		ID:          date + "-income",
		Date:        date,
		Description: "Salary",
		Amount:      dec(amount),
		Category:    models.CategoryIncome,
		Type:        models.TransactionTypeIncome,
	}
}
