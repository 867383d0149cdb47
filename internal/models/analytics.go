package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PredictedItem is an item expected to be bought again soon.
type PredictedItem struct {
	Name             string `json:"name"`
	LastBoughtDate   string `json:"lastBoughtDate"`
	DaysAgo          int    `json:"daysAgo"`
	PredictedDate    string `json:"predictedDate"`
	AvgFrequencyDays int    `json:"avgFrequencyDays"`
}

// YoYStats compares this month's spending with the same month last year.
type YoYStats struct {
	CurrentMonthTotal  decimal.Decimal `json:"currentMonthTotal"`
	LastYearMonthTotal decimal.Decimal `json:"lastYearMonthTotal"`
	Variance           decimal.Decimal `json:"variance"`
	PercentageChange   decimal.Decimal `json:"percentageChange"`
	HasHistory         bool            `json:"hasHistory"`
}

// RolloverResult is the outcome of settling the previous month.
type RolloverResult struct {
	Budget  BudgetState     `json:"updatedBudget"`
	Message string          `json:"message"`
	Surplus decimal.Decimal `json:"surplus"`
}

// CategoryTotal is the spending of one category.
type CategoryTotal struct {
	Category Category        `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlySummary aggregates the current accounting month.
type MonthlySummary struct {
	Month         string          `json:"month"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	MonthlyLimit  decimal.Decimal `json:"monthlyLimit"`
	Remaining     decimal.Decimal `json:"remaining"`
	OverBudget    bool            `json:"overBudget"`
	ByCategory    []CategoryTotal `json:"byCategory"`
}

// Reminder is an unpaid expense that falls due soon.
type Reminder struct {
	TransactionID string          `json:"transactionId"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       string          `json:"dueDate"`
	DaysUntilDue  int             `json:"daysUntilDue"`
}

// Title is the short headline of the reminder.
func (r Reminder) Title() string {
	return "Payment Due Soon: " + r.Description
}

// Message is the reminder body.
func (r Reminder) Message() string {
	when := "today"
	if r.DaysUntilDue > 0 {
		when = fmt.Sprintf("in %d days", r.DaysUntilDue)
	}
	return fmt.Sprintf("Friendly reminder: This expense of $%s is due %s.", r.Amount.StringFixed(2), when)
}

// Dashboard is the combined view shown at the start of a session.
type Dashboard struct {
	Today       string          `json:"today"`
	Budget      BudgetState     `json:"budget"`
	Rollover    *RolloverResult `json:"rollover,omitempty"`
	Summary     MonthlySummary  `json:"summary"`
	Predictions []PredictedItem `json:"predictions"`
	YoY         YoYStats        `json:"yoy"`
	SavingsGoal SavingsGoal     `json:"savingsGoal"`
	Reminders   []Reminder      `json:"reminders"`
}
