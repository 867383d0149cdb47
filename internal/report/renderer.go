// Package report renders ledger results for the terminal, either as
// bordered tables or as indented JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fjacquet/butterfly-ledger/internal/currencyutils"
	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Renderer writes results to out in one format.
type Renderer struct {
	format string
	out    io.Writer
	logger logging.Logger
}

// NewRenderer returns a renderer for format ("table" or "json").
func NewRenderer(format string, out io.Writer, logger logging.Logger) (*Renderer, error) {
	switch format {
	case FormatTable, FormatJSON:
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	return &Renderer{
		format: format,
		out:    out,
		logger: logger.WithField(logging.FieldComponent, "report"),
	}, nil
}

// Format returns the output format.
func (r *Renderer) Format() string {
	return r.format
}

// WithOutput returns a copy writing to out.
func (r *Renderer) WithOutput(out io.Writer) *Renderer {
	c := *r
	c.out = out
	return &c
}

// emit writes v as JSON, or the text produced by table in table mode.
func (r *Renderer) emit(v interface{}, table func() string) error {
	if r.format == FormatJSON {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			r.logger.WithError(err).Error("Failed to marshal JSON output")
			return fmt.Errorf("failed to marshal JSON output: %w", err)
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	}
	_, err := io.WriteString(r.out, table())
	return err
}

// Message writes a plain line, or {"message": ...} in JSON mode.
func (r *Renderer) Message(msg string) error {
	return r.emit(map[string]string{"message": msg}, func() string {
		return msg + "\n"
	})
}

// Budget renders the budget state.
func (r *Renderer) Budget(b models.BudgetState) error {
	return r.emit(b, func() string { return budgetTable(b) })
}

func budgetTable(b models.BudgetState) string {
	last := b.LastRolloverMonth
	if last == "" {
		last = "never"
	}
	return RenderTable(Table{
		Title:   "Budget",
		Headers: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Base", currencyutils.FormatDollars(b.BaseAmount)},
			{"Rollover", currencyutils.FormatSigned(b.RolloverAmount)},
			{"---"},
			{"Monthly limit", currencyutils.FormatDollars(b.MonthlyLimit)},
			{"Settled for", last},
		},
	})
}

// RolloverOutput is what the rollover command reports.
type RolloverOutput struct {
	Applied bool                   `json:"applied"`
	Result  *models.RolloverResult `json:"result,omitempty"`
	Budget  models.BudgetState     `json:"budget"`
}

// Rollover renders the outcome of a session start.
func (r *Renderer) Rollover(res models.RolloverResult, applied bool, budget models.BudgetState) error {
	out := RolloverOutput{Applied: applied, Budget: budget}
	if applied {
		out.Result = &res
	}
	return r.emit(out, func() string {
		if !applied {
			return mutedStyle.Render("Budget already up to date for "+budget.LastRolloverMonth) + "\n"
		}
		return rolloverLine(res) + "\n" + budgetTable(budget)
	})
}

func rolloverLine(res models.RolloverResult) string {
	switch res.Surplus.Sign() {
	case 1:
		return goodStyle.Render(res.Message)
	case -1:
		return badStyle.Render(res.Message)
	default:
		return res.Message
	}
}

// Predictions renders the shopping predictions.
func (r *Renderer) Predictions(items []models.PredictedItem) error {
	if items == nil {
		items = []models.PredictedItem{}
	}
	return r.emit(items, func() string { return predictionsTable(items) })
}

func predictionsTable(items []models.PredictedItem) string {
	if len(items) == 0 {
		return mutedStyle.Render("No purchases predicted around today") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Name,
			it.LastBoughtDate,
			strconv.Itoa(it.DaysAgo),
			it.PredictedDate,
			strconv.Itoa(it.AvgFrequencyDays),
		})
	}
	return RenderTable(Table{
		Title:   "Shopping predictions",
		Headers: []string{"Item", "Last bought", "Days ago", "Next", "Every (days)"},
		Rows:    rows,
	})
}

// YoY renders the year-over-year comparison.
func (r *Renderer) YoY(s models.YoYStats) error {
	return r.emit(s, func() string { return yoyTable(s) })
}

func yoyTable(s models.YoYStats) string {
	change := "n/a"
	if s.HasHistory {
		change = currencyutils.FormatPercent(s.PercentageChange)
		if s.PercentageChange.IsPositive() {
			change = warnStyle.Render("+" + change)
		} else {
			change = goodStyle.Render(change)
		}
	}
	return RenderTable(Table{
		Title:   "Year over year",
		Headers: []string{"Period", "Spent"},
		Rows: [][]string{
			{"This month", currencyutils.FormatDollars(s.CurrentMonthTotal)},
			{"Same month last year", currencyutils.FormatDollars(s.LastYearMonthTotal)},
			{"---"},
			{"Variance", currencyutils.FormatSigned(s.Variance)},
			{"Change", change},
		},
	})
}

// Transactions renders a transaction list.
func (r *Renderer) Transactions(txs []models.Transaction) error {
	if txs == nil {
		txs = []models.Transaction{}
	}
	return r.emit(txs, func() string { return transactionsTable(txs) })
}

func transactionsTable(txs []models.Transaction) string {
	if len(txs) == 0 {
		return mutedStyle.Render("No transactions") + "\n"
	}
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		amount := currencyutils.FormatDollars(tx.Amount)
		if tx.IsExpense() {
			amount = "-" + amount
		}
		rows = append(rows, []string{
			tx.Date,
			tx.Description,
			string(tx.Category),
			amount,
			flags(tx),
			tx.ID,
		})
	}
	return RenderTable(Table{
		Title:   fmt.Sprintf("Transactions (%d)", len(txs)),
		Headers: []string{"Date", "Description", "Category", "Amount", "Flags", "ID"},
		Rows:    rows,
	})
}

func flags(tx models.Transaction) string {
	var f []string
	if tx.IsRecurring {
		f = append(f, "recurring")
	}
	if tx.IsPaid {
		f = append(f, "paid")
	}
	if tx.ReminderSent {
		f = append(f, "reminded")
	}
	return strings.Join(f, ",")
}

// Summary renders the monthly summary.
func (r *Renderer) Summary(s models.MonthlySummary) error {
	return r.emit(s, func() string { return summaryTable(s) })
}

func summaryTable(s models.MonthlySummary) string {
	remaining := currencyutils.FormatDollars(s.Remaining)
	if s.OverBudget {
		remaining = badStyle.Render(remaining)
	}
	rows := make([][]string, 0, len(s.ByCategory)+5)
	for _, c := range s.ByCategory {
		rows = append(rows, []string{string(c.Category), currencyutils.FormatDollars(c.Total)})
	}
	if len(rows) > 0 {
		rows = append(rows, []string{"---"})
	}
	rows = append(rows,
		[]string{"Expenses", currencyutils.FormatDollars(s.TotalExpenses)},
		[]string{"Income", currencyutils.FormatDollars(s.TotalIncome)},
		[]string{"Limit", currencyutils.FormatDollars(s.MonthlyLimit)},
		[]string{"Remaining", remaining},
	)
	return RenderTable(Table{
		Title:   "Summary " + s.Month,
		Headers: []string{"Category", "Amount"},
		Rows:    rows,
	})
}

// RemindersOutput lists reminders and the ids that were delivered.
type RemindersOutput struct {
	Reminders []models.Reminder `json:"reminders"`
	Delivered []string          `json:"delivered"`
}

// Reminders renders due reminders and how many went out.
func (r *Renderer) Reminders(reminders []models.Reminder, delivered []string) error {
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	if delivered == nil {
		delivered = []string{}
	}
	return r.emit(RemindersOutput{Reminders: reminders, Delivered: delivered}, func() string {
		return remindersTable(reminders) + fmt.Sprintf("%d of %d reminders sent\n", len(delivered), len(reminders))
	})
}

func remindersTable(reminders []models.Reminder) string {
	if len(reminders) == 0 {
		return mutedStyle.Render("No payments due soon") + "\n"
	}
	rows := make([][]string, 0, len(reminders))
	for _, rem := range reminders {
		rows = append(rows, []string{rem.Description, rem.DueDate, currencyutils.FormatDollars(rem.Amount), rem.Message()})
	}
	return RenderTable(Table{
		Title:   "Payments due soon",
		Headers: []string{"Description", "Due", "Amount", "Reminder"},
		Rows:    rows,
	})
}

// Savings renders the savings goal with a progress bar.
func (r *Renderer) Savings(g models.SavingsGoal) error {
	return r.emit(g, func() string { return savingsTable(g) })
}

func savingsTable(g models.SavingsGoal) string {
	pct, _ := g.Progress().Float64()
	return RenderTable(Table{
		Title:   "Savings goal: " + g.Name,
		Headers: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Saved", currencyutils.FormatDollars(g.CurrentAmount)},
			{"Target", currencyutils.FormatDollars(g.TargetAmount)},
			{"Remaining", currencyutils.FormatDollars(g.Remaining())},
		},
	}) + "  " + RenderProgressBar(pct, 30) + "\n"
}

// CategorySuggestion is the output of the categorize command.
type CategorySuggestion struct {
	Description string          `json:"description"`
	Category    models.Category `json:"category"`
	Strategy    string          `json:"strategy"`
}

// Category renders a category suggestion.
func (r *Renderer) Category(s CategorySuggestion) error {
	return r.emit(s, func() string {
		via := s.Strategy
		if via == "" {
			via = "default"
		}
		return fmt.Sprintf("%s → %s %s\n", s.Description, headerStyle.Render(string(s.Category)), mutedStyle.Render("("+via+")"))
	})
}

// Dashboard renders the combined session view.
func (r *Renderer) Dashboard(d models.Dashboard) error {
	if d.Predictions == nil {
		d.Predictions = []models.PredictedItem{}
	}
	if d.Reminders == nil {
		d.Reminders = []models.Reminder{}
	}
	return r.emit(d, func() string {
		var b strings.Builder
		b.WriteString(RenderTitle("Butterfly Ledger " + d.Today))
		b.WriteString("\n")
		if d.Rollover != nil {
			b.WriteString(rolloverLine(*d.Rollover))
			b.WriteString("\n")
		}
		b.WriteString(budgetTable(d.Budget))
		b.WriteString(summaryTable(d.Summary))
		b.WriteString(yoyTable(d.YoY))
		b.WriteString(predictionsTable(d.Predictions))
		b.WriteString(remindersTable(d.Reminders))
		b.WriteString(savingsTable(d.SavingsGoal))
		return b.String()
	})
}
