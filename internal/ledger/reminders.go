package ledger

import (
	"time"

	"fjacquet/butterfly-ledger/internal/dateutils"
	"fjacquet/butterfly-ledger/internal/models"
)

// DefaultReminderLeadDays is how many days ahead a due expense is reminded.
const DefaultReminderLeadDays = 2

// DueReminders lists unpaid expenses that have not been reminded yet and fall
// due between today and leadDays days from now. The expense date is the due date.
func DueReminders(txs []models.Transaction, today time.Time, leadDays int) []models.Reminder {
	today = dateutils.Truncate(today)

	reminders := []models.Reminder{}
	for _, tx := range txs {
		if !tx.IsExpense() || tx.IsPaid || tx.ReminderSent {
			continue
		}
		due, err := dateutils.ParseISODate(tx.Date)
		if err != nil {
			continue
		}

		days := dateutils.DaysBetweenCeil(today, due)
		if days < 0 || days > leadDays {
			continue
		}

		reminders = append(reminders, models.Reminder{
			TransactionID: tx.ID,
			Description:   tx.Description,
			Amount:        tx.Amount,
			DueDate:       tx.Date,
			DaysUntilDue:  days,
		})
	}
	return reminders
}
