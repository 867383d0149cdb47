package notify

import (
	"encoding/json"
	"time"

	"fjacquet/butterfly-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// ReminderMessage is the JSON body published for a due payment.
type ReminderMessage struct {
	TransactionID string          `json:"transaction_id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       string          `json:"due_date"`
	DaysUntilDue  int             `json:"days_until_due"`
	Title         string          `json:"title"`
	Message       string          `json:"message"`
	SentAt        time.Time       `json:"sent_at"`
}

// NewReminderMessage builds the message for r stamped with sentAt.
func NewReminderMessage(r models.Reminder, sentAt time.Time) *ReminderMessage {
	return &ReminderMessage{
		TransactionID: r.TransactionID,
		Description:   r.Description,
		Amount:        r.Amount,
		DueDate:       r.DueDate,
		DaysUntilDue:  r.DaysUntilDue,
		Title:         r.Title(),
		Message:       r.Message(),
		SentAt:        sentAt,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReminderMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReminderMessageFromJSON decodes a published message.
func ReminderMessageFromJSON(data []byte) (*ReminderMessage, error) {
	var msg ReminderMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
