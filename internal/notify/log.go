package notify

import (
	"context"

	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
)

// LogNotifier writes reminders to the logger.
type LogNotifier struct {
	logger logging.Logger
}

// NewLogNotifier creates a notifier that logs at info level.
func NewLogNotifier(logger logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.WithField(logging.FieldBackend, "log")}
}

func (n *LogNotifier) Notify(_ context.Context, r models.Reminder) error {
	n.logger.Info(r.Title(),
		logging.Field{Key: logging.FieldTransactionID, Value: r.TransactionID},
		logging.Field{Key: logging.FieldAmount, Value: r.Amount.StringFixed(2)},
		logging.Field{Key: "due_date", Value: r.DueDate},
		logging.Field{Key: "message", Value: r.Message()})
	return nil
}

func (n *LogNotifier) Close() error { return nil }
