// Package notify delivers payment reminders, either to the log or to an
// AMQP exchange.
package notify

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
)

// Notifier delivers one reminder.
type Notifier interface {
	Notify(ctx context.Context, reminder models.Reminder) error
	Close() error
}

// ErrNothingDelivered is returned by Dispatch when every delivery failed.
var ErrNothingDelivered = errors.New("no reminder could be delivered")

// Dispatch sends each reminder in order and returns the ids of the
// transactions whose reminder was delivered. Failed deliveries are logged
// and left out so they are retried next time. When reminders were due and
// none went out, ErrNothingDelivered wraps the last failure. A cancelled
// context stops the loop and is returned.
func Dispatch(ctx context.Context, n Notifier, reminders []models.Reminder, logger logging.Logger) ([]string, error) {
	delivered := make([]string, 0, len(reminders))
	var lastErr error
	for _, r := range reminders {
		if err := ctx.Err(); err != nil {
			return delivered, err
		}
		if err := n.Notify(ctx, r); err != nil {
			logger.WithError(err).Warn("Reminder delivery failed",
				logging.Field{Key: logging.FieldTransactionID, Value: r.TransactionID})
			lastErr = err
			continue
		}
		delivered = append(delivered, r.TransactionID)
	}
	if len(delivered) == 0 && lastErr != nil {
		return delivered, fmt.Errorf("%w: %d failed: %w", ErrNothingDelivered, len(reminders), lastErr)
	}
	return delivered, nil
}
