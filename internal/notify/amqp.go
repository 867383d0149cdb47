package notify

import (
	"context"
	"fmt"
	"time"

	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"

	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// publisher is the subset of *amqp091.Channel the notifier uses.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPNotifier publishes reminders as persistent JSON messages to a durable
// direct exchange, routed to a durable queue of the same name as the key.
type AMQPNotifier struct {
	conn         *amqp091.Connection
	channel      publisher
	exchangeName string
	queueName    string
	logger       logging.Logger
	now          func() time.Time
}

// NewAMQPNotifier connects to url and declares the exchange and queue.
func NewAMQPNotifier(url, exchangeName, queueName string, logger logging.Logger) (*AMQPNotifier, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := setup(channel, exchangeName, queueName); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	n := newAMQPNotifier(channel, exchangeName, queueName, logger)
	n.conn = conn
	return n, nil
}

func newAMQPNotifier(channel publisher, exchangeName, queueName string, logger logging.Logger) *AMQPNotifier {
	return &AMQPNotifier{
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
		logger: logger.WithFields(
			logging.Field{Key: logging.FieldBackend, Value: "amqp"},
			logging.Field{Key: logging.FieldExchange, Value: exchangeName},
			logging.Field{Key: logging.FieldQueue, Value: queueName},
		),
		now: time.Now,
	}
}

func setup(channel *amqp091.Channel, exchangeName, queueName string) error {
	err := channel.ExchangeDeclare(
		exchangeName, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// routing key is the queue name
	if err := channel.QueueBind(queueName, queueName, exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// Notify publishes one reminder.
func (n *AMQPNotifier) Notify(ctx context.Context, r models.Reminder) error {
	sentAt := n.now()
	body, err := NewReminderMessage(r, sentAt).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = n.channel.PublishWithContext(
		ctx,
		n.exchangeName, // exchange
		n.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    sentAt,
			MessageId:    r.TransactionID,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish reminder: %w", err)
	}

	n.logger.Info("Published reminder", logging.Field{Key: logging.FieldTransactionID, Value: r.TransactionID})
	return nil
}

// Close closes the channel and the connection.
func (n *AMQPNotifier) Close() error {
	if n.channel != nil {
		_ = n.channel.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
