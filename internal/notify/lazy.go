package notify

import (
	"context"
	"sync"

	"fjacquet/butterfly-ledger/internal/models"
)

// Lazy defers opening a notifier until the first reminder is sent, so
// commands that never notify do not connect to a broker.
type Lazy struct {
	open func() (Notifier, error)

	once sync.Once
	n    Notifier
	err  error
}

// NewLazy wraps open. A failed open is returned by every Notify call.
func NewLazy(open func() (Notifier, error)) *Lazy {
	return &Lazy{open: open}
}

func (l *Lazy) Notify(ctx context.Context, r models.Reminder) error {
	l.once.Do(func() { l.n, l.err = l.open() })
	if l.err != nil {
		return l.err
	}
	return l.n.Notify(ctx, r)
}

// Opened reports whether the wrapped notifier was opened successfully.
func (l *Lazy) Opened() bool {
	return l.n != nil
}

func (l *Lazy) Close() error {
	if l.n == nil {
		return nil
	}
	return l.n.Close()
}
