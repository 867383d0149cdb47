package service

import (
	"context"
	"fmt"
	"time"

	"fjacquet/butterfly-ledger/internal/dateutils"
	"fjacquet/butterfly-ledger/internal/ledger"
	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
	"fjacquet/butterfly-ledger/internal/notify"

	"golang.org/x/sync/errgroup"
)

// Dashboard starts the session and computes every view over one snapshot.
func (s *LedgerService) Dashboard(ctx context.Context, today time.Time) (models.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, err := s.startSession(ctx, today); err != nil {
		return models.Dashboard{}, err
	}
	snap, err := s.snapshot(ctx, today)
	if err != nil {
		return models.Dashboard{}, err
	}

	d := models.Dashboard{
		Today:       dateutils.ToISODate(today),
		Budget:      snap.Budget,
		Rollover:    s.sessionRollover,
		SavingsGoal: snap.Goal,
	}

	// each goroutine owns one field of d; the snapshot is read only
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.Summary = ledger.Summarize(snap.Transactions, snap.Budget, today)
		return gctx.Err()
	})
	g.Go(func() error {
		d.Predictions = s.opts.Predictor.Predict(snap.Transactions, today)
		return gctx.Err()
	})
	g.Go(func() error {
		d.YoY = ledger.CalculateYoYComparison(snap.Transactions, today)
		return gctx.Err()
	})
	g.Go(func() error {
		d.Reminders = ledger.DueReminders(snap.Transactions, today, s.opts.LeadDays)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return models.Dashboard{}, fmt.Errorf("build dashboard: %w", err)
	}
	return d, nil
}

// Reminders lists unpaid expenses due within the lead days without sending.
func (s *LedgerService) Reminders(ctx context.Context, today time.Time) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return ledger.DueReminders(txs, today, s.opts.LeadDays), nil
}

// SendReminders notifies every due payment and marks the delivered ones so
// they are not sent twice. It returns the due reminders and the delivered ids.
func (s *LedgerService) SendReminders(ctx context.Context, today time.Time) ([]models.Reminder, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list transactions: %w", err)
	}
	due := ledger.DueReminders(txs, today, s.opts.LeadDays)
	if len(due) == 0 {
		return due, []string{}, nil
	}

	delivered, dispatchErr := notify.Dispatch(ctx, s.notifier, due, s.logger)
	if len(delivered) > 0 {
		if err := s.store.MarkReminded(ctx, delivered); err != nil {
			return due, delivered, fmt.Errorf("mark reminded: %w", err)
		}
	}
	if dispatchErr != nil {
		return due, delivered, dispatchErr
	}

	s.logger.Info("Reminders sent", todayFields(today),
		logging.Field{Key: logging.FieldCount, Value: len(delivered)})
	return due, delivered, nil
}
