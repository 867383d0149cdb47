// Package service ties storage, the ledger core, categorization and
// notifications together. LedgerService is the single writer of a ledger.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fjacquet/butterfly-ledger/internal/categorizer"
	"fjacquet/butterfly-ledger/internal/dateutils"
	"fjacquet/butterfly-ledger/internal/ledger"
	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
	"fjacquet/butterfly-ledger/internal/notify"
	"fjacquet/butterfly-ledger/internal/store"
	"fjacquet/butterfly-ledger/internal/validation"

	"github.com/shopspring/decimal"
)

// LedgerStore is the persistence the service needs.
type LedgerStore interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (models.Transaction, error)
	AddTransaction(ctx context.Context, tx models.Transaction) error
	AddTransactions(ctx context.Context, txs []models.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	MarkPaid(ctx context.Context, id string, paid bool) error
	MarkReminded(ctx context.Context, ids []string) error
	LoadBudget(ctx context.Context, today time.Time, initial decimal.Decimal) (models.BudgetState, error)
	SaveBudget(ctx context.Context, b models.BudgetState) error
	LoadSavingsGoal(ctx context.Context) (models.SavingsGoal, error)
	SaveSavingsGoal(ctx context.Context, goal models.SavingsGoal) error
	Snapshot(ctx context.Context) (store.Snapshot, error)
	ReplaceAll(ctx context.Context, snap store.Snapshot) error
}

// Options tune the service.
type Options struct {
	InitialBudget decimal.Decimal
	Predictor     *ledger.Predictor
	LeadDays      int
	Delimiter     rune
}

// LedgerService runs ledger operations one at a time.
type LedgerService struct {
	mu          sync.Mutex
	store       LedgerStore
	categorizer *categorizer.Categorizer
	notifier    notify.Notifier
	opts        Options
	logger      logging.Logger

	// rollover applied by StartSession in this process, if any
	sessionRollover *models.RolloverResult
}

// NewLedgerService creates the service. A nil predictor uses the default
// options.
func NewLedgerService(st LedgerStore, cat *categorizer.Categorizer, n notify.Notifier, opts Options, logger logging.Logger) *LedgerService {
	if opts.Predictor == nil {
		opts.Predictor = ledger.NewPredictor(ledger.DefaultPredictorOptions())
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &LedgerService{
		store:       st,
		categorizer: cat,
		notifier:    n,
		opts:        opts,
		logger:      logger.WithField(logging.FieldComponent, "ledger"),
	}
}

func todayFields(today time.Time) logging.Field {
	return logging.Field{Key: logging.FieldToday, Value: dateutils.ToISODate(today)}
}

// StartSession settles the previous month into the budget if that has not
// happened for today's month yet. The boolean reports whether a rollover ran.
func (s *LedgerService) StartSession(ctx context.Context, today time.Time) (models.RolloverResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startSession(ctx, today)
}

func (s *LedgerService) startSession(ctx context.Context, today time.Time) (models.RolloverResult, bool, error) {
	budget, err := s.store.LoadBudget(ctx, today, s.opts.InitialBudget)
	if err != nil {
		return models.RolloverResult{}, false, fmt.Errorf("load budget: %w", err)
	}
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return models.RolloverResult{}, false, fmt.Errorf("list transactions: %w", err)
	}

	result, applied := ledger.ProcessRollover(budget, txs, today)
	if !applied {
		s.logger.Debug("Budget already settled", todayFields(today),
			logging.Field{Key: logging.FieldMonth, Value: budget.LastRolloverMonth})
		return models.RolloverResult{}, false, nil
	}

	if err := s.store.SaveBudget(ctx, result.Budget); err != nil {
		return models.RolloverResult{}, false, fmt.Errorf("save budget: %w", err)
	}
	s.sessionRollover = &result
	s.logger.Info("Rollover processed", todayFields(today),
		logging.Field{Key: logging.FieldSurplus, Value: result.Surplus.String()},
		logging.Field{Key: logging.FieldMonthlyLimit, Value: result.Budget.MonthlyLimit.String()})
	return result, true, nil
}

// Budget returns the current budget state.
func (s *LedgerService) Budget(ctx context.Context, today time.Time) (models.BudgetState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadBudget(ctx, today, s.opts.InitialBudget)
}

// UpdateBudget sets a new base allowance, keeping the carry-over.
func (s *LedgerService) UpdateBudget(ctx context.Context, today time.Time, newBase decimal.Decimal) (models.BudgetState, error) {
	if err := validation.ValidateBaseAmount(newBase); err != nil {
		return models.BudgetState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	budget, err := s.store.LoadBudget(ctx, today, s.opts.InitialBudget)
	if err != nil {
		return models.BudgetState{}, fmt.Errorf("load budget: %w", err)
	}
	updated := budget.UpdateBudget(newBase)
	if err := s.store.SaveBudget(ctx, updated); err != nil {
		return models.BudgetState{}, fmt.Errorf("save budget: %w", err)
	}
	s.logger.Info("Budget updated",
		logging.Field{Key: logging.FieldAmount, Value: newBase.String()},
		logging.Field{Key: logging.FieldMonthlyLimit, Value: updated.MonthlyLimit.String()})
	return updated, nil
}

// snapshot makes sure the budget exists, then reads the whole ledger.
func (s *LedgerService) snapshot(ctx context.Context, today time.Time) (store.Snapshot, error) {
	if _, err := s.store.LoadBudget(ctx, today, s.opts.InitialBudget); err != nil {
		return store.Snapshot{}, fmt.Errorf("load budget: %w", err)
	}
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	return snap, nil
}

// Predictions returns the shopping items expected around today.
func (s *LedgerService) Predictions(ctx context.Context, today time.Time) ([]models.PredictedItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	items := s.opts.Predictor.Predict(txs, today)
	s.logger.Debug("Predicted purchases", todayFields(today),
		logging.Field{Key: logging.FieldCount, Value: len(items)})
	return items, nil
}

// YoY compares this month's spending with the same month last year.
func (s *LedgerService) YoY(ctx context.Context, today time.Time) (models.YoYStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return models.YoYStats{}, fmt.Errorf("list transactions: %w", err)
	}
	return ledger.CalculateYoYComparison(txs, today), nil
}

// Summary aggregates the month of today.
func (s *LedgerService) Summary(ctx context.Context, today time.Time) (models.MonthlySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.snapshot(ctx, today)
	if err != nil {
		return models.MonthlySummary{}, err
	}
	return ledger.Summarize(snap.Transactions, snap.Budget, today), nil
}

// SavingsGoal returns the stored goal or the default one.
func (s *LedgerService) SavingsGoal(ctx context.Context) (models.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadSavingsGoal(ctx)
}

// SetSavingsGoal validates and stores goal.
func (s *LedgerService) SetSavingsGoal(ctx context.Context, goal models.SavingsGoal) (models.SavingsGoal, error) {
	if err := validation.ValidateSavingsGoal(goal); err != nil {
		return models.SavingsGoal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveSavingsGoal(ctx, goal); err != nil {
		return models.SavingsGoal{}, err
	}
	s.logger.Info("Savings goal updated",
		logging.Field{Key: "goal", Value: goal.Name},
		logging.Field{Key: logging.FieldAmount, Value: goal.TargetAmount.String()})
	return goal, nil
}
