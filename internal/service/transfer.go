package service

import (
	"context"
	"fmt"
	"time"

	"fjacquet/butterfly-ledger/internal/common"
	"fjacquet/butterfly-ledger/internal/ledger"
	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
	"fjacquet/butterfly-ledger/internal/store"
	"fjacquet/butterfly-ledger/internal/validation"

	"github.com/google/uuid"
)

// ImportResult reports what an import did.
type ImportResult struct {
	Imported       int                        `json:"imported"`
	Categorization models.CategorizationStats `json:"categorization"`
	BudgetMigrated bool                       `json:"budgetMigrated,omitempty"`
}

// ImportCSV appends the transactions of a CSV file. Rows without an id get
// a new one and expenses without a category are categorized. Nothing is
// stored unless every row is valid.
func (s *LedgerService) ImportCSV(ctx context.Context, path string) (ImportResult, error) {
	txs, err := common.ReadTransactionsCSV(path, s.opts.Delimiter, s.logger)
	if err != nil {
		return ImportResult{}, err
	}
	for i := range txs {
		if txs[i].ID == "" {
			txs[i].ID = uuid.New().String()
		}
	}

	categorized, stats := common.CategorizeImported(ctx, txs, s.categorizer, s.logger, path)
	if err := validation.ValidateTransactions(categorized); err != nil {
		return ImportResult{}, fmt.Errorf("import %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.AddTransactions(ctx, categorized); err != nil {
		return ImportResult{}, fmt.Errorf("import %s: %w", path, err)
	}
	s.logger.Info("Imported transactions",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(categorized)})
	return ImportResult{Imported: len(categorized), Categorization: stats}, nil
}

// ExportCSV writes the ledger, or one YYYY-MM month of it, to a CSV file and
// returns the number of rows written.
func (s *LedgerService) ExportCSV(ctx context.Context, path, month string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("list transactions: %w", err)
	}
	if month != "" {
		txs = ledger.TransactionsInMonth(txs, month)
	}
	if err := common.WriteTransactionsToCSV(txs, path, s.opts.Delimiter, s.logger); err != nil {
		return 0, err
	}
	return len(txs), nil
}

// ImportJSON replaces the whole ledger with a JSON export. A budget written
// before rollover tracking is migrated for the month of today.
func (s *LedgerService) ImportJSON(ctx context.Context, path string, today time.Time) (ImportResult, error) {
	snap, migrated, err := store.ImportJSONSnapshot(path, today, s.opts.InitialBudget)
	if err != nil {
		return ImportResult{}, err
	}
	if err := validation.ValidateTransactions(snap.Transactions); err != nil {
		return ImportResult{}, fmt.Errorf("import %s: %w", path, err)
	}
	if err := validation.ValidateBaseAmount(snap.Budget.BaseAmount); err != nil {
		return ImportResult{}, fmt.Errorf("import %s: %w", path, err)
	}
	if err := validation.ValidateSavingsGoal(snap.Goal); err != nil {
		return ImportResult{}, fmt.Errorf("import %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ReplaceAll(ctx, snap); err != nil {
		return ImportResult{}, fmt.Errorf("import %s: %w", path, err)
	}
	s.sessionRollover = nil
	s.logger.Info("Replaced ledger from JSON export",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(snap.Transactions)},
		logging.Field{Key: "budget_migrated", Value: migrated})
	return ImportResult{Imported: len(snap.Transactions), BudgetMigrated: migrated}, nil
}

// ExportJSON writes the whole ledger as a JSON export.
func (s *LedgerService) ExportJSON(ctx context.Context, path string, today time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.snapshot(ctx, today)
	if err != nil {
		return 0, err
	}
	if err := store.WriteJSONSnapshot(path, snap); err != nil {
		return 0, err
	}
	s.logger.Info("Exported ledger to JSON",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(snap.Transactions)})
	return len(snap.Transactions), nil
}
