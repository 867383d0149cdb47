package service

import (
	"context"
	"fmt"

	"fjacquet/butterfly-ledger/internal/ledger"
	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
	"fjacquet/butterfly-ledger/internal/validation"

	"github.com/google/uuid"
)

// AddTransaction stores a new transaction. An expense without a category is
// categorized automatically; an explicit category is learned for next time.
func (s *LedgerService) AddTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.Type == "" {
		tx.Type = models.TransactionTypeExpense
	}

	explicit := false
	switch {
	case tx.IsIncome():
		tx.Category = models.CategoryIncome
	case tx.Category == "":
		category, err := s.categorizer.Suggest(ctx, tx.Description, tx.Type)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("categorize: %w", err)
		}
		tx.Category = category
	default:
		explicit = true
	}

	if err := validation.ValidateTransaction(tx); err != nil {
		return models.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.AddTransaction(ctx, tx); err != nil {
		return models.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	if explicit && s.categorizer.Learn(tx.Description, tx.Category) {
		if err := s.categorizer.Save(); err != nil {
			s.logger.WithError(err).Warn("Failed to save learned mappings")
		}
	}

	s.logger.Info("Transaction added",
		logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
		logging.Field{Key: logging.FieldCategory, Value: tx.Category},
		logging.Field{Key: logging.FieldAmount, Value: tx.Amount.String()})
	return tx, nil
}

// Transactions lists the ledger, optionally only one YYYY-MM month.
func (s *LedgerService) Transactions(ctx context.Context, month string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if month != "" {
		txs = ledger.TransactionsInMonth(txs, month)
	}
	return txs, nil
}

// DeleteTransaction removes a transaction by id.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Transaction deleted", logging.Field{Key: logging.FieldTransactionID, Value: id})
	return nil
}

// MarkPaid sets the paid flag of a transaction.
func (s *LedgerService) MarkPaid(ctx context.Context, id string, paid bool) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.MarkPaid(ctx, id, paid); err != nil {
		return models.Transaction{}, err
	}
	s.logger.Info("Transaction paid flag changed",
		logging.Field{Key: logging.FieldTransactionID, Value: id},
		logging.Field{Key: "paid", Value: paid})
	return s.store.GetTransaction(ctx, id)
}

// Categorize explains which category a description would get and which
// strategy chose it. The strategy is empty when nothing matched.
func (s *LedgerService) Categorize(ctx context.Context, description string) (models.Category, string, error) {
	results := s.categorizer.Explain(ctx, description)
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	for _, e := range results.GetErrors() {
		s.logger.WithError(e).Warn("Categorization strategy failed")
	}
	best, ok := results.GetBestResult()
	if !ok {
		return models.CategoryOther, "", nil
	}
	s.logger.Debug("Category suggested",
		logging.Field{Key: logging.FieldCategory, Value: best.Category},
		logging.Field{Key: logging.FieldStrategy, Value: results.Summary()})
	return best.Category, best.Strategy, nil
}
