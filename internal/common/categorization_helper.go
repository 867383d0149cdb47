package common

import (
	"context"

	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
)

// CategorySuggester is the part of the categorizer imports need.
type CategorySuggester interface {
	Suggest(ctx context.Context, description string, txType models.TransactionType) (models.Category, error)
}

// CategorizeImported fills the category of every transaction that has none.
// Income is always filed as Income. A failed suggestion files the
// transaction under Other. The input slice is not modified.
func CategorizeImported(
	ctx context.Context,
	transactions []models.Transaction,
	suggester CategorySuggester,
	logger logging.Logger,
	source string,
) ([]models.Transaction, models.CategorizationStats) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	var stats models.CategorizationStats
	processed := models.CloneTransactions(transactions)

	for i := range processed {
		stats.Total++
		tx := &processed[i]

		if tx.IsIncome() {
			if tx.Category == "" {
				stats.Successful++
			} else {
				stats.Provided++
			}
			tx.Category = models.CategoryIncome
			continue
		}

		if tx.Category != "" {
			stats.Provided++
			continue
		}

		if suggester == nil {
			stats.Uncategorized++
			tx.Category = models.CategoryOther
			continue
		}

		category, err := suggester.Suggest(ctx, tx.Description, tx.Type)
		switch {
		case err != nil:
			logger.WithError(err).Warn("Categorization failed",
				logging.Field{Key: logging.FieldFile, Value: source},
				logging.Field{Key: logging.FieldTransactionID, Value: tx.ID})
			stats.Failed++
			tx.Category = models.CategoryOther
		case category == models.CategoryOther || category == "":
			stats.Uncategorized++
			tx.Category = models.CategoryOther
		default:
			logger.Debug("Transaction categorized successfully",
				logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
				logging.Field{Key: logging.FieldCategory, Value: category})
			stats.Successful++
			tx.Category = category
		}
	}

	stats.LogSummary(logger, source)
	return processed, stats
}
