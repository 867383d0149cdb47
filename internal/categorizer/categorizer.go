// Package categorizer suggests a category for a transaction description:
// first from mappings learned from the user's explicit choices, then from
// ordered keyword rules. Descriptions nothing recognises are filed as Other.
package categorizer

import (
	"context"

	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
)

// Categorizer runs the strategies in order and manages learned mappings.
type Categorizer struct {
	direct     *DirectMappingStrategy
	keyword    *KeywordStrategy
	strategies []CategorizationStrategy
	autoLearn  bool
	logger     logging.Logger
}

// NewCategorizer loads rules and mappings from store. When autoLearn is off
// Learn is a no-op.
func NewCategorizer(store CategoryStoreInterface, logger logging.Logger, autoLearn bool) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger = logger.WithField(logging.FieldComponent, "categorizer")

	direct := NewDirectMappingStrategy(store, logger)
	keyword := NewKeywordStrategy(store, logger)
	return &Categorizer{
		direct:     direct,
		keyword:    keyword,
		strategies: []CategorizationStrategy{direct, keyword},
		autoLearn:  autoLearn,
		logger:     logger,
	}
}

// Strategies returns the strategies in the order they are tried.
func (c *Categorizer) Strategies() []CategorizationStrategy {
	out := make([]CategorizationStrategy, len(c.strategies))
	copy(out, c.strategies)
	return out
}

// Explain runs every strategy and reports each outcome.
func (c *Categorizer) Explain(ctx context.Context, description string) StrategyResults {
	results := StrategyResults{Results: make([]StrategyResult, 0, len(c.strategies))}
	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, description)
		results.Results = append(results.Results, StrategyResult{
			Strategy: strategy.Name(),
			Category: category,
			Found:    found,
			Error:    err,
		})
	}
	return results
}

// Suggest returns the category for a new transaction. Income is always
// CategoryIncome; an expense gets the first strategy match or CategoryOther.
func (c *Categorizer) Suggest(ctx context.Context, description string, txType models.TransactionType) (models.Category, error) {
	if txType == models.TransactionTypeIncome {
		return models.CategoryIncome, nil
	}

	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, description)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			c.logger.WithError(err).Warn("Categorization strategy failed",
				logging.Field{Key: logging.FieldStrategy, Value: strategy.Name()})
			continue
		}
		if found {
			return category, nil
		}
	}
	return models.CategoryOther, nil
}

// Learn remembers an explicit choice for an expense description. It reports
// whether a mapping was added or changed.
func (c *Categorizer) Learn(description string, category models.Category) bool {
	if !c.autoLearn || category == models.CategoryIncome {
		return false
	}
	changed := c.direct.Learn(description, category)
	if changed {
		c.logger.Debug("Learned category mapping",
			logging.Field{Key: logging.FieldCategory, Value: category})
	}
	return changed
}

// Save persists learned mappings that changed.
func (c *Categorizer) Save() error {
	return c.direct.Save()
}

// KeywordRules returns the active keyword rules.
func (c *Categorizer) KeywordRules() []models.KeywordRule {
	return c.keyword.Rules()
}

// MappingCount returns the number of learned mappings.
func (c *Categorizer) MappingCount() int {
	return c.direct.Len()
}
