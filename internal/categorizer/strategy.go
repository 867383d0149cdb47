package categorizer

import (
	"context"

	"fjacquet/butterfly-ledger/internal/models"
)

// CategorizationStrategy is one way of guessing a category from a description.
type CategorizationStrategy interface {
	// Categorize returns the category and true when the strategy recognises
	// the description.
	Categorize(ctx context.Context, description string) (models.Category, bool, error)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
