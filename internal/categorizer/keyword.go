package categorizer

import (
	"context"
	"strings"

	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
)

// DefaultKeywordRules are the built-in suggestions, checked in order.
var DefaultKeywordRules = []models.KeywordRule{
	{Keyword: "grocery", Category: models.CategoryFood},
	{Keyword: "supermarket", Category: models.CategoryFood},
	{Keyword: "market", Category: models.CategoryFood},
	{Keyword: "food", Category: models.CategoryFood},
	{Keyword: "restaurant", Category: models.CategoryFood},
	{Keyword: "cafe", Category: models.CategoryFood},
	{Keyword: "coffee", Category: models.CategoryFood},
	{Keyword: "pizza", Category: models.CategoryFood},
	{Keyword: "burger", Category: models.CategoryFood},
	{Keyword: "uber", Category: models.CategoryTransport},
	{Keyword: "lyft", Category: models.CategoryTransport},
	{Keyword: "gas", Category: models.CategoryTransport},
	{Keyword: "fuel", Category: models.CategoryTransport},
	{Keyword: "shell", Category: models.CategoryTransport},
	{Keyword: "chevron", Category: models.CategoryTransport},
	{Keyword: "parking", Category: models.CategoryTransport},
	{Keyword: "electric", Category: models.CategoryUtilities},
	{Keyword: "water", Category: models.CategoryUtilities},
	{Keyword: "internet", Category: models.CategoryUtilities},
	{Keyword: "wifi", Category: models.CategoryUtilities},
	{Keyword: "mobile", Category: models.CategoryUtilities},
	{Keyword: "phone", Category: models.CategoryUtilities},
	{Keyword: "cinema", Category: models.CategoryEntertainment},
	{Keyword: "movie", Category: models.CategoryEntertainment},
	{Keyword: "netflix", Category: models.CategoryEntertainment},
	{Keyword: "spotify", Category: models.CategoryEntertainment},
	{Keyword: "hulu", Category: models.CategoryEntertainment},
	{Keyword: "doctor", Category: models.CategoryHealthcare},
	{Keyword: "pharmacy", Category: models.CategoryHealthcare},
	{Keyword: "cvs", Category: models.CategoryHealthcare},
	{Keyword: "walgreens", Category: models.CategoryHealthcare},
	{Keyword: "gym", Category: models.CategoryPersonal},
	{Keyword: "fitness", Category: models.CategoryPersonal},
	{Keyword: "hair", Category: models.CategoryPersonal},
	{Keyword: "salon", Category: models.CategoryPersonal},
	{Keyword: "amazon", Category: models.CategoryShopping},
	{Keyword: "target", Category: models.CategoryShopping},
	{Keyword: "walmart", Category: models.CategoryShopping},
	{Keyword: "clothes", Category: models.CategoryShopping},
	{Keyword: "shoes", Category: models.CategoryShopping},
	{Keyword: "rent", Category: models.CategoryHousing},
	{Keyword: "mortgage", Category: models.CategoryHousing},
}

// KeywordStrategy implements categorization by case-insensitive substring
// matching. Rules come from the store when it has any, otherwise from
// DefaultKeywordRules.
type KeywordStrategy struct {
	rules  []models.KeywordRule
	store  CategoryStoreInterface
	logger logging.Logger
}

// NewKeywordStrategy creates a new KeywordStrategy instance.
func NewKeywordStrategy(store CategoryStoreInterface, logger logging.Logger) *KeywordStrategy {
	strategy := &KeywordStrategy{
		store:  store,
		logger: logger,
	}
	strategy.loadRules()
	return strategy
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Rules returns the active rules in match order.
func (s *KeywordStrategy) Rules() []models.KeywordRule {
	out := make([]models.KeywordRule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Categorize returns the category of the first rule whose keyword occurs in
// the description.
func (s *KeywordStrategy) Categorize(ctx context.Context, description string) (models.Category, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	lower := strings.ToLower(description)
	if strings.TrimSpace(lower) == "" {
		return "", false, nil
	}

	for _, rule := range s.rules {
		if strings.Contains(lower, rule.Keyword) {
			s.logger.WithFields(
				logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
				logging.Field{Key: logging.FieldKeyword, Value: rule.Keyword},
				logging.Field{Key: logging.FieldCategory, Value: rule.Category},
			).Debug("Description categorized using keyword matching")
			return rule.Category, true, nil
		}
	}
	return "", false, nil
}

func (s *KeywordStrategy) loadRules() {
	s.rules = DefaultKeywordRules
	if s.store == nil {
		return
	}

	rules, err := s.store.LoadKeywordRules()
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load keyword rules, using built-in rules")
		return
	}
	if len(rules) == 0 {
		return
	}

	normalized := make([]models.KeywordRule, 0, len(rules))
	for _, rule := range rules {
		keyword := strings.ToLower(strings.TrimSpace(rule.Keyword))
		if keyword == "" {
			continue
		}
		normalized = append(normalized, models.KeywordRule{Keyword: keyword, Category: rule.Category})
	}
	s.rules = normalized
}
