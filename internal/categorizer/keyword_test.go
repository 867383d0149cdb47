package categorizer

import (
	"context"
	"errors"
	"testing"

	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
	"fjacquet/butterfly-ledger/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordStrategy_Name(t *testing.T) {
	strategy := &KeywordStrategy{}
	assert.Equal(t, "Keyword", strategy.Name())
}

func TestKeywordStrategy_DefaultRules(t *testing.T) {
	strategy := NewKeywordStrategy(&store.MockCategoryStore{}, logging.NewMockLogger())

	tests := []struct {
		name          string
		description   string
		expected      models.Category
		expectedFound bool
	}{
		{"grocery", "Weekly grocery run", models.CategoryFood, true},
		{"case insensitive", "NETFLIX subscription", models.CategoryEntertainment, true},
		{"substring inside word", "Amazonia books", models.CategoryShopping, true},
		{"first rule wins over later rule", "Uber Eats burger", models.CategoryFood, true},
		{"earlier utilities rule beats shopping", "Target water filter", models.CategoryUtilities, true},
		{"housing", "Monthly rent", models.CategoryHousing, true},
		{"healthcare", "CVS receipt", models.CategoryHealthcare, true},
		{"personal", "Hair cut", models.CategoryPersonal, true},
		{"no match", "Birthday gift", "", false},
		{"blank", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, found, err := strategy.Categorize(context.Background(), tt.description)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedFound, found)
			assert.Equal(t, tt.expected, category)
		})
	}
}

func TestKeywordStrategy_StoreRulesReplaceDefaults(t *testing.T) {
	mockStore := &store.MockCategoryStore{
		KeywordRules: []models.KeywordRule{
			{Keyword: "  Bakery ", Category: models.CategoryFood},
			{Keyword: "", Category: models.CategoryOther},
			{Keyword: "netflix", Category: models.CategoryPersonal},
		},
	}
	strategy := NewKeywordStrategy(mockStore, logging.NewMockLogger())

	rules := strategy.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "bakery", rules[0].Keyword)

	category, found, err := strategy.Categorize(context.Background(), "Corner BAKERY")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.CategoryFood, category)

	category, found, err = strategy.Categorize(context.Background(), "Netflix")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.CategoryPersonal, category)

	// built-in rules are no longer active
	_, found, err = strategy.Categorize(context.Background(), "Spotify")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKeywordStrategy_StoreErrorFallsBackToDefaults(t *testing.T) {
	logger := logging.NewMockLogger()
	mockStore := &store.MockCategoryStore{LoadKeywordRulesError: errors.New("bad yaml")}

	strategy := NewKeywordStrategy(mockStore, logger)

	assert.Equal(t, len(DefaultKeywordRules), len(strategy.Rules()))
	assert.True(t, logger.HasEntry("WARN", "Failed to load keyword rules, using built-in rules"))
}

func TestKeywordStrategy_CancelledContext(t *testing.T) {
	strategy := NewKeywordStrategy(nil, logging.NewMockLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, found, err := strategy.Categorize(ctx, "grocery")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, found)
}

func TestDefaultKeywordRulesAreLowercaseAndValid(t *testing.T) {
	seen := map[string]bool{}
	for _, rule := range DefaultKeywordRules {
		assert.Equal(t, rule.Keyword, models.NormalizeDescription(rule.Keyword))
		assert.True(t, rule.Category.IsValid(), rule.Keyword)
		assert.NotEqual(t, models.CategoryIncome, rule.Category)
		assert.False(t, seen[rule.Keyword], "duplicate keyword %s", rule.Keyword)
		seen[rule.Keyword] = true
	}
}
