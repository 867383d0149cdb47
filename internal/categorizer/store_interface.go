package categorizer

import "fjacquet/butterfly-ledger/internal/models"

// CategoryStoreInterface is the persistence the categorizer needs.
type CategoryStoreInterface interface {
	LoadKeywordRules() ([]models.KeywordRule, error)
	LoadMappings() (map[string]models.Category, error)
	SaveMappings(mappings map[string]models.Category) error
}
