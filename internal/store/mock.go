package store

import (
	"fjacquet/butterfly-ledger/internal/models"
)

// MockCategoryStore is an in-memory CategoryStore for testing.
type MockCategoryStore struct {
	KeywordRules []models.KeywordRule
	Mappings     map[string]models.Category
	SaveCalls    int

	// Error flags for testing error conditions
	LoadKeywordRulesError error
	LoadMappingsError     error
	SaveMappingsError     error
}

// LoadKeywordRules returns the mock rules.
func (m *MockCategoryStore) LoadKeywordRules() ([]models.KeywordRule, error) {
	if m.LoadKeywordRulesError != nil {
		return nil, m.LoadKeywordRulesError
	}
	return m.KeywordRules, nil
}

// LoadMappings returns a copy of the mock mappings.
func (m *MockCategoryStore) LoadMappings() (map[string]models.Category, error) {
	if m.LoadMappingsError != nil {
		return nil, m.LoadMappingsError
	}
	result := make(map[string]models.Category, len(m.Mappings))
	for k, v := range m.Mappings {
		result[k] = v
	}
	return result, nil
}

// SaveMappings replaces the mock mappings.
func (m *MockCategoryStore) SaveMappings(mappings map[string]models.Category) error {
	m.SaveCalls++
	if m.SaveMappingsError != nil {
		return m.SaveMappingsError
	}
	m.Mappings = make(map[string]models.Category, len(mappings))
	for k, v := range mappings {
		m.Mappings[k] = v
	}
	return nil
}
