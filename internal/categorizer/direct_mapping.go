package categorizer

import (
	"context"
	"sync"

	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"
)

// DirectMappingStrategy categorizes descriptions the user already filed
// explicitly. Keys are normalized descriptions.
type DirectMappingStrategy struct {
	mappings map[string]models.Category
	store    CategoryStoreInterface
	logger   logging.Logger
	mu       sync.RWMutex
	dirty    bool
}

// NewDirectMappingStrategy creates a new DirectMappingStrategy instance.
func NewDirectMappingStrategy(store CategoryStoreInterface, logger logging.Logger) *DirectMappingStrategy {
	strategy := &DirectMappingStrategy{
		mappings: make(map[string]models.Category),
		store:    store,
		logger:   logger,
	}
	strategy.loadMappings()
	return strategy
}

// Name returns the name of this strategy for logging and debugging.
func (s *DirectMappingStrategy) Name() string {
	return "DirectMapping"
}

// Categorize looks the normalized description up in the learned mappings.
func (s *DirectMappingStrategy) Categorize(ctx context.Context, description string) (models.Category, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	key := models.NormalizeDescription(description)
	if key == "" {
		return "", false, nil
	}

	s.mu.RLock()
	category, found := s.mappings[key]
	s.mu.RUnlock()

	if found {
		s.logger.WithFields(
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
			logging.Field{Key: logging.FieldCategory, Value: category},
		).Debug("Description categorized using direct mapping")
	}
	return category, found, nil
}

// Learn records description under category. It reports whether the mapping changed.
func (s *DirectMappingStrategy) Learn(description string, category models.Category) bool {
	key := models.NormalizeDescription(description)
	if key == "" || !category.IsValid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.mappings[key]; ok && current == category {
		return false
	}
	s.mappings[key] = category
	s.dirty = true
	return true
}

// Save persists the mappings when they changed since the last load or save.
func (s *DirectMappingStrategy) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty || s.store == nil {
		return nil
	}
	snapshot := make(map[string]models.Category, len(s.mappings))
	for k, v := range s.mappings {
		snapshot[k] = v
	}
	if err := s.store.SaveMappings(snapshot); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Len returns the number of known mappings.
func (s *DirectMappingStrategy) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mappings)
}

func (s *DirectMappingStrategy) loadMappings() {
	if s.store == nil {
		return
	}
	mappings, err := s.store.LoadMappings()
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load category mappings for DirectMappingStrategy")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, category := range mappings {
		s.mappings[models.NormalizeDescription(key)] = category
	}
}
