// Package store provides persistence for the ledger: YAML files for
// categorization rules and an SQLite database for the ledger itself.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/butterfly-ledger/internal/fileutils"
	"fjacquet/butterfly-ledger/internal/logging"
	"fjacquet/butterfly-ledger/internal/models"

	"gopkg.in/yaml.v3"
)

// CategoryStore manages loading and saving of categorization data
type CategoryStore struct {
	Dir          string
	KeywordsFile string
	MappingsFile string
	logger       logging.Logger
}

// NewCategoryStore creates a store whose relative file names resolve inside dir.
func NewCategoryStore(dir, keywordsFile, mappingsFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CategoryStore{
		Dir:          dir,
		KeywordsFile: keywordsFile,
		MappingsFile: mappingsFile,
		logger:       logger.WithField(logging.FieldComponent, "category_store"),
	}
}

// FindConfigFile looks for a configuration file in the data directory, then
// in the working directory.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{filename}
	if s.Dir != "" {
		locations = append([]string{filepath.Join(s.Dir, filename)}, locations...)
	}
	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// readConfigFile returns the file content, or nil when the file does not exist.
func (s *CategoryStore) readConfigFile(filename string) ([]byte, string, error) {
	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", nil
		}
		return nil, "", err
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("error reading %s: %w", filePath, err)
	}
	return data, filePath, nil
}

// LoadKeywordRules loads the ordered keyword rules. A missing file yields no
// rules. Both a top level "rules:" key and a bare list are accepted.
func (s *CategoryStore) LoadKeywordRules() ([]models.KeywordRule, error) {
	data, filePath, err := s.readConfigFile(s.KeywordsFile)
	if err != nil {
		return nil, fmt.Errorf("error resolving keywords file: %w", err)
	}
	if data == nil {
		s.logger.Debug("Keywords file not found, using built-in rules",
			logging.Field{Key: logging.FieldFile, Value: s.KeywordsFile})
		return []models.KeywordRule{}, nil
	}

	var rules []models.KeywordRule
	var cfg models.KeywordRulesConfig
	if err := yaml.Unmarshal(data, &cfg); err == nil && len(cfg.Rules) > 0 {
		rules = cfg.Rules
	} else if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("error parsing keywords file %s: %w", filePath, err)
	}

	for i, rule := range rules {
		if rule.Keyword == "" {
			return nil, fmt.Errorf("keyword rule %d in %s has an empty keyword", i+1, filePath)
		}
		category, ok := models.ParseCategory(string(rule.Category))
		if !ok {
			return nil, fmt.Errorf("keyword rule %q in %s has unknown category %q", rule.Keyword, filePath, rule.Category)
		}
		rules[i].Category = category
	}

	s.logger.Debug("Loaded keyword rules",
		logging.Field{Key: logging.FieldCount, Value: len(rules)},
		logging.Field{Key: logging.FieldFile, Value: filePath})
	return rules, nil
}

// LoadMappings loads the learned description to category mappings. Unknown
// categories are dropped with a warning.
func (s *CategoryStore) LoadMappings() (map[string]models.Category, error) {
	data, filePath, err := s.readConfigFile(s.MappingsFile)
	if err != nil {
		return nil, fmt.Errorf("error resolving mappings file: %w", err)
	}
	if data == nil {
		return map[string]models.Category{}, nil
	}

	var raw map[string]string
	var cfg struct {
		Mappings map[string]string `yaml:"mappings"`
	}
	if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Mappings != nil {
		raw = cfg.Mappings
	} else if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing mappings file %s: %w", filePath, err)
	}

	mappings := make(map[string]models.Category, len(raw))
	for description, name := range raw {
		category, ok := models.ParseCategory(name)
		if !ok {
			s.logger.Warn("Ignoring mapping with unknown category",
				logging.Field{Key: logging.FieldKeyword, Value: description},
				logging.Field{Key: logging.FieldCategory, Value: name})
			continue
		}
		mappings[models.NormalizeDescription(description)] = category
	}

	s.logger.Debug("Loaded category mappings",
		logging.Field{Key: logging.FieldCount, Value: len(mappings)},
		logging.Field{Key: logging.FieldFile, Value: filePath})
	return mappings, nil
}

// SaveMappings writes the mappings file, into the data directory unless it
// already exists elsewhere.
func (s *CategoryStore) SaveMappings(mappings map[string]models.Category) error {
	filePath, err := s.FindConfigFile(s.MappingsFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error resolving mappings file: %w", err)
		}
		filePath = s.MappingsFile
		if !filepath.IsAbs(filePath) && s.Dir != "" {
			filePath = filepath.Join(s.Dir, filePath)
		}
	}

	if err := fileutils.EnsureParentDirectory(filePath); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(models.MappingsConfig{Mappings: mappings})
	if err != nil {
		return fmt.Errorf("error marshaling mappings: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("error writing mappings: %w", err)
	}

	s.logger.Debug("Saved category mappings",
		logging.Field{Key: logging.FieldCount, Value: len(mappings)},
		logging.Field{Key: logging.FieldFile, Value: filePath})
	return nil
}
