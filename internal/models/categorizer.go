package models

// KeywordRule files descriptions containing Keyword under Category.
type KeywordRule struct {
	Keyword  string   `yaml:"keyword"`
	Category Category `yaml:"category"`
}

// KeywordRulesConfig represents the structure of the keywords YAML file.
// Rule order matters: the first matching keyword wins.
type KeywordRulesConfig struct {
	Rules []KeywordRule `yaml:"rules"`
}

// MappingsConfig represents the structure of the learned mappings YAML file
type MappingsConfig struct {
	Mappings map[string]Category `yaml:"mappings"`
}
