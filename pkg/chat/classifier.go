package chat

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is the routing decision for a free-text question.
type Category string

const (
	CategoryPatientList Category = "PATIENT_LIST"
	CategoryStatistics  Category = "STATISTICS"
	CategoryGeneral     Category = "GENERAL"
)

// Rule maps a keyword set to a category. Rules are evaluated top to bottom
// and the first rule with a matching keyword wins, so list-intent rules must
// stay ahead of statistics rules: a question like "Liste mit Zusammenfassung"
// is a list request, not a statistics request.
type Rule struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Category Category `yaml:"category" json:"category"`
}

type RulesConfig struct {
	Rules []Rule `yaml:"rules" json:"rules"`
}

// LoadRules reads an ordered rule table from a YAML file. An empty path
// yields the built-in table.
func LoadRules(path string) (RulesConfig, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultRules(), err
	}

	var cfg RulesConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return RulesConfig{}, err
	}

	if len(cfg.Rules) == 0 {
		return RulesConfig{}, errors.New("no classification rules configured")
	}

	return cfg, nil
}

func DefaultRules() RulesConfig {
	return RulesConfig{Rules: []Rule{
		{
			Name:     "patient-list",
			Keywords: []string{"liste", "patients", "patienten", "heute", "chirurgie", "onkologie", "kardiologie", "orthopädie"},
			Category: CategoryPatientList,
		},
		{
			Name:     "statistics",
			Keywords: []string{"statistik", "anzahl", "zusammenfassung"},
			Category: CategoryStatistics,
		},
	}}
}

// Classifier assigns a question to exactly one category using case-insensitive
// substring matching against its ordered rule table.
type Classifier struct {
	rules []Rule
}

func NewClassifier(cfg RulesConfig) *Classifier {
	return &Classifier{rules: cfg.Rules}
}

func (c *Classifier) Classify(question string) Category {
	lowered := strings.ToLower(question)
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				return rule.Category
			}
		}
	}
	return CategoryGeneral
}
