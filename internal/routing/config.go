package routing

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"zena/internal/shared/logging"
)

// Default channel weights, applied field-by-field when the config file
// leaves a weight unset.
const (
	DefaultWeightKeywords = 1.0
	DefaultWeightSignals  = 0.8
	DefaultWeightZeroShot = 1.2
)

// Weights are the three channel multipliers of the routing score.
type Weights struct {
	RuleKeywords float64 `yaml:"rule_keywords"`
	UserSignals  float64 `yaml:"user_signals"`
	ZeroShot     float64 `yaml:"zero_shot"`
}

// ProfileRules holds the keyword lists of a single profile. A match on
// KeywordsNot voids the profile's keyword channel entirely.
type ProfileRules struct {
	KeywordsAny []string `yaml:"keywords_any"`
	KeywordsNot []string `yaml:"keywords_not"`
}

// Config is the declarative routing configuration loaded at startup.
//
// SignalBoosts is the need-tag to profile boost table. It is fully
// data-driven: the router never hardcodes a profile-to-tag mapping.
type Config struct {
	Profiles       map[string]ProfileRules       `yaml:"profiles"`
	Weights        *Weights                      `yaml:"weights"`
	UserSignalTags map[string][]string           `yaml:"user_signal_tags"`
	SignalBoosts   map[string]map[string]float64 `yaml:"signal_boosts"`
}

// LoadConfig reads the routing rules from a YAML file, lowercases every
// keyword, and fills unset weights with the defaults.
func LoadConfig(path string, logger logging.Logger) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read routing config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse routing config: %w", err)
	}
	cfg.normalize()
	cfg.warnInconsistencies(logging.OrNop(logger))
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Profiles == nil {
		c.Profiles = map[string]ProfileRules{}
	}
	for id, rules := range c.Profiles {
		rules.KeywordsAny = lowerAll(rules.KeywordsAny)
		rules.KeywordsNot = lowerAll(rules.KeywordsNot)
		c.Profiles[id] = rules
	}
	if c.Weights == nil {
		c.Weights = &Weights{}
	}
	if c.Weights.RuleKeywords == 0 {
		c.Weights.RuleKeywords = DefaultWeightKeywords
	}
	if c.Weights.UserSignals == 0 {
		c.Weights.UserSignals = DefaultWeightSignals
	}
	if c.Weights.ZeroShot == 0 {
		c.Weights.ZeroShot = DefaultWeightZeroShot
	}
}

// warnInconsistencies surfaces boost-table tags that are not declared in
// user_signal_tags. The historical service kept the boost mapping in
// code next to this config file and the two drifted; we log the drift
// instead of silently reconciling it.
func (c *Config) warnInconsistencies(logger logging.Logger) {
	for profileID, boosts := range c.SignalBoosts {
		for tag := range boosts {
			if _, declared := c.UserSignalTags[tag]; !declared {
				logger.Warn("signal_boosts references tag %q (profile %q) not declared in user_signal_tags", tag, profileID)
			}
		}
	}
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
