package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/tilescore/internal/model"
)

// Rules holds tournament rules read from a YAML file.
// RankBonus and TopK seed a tournament with no stored settings.
type Rules struct {
	RankBonus    []float64 `yaml:"rank_bonus"`
	TopK         int       `yaml:"top_k"`
	EnforceTotal bool      `yaml:"enforce_total"`
}

// DefaultRules returns the built-in rules
func DefaultRules() Rules {
	return Rules{
		RankBonus:    model.DefaultRankBonusTable().Slice(),
		TopK:         model.DefaultTopK,
		EnforceTotal: false,
	}
}

// LoadRules reads rules from filename. An empty filename or a missing file
// yields DefaultRules; fields left out of the file keep their defaults.
func LoadRules(filename string) (Rules, error) {
	rules := DefaultRules()
	if filename == "" {
		return rules, nil
	}

	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return rules, nil
	}
	if err != nil {
		return rules, fmt.Errorf("failed to read rules file: %w", err)
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return DefaultRules(), fmt.Errorf("failed to unmarshal rules: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return DefaultRules(), err
	}
	return rules, nil
}

// Validate checks the rules are usable
func (r Rules) Validate() error {
	if _, err := model.NewRankBonusTable(r.RankBonus); err != nil {
		return fmt.Errorf("invalid rank_bonus: %w", err)
	}
	if r.TopK < 1 {
		return fmt.Errorf("invalid top_k: must be positive, got %d", r.TopK)
	}
	return nil
}

// RankBonusTable returns the validated bonus table
func (r Rules) RankBonusTable() model.RankBonusTable {
	table, err := model.NewRankBonusTable(r.RankBonus)
	if err != nil {
		return model.DefaultRankBonusTable()
	}
	return table
}
