package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tilescore/internal/model"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRulesEmptyFilename(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
}

func TestLoadRulesMissingFile(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
}

func TestLoadRulesFull(t *testing.T) {
	path := writeRules(t, `
rank_bonus: [30, 10, -10, -30]
top_k: 3
enforce_total: true
`)

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, model.RankBonusTable{30, 10, -10, -30}, rules.RankBonusTable())
	assert.Equal(t, 3, rules.TopK)
	assert.True(t, rules.EnforceTotal)
}

func TestLoadRulesPartialKeepsDefaults(t *testing.T) {
	rules, err := LoadRules(writeRules(t, "enforce_total: true\n"))
	require.NoError(t, err)

	assert.True(t, rules.EnforceTotal)
	assert.Equal(t, model.DefaultTopK, rules.TopK)
	assert.Equal(t, model.DefaultRankBonusTable(), rules.RankBonusTable())
}

func TestLoadRulesRejectsBadBonus(t *testing.T) {
	_, err := LoadRules(writeRules(t, "rank_bonus: [1, 2, 3]\n"))
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestLoadRulesRejectsBadTopK(t *testing.T) {
	_, err := LoadRules(writeRules(t, "top_k: 0\n"))
	assert.Error(t, err)
}

func TestLoadRulesRejectsMalformedYAML(t *testing.T) {
	_, err := LoadRules(writeRules(t, "rank_bonus: [1, 2\n"))
	assert.Error(t, err)
}
