package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)

	assert.False(t, cfg.Policy.AllowNegativeOpening)
	assert.False(t, cfg.Policy.AllowNegativeDeposit)

	require.Len(t, cfg.Currencies, 3)
	codes := make([]string, 0, 3)
	for _, c := range cfg.Currencies {
		codes = append(codes, c.Code)
	}
	assert.ElementsMatch(t, []string{"TRY", "USD", "EUR"}, codes)
}

func TestLoad_DefaultCatalogHasDisplayMetadata(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	byCode := make(map[string]CurrencyConfig)
	for _, c := range cfg.Currencies {
		byCode[c.Code] = c
	}

	assert.Equal(t, "Turkish Lira", byCode["TRY"].Name)
	assert.Equal(t, "₺", byCode["TRY"].Symbol)
	assert.Equal(t, "$", byCode["USD"].Symbol)
	assert.Equal(t, "€", byCode["EUR"].Symbol)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
log:
  level: "debug"
  pretty: true
policy:
  allow_negative_opening: true
  allow_negative_deposit: true
currencies:
  - code: "GBP"
    name: "Pound Sterling"
    symbol: "£"
`)
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.True(t, cfg.Policy.AllowNegativeOpening)
	assert.True(t, cfg.Policy.AllowNegativeDeposit)

	require.Len(t, cfg.Currencies, 1)
	assert.Equal(t, "GBP", cfg.Currencies[0].Code)
	assert.Equal(t, "Pound Sterling", cfg.Currencies[0].Name)
	assert.Equal(t, "£", cfg.Currencies[0].Symbol)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BANK_LOG_LEVEL", "warn")
	t.Setenv("BANK_POLICY_ALLOW_NEGATIVE_OPENING", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Policy.AllowNegativeOpening)
	assert.False(t, cfg.Policy.AllowNegativeDeposit)
}

func TestLoad_BadFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log: [not a map"), 0644))

	_, err := Load(cfgPath)
	assert.Error(t, err)
}
