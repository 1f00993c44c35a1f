package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Policy     PolicyConfig     `mapstructure:"policy"`
	Currencies []CurrencyConfig `mapstructure:"currencies"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// PolicyConfig names the lending decisions the ledger engine does not make
// on its own. Both default to false: balances never go negative unless an
// operator opts in.
type PolicyConfig struct {
	AllowNegativeOpening bool `mapstructure:"allow_negative_opening"`
	AllowNegativeDeposit bool `mapstructure:"allow_negative_deposit"`
}

// CurrencyConfig is one entry of the currency catalog the registry is
// built from.
type CurrencyConfig struct {
	Code   string `mapstructure:"code"`
	Name   string `mapstructure:"name"`
	Symbol string `mapstructure:"symbol"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: BANK_.
// Nested keys use underscore: BANK_LOG_LEVEL, BANK_POLICY_ALLOW_NEGATIVE_OPENING, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("policy.allow_negative_opening", false)
	v.SetDefault("policy.allow_negative_deposit", false)
	v.SetDefault("currencies", []map[string]interface{}{
		{"code": "TRY", "name": "Turkish Lira", "symbol": "₺"},
		{"code": "USD", "name": "US Dollar", "symbol": "$"},
		{"code": "EUR", "name": "Euro", "symbol": "€"},
	})

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: BANK_LOG_LEVEL -> log.level
	v.SetEnvPrefix("BANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars and defaults can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
