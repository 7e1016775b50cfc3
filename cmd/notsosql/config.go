package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "NOTSOSQL"

// Config is read from flags, then NOTSOSQL_* environment variables, then
// defaults.
type Config struct {
	DB        string `mapstructure:"db"`
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.PersistentFlags()
	flags.String("db", "database.db", "path of the snapshot file")
	flags.String("log-level", "info", "DEBUG, INFO, WARN or ERROR")
	flags.String("log-format", "text", "text or json")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v.BindPFlags(flags)
}

func loadConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DB == "" {
		return nil, fmt.Errorf("no snapshot path configured")
	}

	return &cfg, nil
}
