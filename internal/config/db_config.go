package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type DBConfig struct {
	ConnectionString     string `mapstructure:"connection_string"`
	JournalRetentionDays int    `mapstructure:"journal_retention_days"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	if config.JournalRetentionDays <= 0 {
		return fmt.Errorf("journal_retention_days must be greater than zero")
	}
	return nil
}

func (config *DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"db.connection_string":      "DB_CONNECTION_STRING",
		"db.journal_retention_days": "JOURNAL_RETENTION_DAYS",
	})
}
