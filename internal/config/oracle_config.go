package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type OracleConfig struct {
	AIKey                string  `mapstructure:"ai_key"`
	Model                string  `mapstructure:"model"`
	MaxRequestsPerMinute float32 `mapstructure:"max_requests_per_minute"`
	MaxRequestsPerDay    float32 `mapstructure:"max_requests_per_day"`
}

// Configured reports whether the scoring oracle can be called at all.
func (config OracleConfig) Configured() bool {
	return config.AIKey != ""
}

func (config OracleConfig) validate() error {
	if config.Model == "" {
		return fmt.Errorf("missing variable: model")
	}
	if config.MaxRequestsPerMinute <= 0 || config.MaxRequestsPerDay <= 0 {
		return fmt.Errorf("oracle rate limits must be greater than zero")
	}
	return nil
}

func (config *OracleConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"oracle.ai_key":                  "AI_KEY",
		"oracle.model":                   "AI_MODEL",
		"oracle.max_requests_per_minute": "AI_MAX_REQUESTS_PER_MINUTE",
		"oracle.max_requests_per_day":    "AI_MAX_REQUESTS_PER_DAY",
	})
}
