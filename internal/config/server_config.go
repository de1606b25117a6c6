package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host        string   `mapstructure:"host"`
	Port        int      `mapstructure:"port"`
	MaxUploadMB int64    `mapstructure:"max_upload_mb"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

func (config ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", config.Host, config.Port)
}

func (config ServerConfig) MaxUploadBytes() int64 {
	return config.MaxUploadMB * 1024 * 1024
}

func (config ServerConfig) validate() error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", config.Port)
	}
	if config.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be greater than zero")
	}
	return nil
}

func (config *ServerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"server.host": "API_HOST",
		"server.port": "API_PORT",
	})
}
