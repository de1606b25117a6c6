package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type MailConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Sender      string `mapstructure:"sender"`
	Passkey     string `mapstructure:"passkey"`
	CompanyName string `mapstructure:"company_name"`
}

func (config MailConfig) Configured() bool {
	return config.Sender != "" && config.Passkey != ""
}

func (config MailConfig) validate() error {
	if config.Host == "" {
		return fmt.Errorf("missing variable: host")
	}
	if config.Port <= 0 {
		return fmt.Errorf("port must be greater than zero")
	}
	return nil
}

func (config *MailConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"mail.host":         "EMAIL_HOST",
		"mail.port":         "EMAIL_PORT",
		"mail.sender":       "EMAIL_SENDER",
		"mail.passkey":      "EMAIL_PASSKEY",
		"mail.company_name": "COMPANY_NAME",
	})
}
