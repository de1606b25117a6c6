package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type MeetingConfig struct {
	AccountID                string        `mapstructure:"account_id"`
	ClientID                 string        `mapstructure:"client_id"`
	ClientSecret             string        `mapstructure:"client_secret"`
	TokenURL                 string        `mapstructure:"token_url"`
	APIURL                   string        `mapstructure:"api_url"`
	TokenSafetyMargin        time.Duration `mapstructure:"token_safety_margin"`
	InterviewDurationMinutes int           `mapstructure:"interview_duration_minutes"`
	MaxRequestsPerSecond     float32       `mapstructure:"max_requests_per_second"`
}

func (config MeetingConfig) Configured() bool {
	return config.AccountID != "" && config.ClientID != "" && config.ClientSecret != ""
}

func (config MeetingConfig) validate() error {
	var errs []error

	if config.TokenURL == "" {
		errs = append(errs, fmt.Errorf("missing variable: token_url"))
	}
	if config.APIURL == "" {
		errs = append(errs, fmt.Errorf("missing variable: api_url"))
	}
	if config.TokenSafetyMargin < 0 {
		errs = append(errs, fmt.Errorf("token_safety_margin must not be negative"))
	}
	if config.InterviewDurationMinutes <= 0 {
		errs = append(errs, fmt.Errorf("interview_duration_minutes must be greater than zero"))
	}
	if config.MaxRequestsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("max_requests_per_second must be greater than zero"))
	}

	return errors.Join(errs...)
}

func (config *MeetingConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"meeting.account_id":    "ZOOM_ACCOUNT_ID",
		"meeting.client_id":     "ZOOM_CLIENT_ID",
		"meeting.client_secret": "ZOOM_CLIENT_SECRET",
	})
}
