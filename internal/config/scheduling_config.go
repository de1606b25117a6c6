package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type SchedulingConfig struct {
	Timezone          string `mapstructure:"timezone"`
	BusinessStartHour int    `mapstructure:"business_start_hour"`
	BusinessEndHour   int    `mapstructure:"business_end_hour"`
	DefaultHour       int    `mapstructure:"default_hour"`
}

func (config SchedulingConfig) validate() error {
	var errs []error

	if _, err := time.LoadLocation(config.Timezone); err != nil || config.Timezone == "" {
		errs = append(errs, fmt.Errorf("invalid timezone %q", config.Timezone))
	}

	if config.BusinessStartHour < 0 || config.BusinessEndHour > 24 ||
		config.BusinessStartHour >= config.BusinessEndHour {
		errs = append(errs, fmt.Errorf("invalid business window %d-%d",
			config.BusinessStartHour, config.BusinessEndHour))
	}

	if config.DefaultHour < config.BusinessStartHour || config.DefaultHour >= config.BusinessEndHour {
		errs = append(errs, fmt.Errorf("default_hour %d is outside the business window", config.DefaultHour))
	}

	return errors.Join(errs...)
}

func (config *SchedulingConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"scheduling.timezone": "SCHEDULING_TIMEZONE",
	})
}
