package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger"`
	Server     ServerConfig     `mapstructure:"server"`
	Oracle     OracleConfig     `mapstructure:"oracle"`
	Mail       MailConfig       `mapstructure:"mail"`
	Meeting    MeetingConfig    `mapstructure:"meeting"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
	DB         DBConfig         `mapstructure:"db"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
}

type section interface {
	validate() error
	bindEnvironmentVariables(v *viper.Viper) error
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		configFile = value
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	v := viper.New()
	v.SetConfigFile(file)
	v.AutomaticEnv()

	setDefaults(v)

	config := Config{}
	if err := bindEnvironmentVariables(v, config.sections()); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", LevelInfo)
	v.SetDefault("logger.output_file", "./logs/errors.log")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("oracle.model", "gemini-1.5-flash")
	v.SetDefault("oracle.max_requests_per_minute", 15)
	v.SetDefault("oracle.max_requests_per_day", 1500)
	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.company_name", "AI Recruiting Team")
	v.SetDefault("meeting.token_url", "https://zoom.us/oauth/token")
	v.SetDefault("meeting.api_url", "https://api.zoom.us/v2")
	v.SetDefault("meeting.token_safety_margin", "60s")
	v.SetDefault("meeting.interview_duration_minutes", 60)
	v.SetDefault("meeting.max_requests_per_second", 10)
	v.SetDefault("scheduling.timezone", "Asia/Kolkata")
	v.SetDefault("scheduling.business_start_hour", 9)
	v.SetDefault("scheduling.business_end_hour", 17)
	v.SetDefault("scheduling.default_hour", 11)
	v.SetDefault("db.connection_string", "./data/journal.db")
	v.SetDefault("db.journal_retention_days", 90)
}

func (config *Config) sections() map[string]section {
	return map[string]section{
		"LoggerConfig":     &config.Logger,
		"ServerConfig":     &config.Server,
		"OracleConfig":     &config.Oracle,
		"MailConfig":       &config.Mail,
		"MeetingConfig":    &config.Meeting,
		"SchedulingConfig": &config.Scheduling,
		"DBConfig":         &config.DB,
		"TelegramConfig":   &config.Telegram,
	}
}

func bindEnvironmentVariables(v *viper.Viper, sections map[string]section) error {
	var errs []error

	for name, s := range sections {
		if err := s.bindEnvironmentVariables(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	for name, s := range config.sections() {
		if err := s.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
