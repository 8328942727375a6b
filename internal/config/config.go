package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
}

type ReminderConfig struct {
	// Timezone is the reference location for all calendar-day comparisons
	// (urgency buckets and the reminder window).
	Timezone string `yaml:"timezone"`
	// ServiceKey authenticates the external scheduler that triggers runs.
	ServiceKey string `yaml:"service_key"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Email    EmailConfig    `yaml:"email"`
	Reminder ReminderConfig `yaml:"reminder"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// LoadConfig reads config/config.yaml and applies environment overrides for
// credentials so secrets can stay out of the file.
func LoadConfig() (*Config, error) {
	path := os.Getenv("TASKWAY_CONFIG")
	if path == "" {
		path = "config/config.yaml"
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("REMINDER_SERVICE_KEY"); v != "" {
		cfg.Reminder.ServiceKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Reminder.Timezone == "" {
		cfg.Reminder.Timezone = "UTC"
	}
	return &cfg, nil
}

// Validate reports the first missing required setting by name. Telegram is
// optional and not checked.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("config: database.url (or DATABASE_URL) is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret (or JWT_SECRET) is required")
	}
	if c.Email.SMTPHost == "" || c.Email.SMTPPort == 0 {
		return fmt.Errorf("config: email.smtp_host and email.smtp_port are required")
	}
	if c.Email.FromEmail == "" {
		return fmt.Errorf("config: email.from_email is required")
	}
	if c.Reminder.ServiceKey == "" {
		return fmt.Errorf("config: reminder.service_key (or REMINDER_SERVICE_KEY) is required")
	}
	if _, err := time.LoadLocation(c.Reminder.Timezone); err != nil {
		return fmt.Errorf("config: reminder.timezone %q: %w", c.Reminder.Timezone, err)
	}
	return nil
}

// Location resolves the configured reference timezone. Validate must have
// passed first.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Reminder.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
