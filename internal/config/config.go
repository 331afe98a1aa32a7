// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/nyaruka/phonenumbers"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultReminderCron          = "0 18 * * *"
	DefaultBookingAttemptsPerMin = 10
	DefaultShutdownTimeout       = 30 * time.Second
	DefaultPhoneRegion           = "IN"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type AuthConfig struct {
	ClerkEnabled   bool   `yaml:"clerk_enabled"`
	ClerkSecretKey string `yaml:"-"` // Loaded from environment
}

type EmailConfig struct {
	Region string `yaml:"region"`
	Sender string `yaml:"sender"`
}

type SchedulerConfig struct {
	ReminderCron string `yaml:"reminder_cron"`
}

type PreferencesConfig struct {
	Driver        string `yaml:"driver"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisDB       int    `yaml:"redis_db"`
	RedisPassword string `yaml:"-"` // Loaded from environment
}

type RateLimitConfig struct {
	BookingAttemptsPerMinute int `yaml:"booking_attempts_per_minute"`
}

type Config struct {
	App struct {
		Name                   string `yaml:"name"`
		Environment            string `yaml:"environment"`
		Port                   int    `yaml:"port"`
		Timezone               string `yaml:"timezone"`
		PhoneRegion            string `yaml:"phone_region"` // Region for numbers without a +country prefix
		ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
	} `yaml:"app"`

	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	Email       EmailConfig       `yaml:"email"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
	Preferences PreferencesConfig `yaml:"preferences"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`

	Features struct {
		EnableMetrics bool `yaml:"enable_metrics"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.Auth.ClerkSecretKey = os.Getenv("CLERK_SECRET_KEY")
	cfg.Preferences.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML configuration and fills defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.Timezone == "" {
		c.App.Timezone = "UTC"
	}
	if c.App.PhoneRegion == "" {
		c.App.PhoneRegion = DefaultPhoneRegion
	}
	if c.App.ShutdownTimeoutSeconds == 0 {
		c.App.ShutdownTimeoutSeconds = int(DefaultShutdownTimeout / time.Second)
	}
	if c.Scheduler.ReminderCron == "" {
		c.Scheduler.ReminderCron = DefaultReminderCron
	}
	if c.Preferences.Driver == "" {
		c.Preferences.Driver = "sqlite"
	}
	if c.RateLimit.BookingAttemptsPerMinute == 0 {
		c.RateLimit.BookingAttemptsPerMinute = DefaultBookingAttemptsPerMin
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid app timezone %q: %w", c.App.Timezone, err)
	}
	if phonenumbers.GetCountryCodeForRegion(c.App.PhoneRegion) == 0 {
		return fmt.Errorf("unknown app phone_region %q", c.App.PhoneRegion)
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	switch c.Preferences.Driver {
	case "sqlite":
	case "redis":
		if c.Preferences.RedisAddr == "" {
			return fmt.Errorf("preferences redis_addr is required for redis")
		}
	default:
		return fmt.Errorf("unsupported preferences driver: %s", c.Preferences.Driver)
	}

	if c.Auth.ClerkEnabled && c.Auth.ClerkSecretKey == "" {
		return fmt.Errorf("CLERK_SECRET_KEY is required when clerk is enabled")
	}
	if !c.Auth.ClerkEnabled && c.App.Environment != "development" {
		return fmt.Errorf("clerk must be enabled outside development")
	}

	if _, err := cron.ParseStandard(c.Scheduler.ReminderCron); err != nil {
		return fmt.Errorf("invalid scheduler reminder_cron %q: %w", c.Scheduler.ReminderCron, err)
	}
	if c.RateLimit.BookingAttemptsPerMinute < 0 {
		return fmt.Errorf("rate_limit booking_attempts_per_minute must be positive")
	}

	return nil
}

// Location returns the society-local timezone used for "today".
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.App.ShutdownTimeoutSeconds) * time.Second
}

// EmailEnabled reports whether SES email delivery is configured.
func (c *Config) EmailEnabled() bool {
	return c.Email.Region != "" && c.Email.Sender != ""
}
