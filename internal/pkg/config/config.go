package config

import (
	"errors"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/cloud-gov/firehose-tagger/internal/pkg/naming"
)

// Config holds all application configuration. Each entrypoint requires a
// different subset, validated by the Validate* methods; a missing required
// value aborts the invocation before any record is touched.
type Config struct {
	Environment string  `env:"ENVIRONMENT"`
	Region      string  `env:"AWS_REGION"`
	AccountID   string  `env:"ACCOUNT_ID"`
	Partition   string  `env:"AWS_PARTITION" envDefault:"aws-us-gov"`
	S3Bucket    string  `env:"S3_BUCKET_NAME"`
	FirehoseARN string  `env:"FIREHOSE_ARN"`
	RoleARN     string  `env:"ROLE_ARN"`
	LogLevel    string  `env:"LOG_LEVEL" envDefault:"info"`
	TagAPIRPS   float64 `env:"TAG_API_RPS" envDefault:"10"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MissingSettingError reports a required setting that was not supplied.
type MissingSettingError struct {
	Name string
}

func (e *MissingSettingError) Error() string {
	return "required setting " + e.Name + " is not set"
}

func (c *Config) require(pairs ...[2]string) error {
	var errs []error
	for _, p := range pairs {
		if p[1] == "" {
			errs = append(errs, &MissingSettingError{Name: p[0]})
		}
	}
	return errors.Join(errs...)
}

// ParsedEnvironment validates and returns the environment selector.
func (c *Config) ParsedEnvironment() (naming.Environment, error) {
	return naming.ParseEnvironment(c.Environment)
}

// ValidateLogTransform checks the settings the log pipeline requires.
func (c *Config) ValidateLogTransform() error {
	if _, err := c.ParsedEnvironment(); err != nil {
		return err
	}
	return c.require(
		[2]string{"AWS_REGION", c.Region},
		[2]string{"ACCOUNT_ID", c.AccountID},
		[2]string{"S3_BUCKET_NAME", c.S3Bucket},
	)
}

// ValidateMetricTransform checks the settings the metric pipeline requires.
func (c *Config) ValidateMetricTransform() error {
	if _, err := c.ParsedEnvironment(); err != nil {
		return err
	}
	return c.require(
		[2]string{"AWS_REGION", c.Region},
		[2]string{"ACCOUNT_ID", c.AccountID},
	)
}

// ValidateProvisioner checks the settings the subscription provisioner requires.
func (c *Config) ValidateProvisioner() error {
	if _, err := c.ParsedEnvironment(); err != nil {
		return err
	}
	return c.require(
		[2]string{"FIREHOSE_ARN", c.FirehoseARN},
		[2]string{"ROLE_ARN", c.RoleARN},
	)
}
