package config

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Run("Log Transform Complete", func(t *testing.T) {
		cfg := &Config{
			Environment: "development",
			Region:      "us-gov-west-1",
			AccountID:   "123456",
			S3Bucket:    "logs-bucket",
		}
		if err := cfg.ValidateLogTransform(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Missing Bucket", func(t *testing.T) {
		cfg := &Config{Environment: "development", Region: "us-gov-west-1", AccountID: "123456"}
		err := cfg.ValidateLogTransform()
		if err == nil {
			t.Fatal("expected an error")
		}
		var missing *MissingSettingError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingSettingError, got %v", err)
		}
		if missing.Name != "S3_BUCKET_NAME" {
			t.Errorf("got %q, want S3_BUCKET_NAME", missing.Name)
		}
	})

	t.Run("Metric Transform Does Not Need A Bucket", func(t *testing.T) {
		cfg := &Config{Environment: "staging", Region: "us-gov-west-1", AccountID: "123456"}
		if err := cfg.ValidateMetricTransform(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Invalid Environment Never Defaults", func(t *testing.T) {
		cfg := &Config{Environment: "sandbox", Region: "us-gov-west-1", AccountID: "123456"}
		if err := cfg.ValidateMetricTransform(); err == nil {
			t.Fatal("expected an error for unknown environment")
		}
		cfg.Environment = ""
		if err := cfg.ValidateMetricTransform(); err == nil {
			t.Fatal("expected an error for missing environment")
		}
	})

	t.Run("Provisioner Requires Delivery Settings", func(t *testing.T) {
		cfg := &Config{Environment: "production", FirehoseARN: "arn:x", RoleARN: ""}
		if err := cfg.ValidateProvisioner(); err == nil {
			t.Fatal("expected an error for missing ROLE_ARN")
		}
		cfg.RoleARN = "arn:y"
		if err := cfg.ValidateProvisioner(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("AWS_REGION", "us-gov-west-1")
	t.Setenv("ACCOUNT_ID", "123456")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Environment != "development" || cfg.Region != "us-gov-west-1" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Partition != "aws-us-gov" {
		t.Errorf("expected default partition, got %q", cfg.Partition)
	}
	if cfg.TagAPIRPS != 10 {
		t.Errorf("expected default tag API rate, got %v", cfg.TagAPIRPS)
	}
}
