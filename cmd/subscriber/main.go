package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/cloud-gov/firehose-tagger/internal/adapter/awscloud"
	"github.com/cloud-gov/firehose-tagger/internal/pkg/config"
	"github.com/cloud-gov/firehose-tagger/internal/pkg/logger"
	"github.com/cloud-gov/firehose-tagger/internal/pkg/naming"
	"github.com/cloud-gov/firehose-tagger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateProvisioner(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	env, err := cfg.ParsedEnvironment()
	if err != nil {
		log.Error("invalid environment selector", "error", err)
		os.Exit(1)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		log.Error("failed to load aws config", "error", err)
		os.Exit(1)
	}

	prefix := naming.PrefixesFor(env).LogGroupPrefix()
	provisioner := usecase.NewProvisioner(awscloud.NewSubscriptions(awsCfg), prefix, cfg.FirehoseARN, cfg.RoleARN, log)

	log.Info("starting subscription provisioner", "environment", string(env), "log_group_prefix", prefix)
	lambda.Start(provisioner.Handle)
}
