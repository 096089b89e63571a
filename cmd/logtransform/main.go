package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cloud-gov/firehose-tagger/internal/adapter/awscloud"
	"github.com/cloud-gov/firehose-tagger/internal/adapter/metrics"
	"github.com/cloud-gov/firehose-tagger/internal/classify"
	"github.com/cloud-gov/firehose-tagger/internal/enrich"
	"github.com/cloud-gov/firehose-tagger/internal/pkg/config"
	"github.com/cloud-gov/firehose-tagger/internal/pkg/logger"
	"github.com/cloud-gov/firehose-tagger/internal/pkg/naming"
	"github.com/cloud-gov/firehose-tagger/internal/tagcache"
	"github.com/cloud-gov/firehose-tagger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateLogTransform(); err != nil {
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

	met := metrics.New(prometheus.DefaultRegisterer)
	arn := naming.ARNBuilder{Partition: cfg.Partition, Region: cfg.Region, AccountID: cfg.AccountID}
	classifier := classify.New(naming.PrefixesFor(env), arn, log)

	fetcher := awscloud.NewTagFetcher(awsCfg, cfg.TagAPIRPS, log)
	cache, err := tagcache.New(fetcher, tagcache.DefaultSize, met, log)
	if err != nil {
		log.Error("failed to create tag cache", "error", err)
		os.Exit(1)
	}
	capacity, err := tagcache.NewCapacityCache(awscloud.NewRDSSizer(awsCfg), tagcache.DefaultSize, log)
	if err != nil {
		log.Error("failed to create capacity cache", "error", err)
		os.Exit(1)
	}

	engine := enrich.New(classifier, cache, capacity, met, log)
	store := awscloud.NewS3Store(awsCfg, cfg.S3Bucket)
	transform := usecase.NewLogTransform(engine, store, met, log)

	log.Info("starting log transform", "environment", string(env), "bucket", cfg.S3Bucket)
	lambda.Start(transform.Handle)
}
