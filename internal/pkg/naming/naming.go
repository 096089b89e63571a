// Package naming resolves environment-scoped resource name prefixes and
// builds the ARNs used as tag-lookup locators. Every pipeline consumes this
// single source so the prefix tables cannot drift apart.
package naming

import (
	"errors"
	"fmt"
)

// Environment selects which deployment's resources are in scope for enrichment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// ParseEnvironment validates the ENVIRONMENT selector. An absent or unknown
// value is a configuration error and is never defaulted.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case Development, Staging, Production:
		return Environment(s), nil
	}
	if s == "" {
		return "", errors.New("ENVIRONMENT is required")
	}
	return "", fmt.Errorf("invalid ENVIRONMENT %q (want development, staging or production)", s)
}

// Prefixes holds the per-resource-family name prefixes for one environment.
// A resource whose name does not carry its family's prefix belongs to a
// different environment (or tenant) and must not be enriched.
type Prefixes struct {
	RDS    string // RDS instance identifiers, e.g. cg-aws-broker-dev
	S3     string // bucket names, e.g. development-cg-
	Domain string // search domain names, e.g. cg-broker-dev-
}

// PrefixesFor returns the prefix set for env. The tables mirror the broker's
// naming convention: only production buckets keep the bare cg- prefix.
func PrefixesFor(env Environment) Prefixes {
	p := Prefixes{RDS: "cg-aws-broker-", S3: "cg-", Domain: "cg-broker-"}
	switch env {
	case Development:
		p.RDS += "dev"
		p.S3 = "development-cg-"
		p.Domain += "dev-"
	case Staging:
		p.RDS += "stage"
		p.S3 = "staging-cg-"
		p.Domain += "stg-"
	case Production:
		p.RDS += "prod"
		p.Domain += "prd-"
	}
	return p
}

// LogGroupPrefix returns the CloudWatch log group prefix covering the
// environment's RDS instances.
func (p Prefixes) LogGroupPrefix() string {
	return "/aws/rds/instance/" + p.RDS
}

// ARNBuilder renders fully-qualified resource locators for tag lookups.
type ARNBuilder struct {
	Partition string
	Region    string
	AccountID string
}

// RDSInstance returns the ARN of a database instance.
func (b ARNBuilder) RDSInstance(name string) string {
	return fmt.Sprintf("arn:%s:rds:%s:%s:db:%s", b.Partition, b.Region, b.AccountID, name)
}

// ESDomain returns the ARN of a search domain.
func (b ARNBuilder) ESDomain(name string) string {
	return fmt.Sprintf("arn:%s:es:%s:%s:domain/%s", b.Partition, b.Region, b.AccountID, name)
}
