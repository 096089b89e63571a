package naming

import "testing"

func TestParseEnvironment(t *testing.T) {
	t.Run("Valid Selectors", func(t *testing.T) {
		for _, s := range []string{"development", "staging", "production"} {
			env, err := ParseEnvironment(s)
			if err != nil {
				t.Fatalf("expected no error for %q, got %v", s, err)
			}
			if string(env) != s {
				t.Errorf("expected %q, got %q", s, env)
			}
		}
	})

	t.Run("Missing Selector", func(t *testing.T) {
		if _, err := ParseEnvironment(""); err == nil {
			t.Fatal("expected an error for empty selector")
		}
	})

	t.Run("Unknown Selector", func(t *testing.T) {
		if _, err := ParseEnvironment("sandbox"); err == nil {
			t.Fatal("expected an error for unknown selector")
		}
	})
}

func TestPrefixesFor(t *testing.T) {
	cases := []struct {
		env    Environment
		rds    string
		s3     string
		domain string
	}{
		{Development, "cg-aws-broker-dev", "development-cg-", "cg-broker-dev-"},
		{Staging, "cg-aws-broker-stage", "staging-cg-", "cg-broker-stg-"},
		{Production, "cg-aws-broker-prod", "cg-", "cg-broker-prd-"},
	}
	for _, c := range cases {
		t.Run(string(c.env), func(t *testing.T) {
			p := PrefixesFor(c.env)
			if p.RDS != c.rds {
				t.Errorf("RDS prefix: got %q, want %q", p.RDS, c.rds)
			}
			if p.S3 != c.s3 {
				t.Errorf("S3 prefix: got %q, want %q", p.S3, c.s3)
			}
			if p.Domain != c.domain {
				t.Errorf("Domain prefix: got %q, want %q", p.Domain, c.domain)
			}
		})
	}
}

func TestLogGroupPrefix(t *testing.T) {
	p := PrefixesFor(Development)
	want := "/aws/rds/instance/cg-aws-broker-dev"
	if got := p.LogGroupPrefix(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestARNBuilder(t *testing.T) {
	b := ARNBuilder{Partition: "aws-us-gov", Region: "us-gov-west-1", AccountID: "123456"}

	if got, want := b.RDSInstance("cg-aws-broker-dev-test"),
		"arn:aws-us-gov:rds:us-gov-west-1:123456:db:cg-aws-broker-dev-test"; got != want {
		t.Errorf("RDSInstance: got %q, want %q", got, want)
	}
	if got, want := b.ESDomain("cg-broker-dev-abc"),
		"arn:aws-us-gov:es:us-gov-west-1:123456:domain/cg-broker-dev-abc"; got != want {
		t.Errorf("ESDomain: got %q, want %q", got, want)
	}
}
