package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/cloud-gov/firehose-tagger/internal/domain"
	"github.com/cloud-gov/firehose-tagger/internal/domain/mocks"
	"github.com/cloud-gov/firehose-tagger/internal/pkg/naming"
)

func newProvisioner(client *mocks.MockSubscriptionClient) *Provisioner {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	prefix := naming.PrefixesFor(naming.Development).LogGroupPrefix()
	return NewProvisioner(client, prefix, "arn:aws-us-gov:firehose:us-gov-west-1:123456:deliverystream/ds", "arn:aws-us-gov:iam::123456:role/r", logger)
}

func creationEvent(logGroupName string) events.CloudWatchEvent {
	detail := fmt.Sprintf(`{"requestParameters":{"logGroupName":%q}}`, logGroupName)
	return events.CloudWatchEvent{Detail: []byte(detail)}
}

func TestProvisionerHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("Matching Log Group Gets A Subscription", func(t *testing.T) {
		client := &mocks.MockSubscriptionClient{}
		p := newProvisioner(client)

		err := p.Handle(ctx, creationEvent("/aws/rds/instance/cg-aws-broker-dev-test/postgresql"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(client.Calls) != 1 {
			t.Fatalf("expected 1 subscription call, got %d", len(client.Calls))
		}
		call := client.Calls[0]
		if call.LogGroup != "/aws/rds/instance/cg-aws-broker-dev-test/postgresql" {
			t.Errorf("log group: got %q", call.LogGroup)
		}
		if call.FilterName != SubscriptionFilterName || call.Pattern != "" {
			t.Errorf("unexpected filter: %+v", call)
		}
		if call.DestinationARN == "" || call.RoleARN == "" {
			t.Errorf("expected destination and role to be passed: %+v", call)
		}
	})

	t.Run("Foreign Log Group Is A NoOp", func(t *testing.T) {
		client := &mocks.MockSubscriptionClient{}
		p := newProvisioner(client)

		if err := p.Handle(ctx, creationEvent("/aws/lambda/other")); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(client.Calls) != 0 {
			t.Errorf("expected no subscription call, got %d", len(client.Calls))
		}
	})

	t.Run("Missing Log Group Name Is A NoOp", func(t *testing.T) {
		client := &mocks.MockSubscriptionClient{}
		p := newProvisioner(client)

		if err := p.Handle(ctx, events.CloudWatchEvent{Detail: []byte(`{}`)}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := p.Handle(ctx, events.CloudWatchEvent{}); err != nil {
			t.Fatalf("expected no error on empty detail, got %v", err)
		}
		if len(client.Calls) != 0 {
			t.Errorf("expected no subscription call, got %d", len(client.Calls))
		}
	})

	t.Run("Existing Subscription Is Raised", func(t *testing.T) {
		client := &mocks.MockSubscriptionClient{Err: fmt.Errorf("log group taken: %w", domain.ErrSubscriptionExists)}
		p := newProvisioner(client)

		err := p.Handle(ctx, creationEvent("/aws/rds/instance/cg-aws-broker-dev-test/postgresql"))
		if err == nil {
			t.Fatal("expected an error for an existing subscription")
		}
		if !errors.Is(err, domain.ErrSubscriptionExists) {
			t.Errorf("expected ErrSubscriptionExists, got %v", err)
		}
	})
}
