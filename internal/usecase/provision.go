package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/cloud-gov/firehose-tagger/internal/domain"
)

// SubscriptionFilterName is the fixed name of the delivery subscription the
// provisioner attaches to matching log groups.
const SubscriptionFilterName = "firehose_for_opensearch"

// Provisioner reacts to log-group-creation events by attaching a delivery
// subscription when the new group belongs to the managed database family.
type Provisioner struct {
	client         domain.SubscriptionClient
	logGroupPrefix string
	destinationARN string
	roleARN        string
	log            *slog.Logger
}

func NewProvisioner(client domain.SubscriptionClient, logGroupPrefix, destinationARN, roleARN string, log *slog.Logger) *Provisioner {
	return &Provisioner{
		client:         client,
		logGroupPrefix: logGroupPrefix,
		destinationARN: destinationARN,
		roleARN:        roleARN,
		log:            log,
	}
}

type provisionDetail struct {
	RequestParameters struct {
		LogGroupName string `json:"logGroupName"`
	} `json:"requestParameters"`
}

// Handle provisions a subscription for the log group named in the event.
// Events without a matching log group are logged no-ops. A filter-name
// collision is an application error: provisioning is idempotent-checked
// upstream, so a collision means an unexpected re-trigger worth surfacing.
func (p *Provisioner) Handle(ctx context.Context, event events.CloudWatchEvent) error {
	var detail provisionDetail
	if len(event.Detail) > 0 {
		if err := json.Unmarshal(event.Detail, &detail); err != nil {
			p.log.Error("undecodable event detail, ignoring", "error", err)
			return nil
		}
	}

	name := detail.RequestParameters.LogGroupName
	if name == "" || !strings.HasPrefix(name, p.logGroupPrefix) {
		p.log.Info("log group does not apply", "log_group", name)
		return nil
	}

	err := p.client.PutSubscriptionFilter(ctx, name, SubscriptionFilterName, "", p.destinationARN, p.roleARN)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionExists) {
			return fmt.Errorf("log group %s: %w", name, err)
		}
		return fmt.Errorf("creating subscription filter for %s: %w", name, err)
	}
	p.log.Info("subscription filter created", "log_group", name)
	return nil
}
