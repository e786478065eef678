//go:generate mockery --output=../mocks --all
package iface

import (
	"context"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

// Handler tells the operations team about subscription lifecycle events.
type Handler interface {
	ProcessNewSubscription(ctx context.Context, model *domain.ProvisionModel) error
	ProcessChangePlan(ctx context.Context, model *domain.ProvisionModel) error
	ProcessOperationFailOrConflict(ctx context.Context, payload *domain.WebhookPayload) error
	NotifyChangePlan(ctx context.Context, payload *domain.WebhookPayload) error
	NotifyChangeQuantity(ctx context.Context, payload *domain.WebhookPayload) error
	NotifyReinstated(ctx context.Context, payload *domain.WebhookPayload) error
	NotifySuspended(ctx context.Context, payload *domain.WebhookPayload) error
	NotifyUnsubscribed(ctx context.Context, payload *domain.WebhookPayload) error
}
