//go:generate mockery --output=../mocks --all
package iface

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

type IMarketplaceProcessor interface {
	ActivateSubscription(ctx context.Context, subscriptionID uuid.UUID, planID string) error
	GetSubscriptionFromPurchaseIdentificationToken(ctx context.Context, token string) (*domain.ResolvedSubscription, error)
	OperationAck(ctx context.Context, subscriptionID, operationID uuid.UUID, planID string, quantity int) error
	ProcessWebhookNotification(ctx context.Context, payload *domain.WebhookPayload) error
}

type IWebhookHandler interface {
	ChangePlan(ctx context.Context, payload *domain.WebhookPayload) error
	ChangeQuantity(ctx context.Context, payload *domain.WebhookPayload) error
	Reinstated(ctx context.Context, payload *domain.WebhookPayload) error
	Suspended(ctx context.Context, payload *domain.WebhookPayload) error
	Unsubscribed(ctx context.Context, payload *domain.WebhookPayload) error
}

type ISubscriptionsService interface {
	List(ctx context.Context) ([]domain.SubscriptionViewModel, error)
	Operations(ctx context.Context, subscriptionID uuid.UUID) (*domain.OperationsViewModel, error)
	UpdateView(ctx context.Context, subscriptionID uuid.UUID) (*domain.UpdateSubscriptionViewModel, error)
	Unsubscribe(ctx context.Context, subscriptionID uuid.UUID) error
	UpdatePlan(ctx context.Context, subscriptionID uuid.UUID, newPlan string) error
	UpdateFromMailLink(ctx context.Context, subscriptionID uuid.UUID, planID string) error
}

type ILandingService interface {
	BuildProvisionModel(ctx context.Context, token string, user domain.UserProfile) (*domain.ProvisionModel, error)
	Submit(ctx context.Context, model *domain.ProvisionModel) error
}

type IDimensionsService interface {
	View(ctx context.Context, subscriptionID uuid.UUID) (*domain.DimensionEventViewModel, error)
	Send(ctx context.Context, subscriptionID uuid.UUID, dimension string, quantity int64, eventTime time.Time) (*domain.DimensionEventViewModel, error)
}
