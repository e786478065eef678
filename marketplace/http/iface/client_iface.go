package iface

import (
	"context"

	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

//go:generate mockery --name FulfillmentClient --output ../mocks
type FulfillmentClient interface {
	ResolveSubscription(ctx context.Context, marketplaceToken string) (*domain.ResolvedSubscription, error)
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)
	GetSubscription(ctx context.Context, subscriptionID uuid.UUID) (*domain.Subscription, error)
	ListAvailablePlans(ctx context.Context, subscriptionID uuid.UUID) ([]domain.Plan, error)
	ActivateSubscription(ctx context.Context, subscriptionID uuid.UUID, planID string, quantity int) error
	UpdateSubscriptionPlan(ctx context.Context, subscriptionID uuid.UUID, planID string) (uuid.UUID, error)
	UpdateSubscriptionQuantity(ctx context.Context, subscriptionID uuid.UUID, quantity int) (uuid.UUID, error)
	DeleteSubscription(ctx context.Context, subscriptionID uuid.UUID) (uuid.UUID, error)
	ListOperations(ctx context.Context, subscriptionID uuid.UUID) ([]domain.Operation, error)
	GetOperation(ctx context.Context, subscriptionID, operationID uuid.UUID) (*domain.Operation, error)
	UpdateOperationStatus(ctx context.Context, subscriptionID, operationID uuid.UUID, update domain.OperationUpdate) error
}

//go:generate mockery --name MeteringClient --output ../mocks
type MeteringClient interface {
	PostUsageEvent(ctx context.Context, event domain.UsageEvent) (*domain.UsageEventResult, error)
}
