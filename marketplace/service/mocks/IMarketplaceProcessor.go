package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

type IMarketplaceProcessor struct {
	mock.Mock
}

func (m *IMarketplaceProcessor) ActivateSubscription(ctx context.Context, subscriptionID uuid.UUID, planID string) error {
	args := m.Called(ctx, subscriptionID, planID)
	return args.Error(0)
}

func (m *IMarketplaceProcessor) GetSubscriptionFromPurchaseIdentificationToken(ctx context.Context, token string) (*domain.ResolvedSubscription, error) {
	args := m.Called(ctx, token)

	resolved, _ := args.Get(0).(*domain.ResolvedSubscription)

	return resolved, args.Error(1)
}

func (m *IMarketplaceProcessor) OperationAck(ctx context.Context, subscriptionID, operationID uuid.UUID, planID string, quantity int) error {
	args := m.Called(ctx, subscriptionID, operationID, planID, quantity)
	return args.Error(0)
}

func (m *IMarketplaceProcessor) ProcessWebhookNotification(ctx context.Context, payload *domain.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
