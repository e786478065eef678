package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

type FulfillmentClient struct {
	mock.Mock
}

func (m *FulfillmentClient) ResolveSubscription(ctx context.Context, marketplaceToken string) (*domain.ResolvedSubscription, error) {
	args := m.Called(ctx, marketplaceToken)

	resolved, _ := args.Get(0).(*domain.ResolvedSubscription)

	return resolved, args.Error(1)
}

func (m *FulfillmentClient) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	args := m.Called(ctx)

	subscriptions, _ := args.Get(0).([]domain.Subscription)

	return subscriptions, args.Error(1)
}

func (m *FulfillmentClient) GetSubscription(ctx context.Context, subscriptionID uuid.UUID) (*domain.Subscription, error) {
	args := m.Called(ctx, subscriptionID)

	subscription, _ := args.Get(0).(*domain.Subscription)

	return subscription, args.Error(1)
}

func (m *FulfillmentClient) ListAvailablePlans(ctx context.Context, subscriptionID uuid.UUID) ([]domain.Plan, error) {
	args := m.Called(ctx, subscriptionID)

	plans, _ := args.Get(0).([]domain.Plan)

	return plans, args.Error(1)
}

func (m *FulfillmentClient) ActivateSubscription(ctx context.Context, subscriptionID uuid.UUID, planID string, quantity int) error {
	args := m.Called(ctx, subscriptionID, planID, quantity)
	return args.Error(0)
}

func (m *FulfillmentClient) UpdateSubscriptionPlan(ctx context.Context, subscriptionID uuid.UUID, planID string) (uuid.UUID, error) {
	args := m.Called(ctx, subscriptionID, planID)

	id, _ := args.Get(0).(uuid.UUID)

	return id, args.Error(1)
}

func (m *FulfillmentClient) UpdateSubscriptionQuantity(ctx context.Context, subscriptionID uuid.UUID, quantity int) (uuid.UUID, error) {
	args := m.Called(ctx, subscriptionID, quantity)

	id, _ := args.Get(0).(uuid.UUID)

	return id, args.Error(1)
}

func (m *FulfillmentClient) DeleteSubscription(ctx context.Context, subscriptionID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, subscriptionID)

	id, _ := args.Get(0).(uuid.UUID)

	return id, args.Error(1)
}

func (m *FulfillmentClient) ListOperations(ctx context.Context, subscriptionID uuid.UUID) ([]domain.Operation, error) {
	args := m.Called(ctx, subscriptionID)

	operations, _ := args.Get(0).([]domain.Operation)

	return operations, args.Error(1)
}

func (m *FulfillmentClient) GetOperation(ctx context.Context, subscriptionID, operationID uuid.UUID) (*domain.Operation, error) {
	args := m.Called(ctx, subscriptionID, operationID)

	operation, _ := args.Get(0).(*domain.Operation)

	return operation, args.Error(1)
}

func (m *FulfillmentClient) UpdateOperationStatus(ctx context.Context, subscriptionID, operationID uuid.UUID, update domain.OperationUpdate) error {
	args := m.Called(ctx, subscriptionID, operationID, update)
	return args.Error(0)
}
