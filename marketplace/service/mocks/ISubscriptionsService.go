package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

type ISubscriptionsService struct {
	mock.Mock
}

func (m *ISubscriptionsService) List(ctx context.Context) ([]domain.SubscriptionViewModel, error) {
	args := m.Called(ctx)

	models, _ := args.Get(0).([]domain.SubscriptionViewModel)

	return models, args.Error(1)
}

func (m *ISubscriptionsService) Operations(ctx context.Context, subscriptionID uuid.UUID) (*domain.OperationsViewModel, error) {
	args := m.Called(ctx, subscriptionID)

	model, _ := args.Get(0).(*domain.OperationsViewModel)

	return model, args.Error(1)
}

func (m *ISubscriptionsService) UpdateView(ctx context.Context, subscriptionID uuid.UUID) (*domain.UpdateSubscriptionViewModel, error) {
	args := m.Called(ctx, subscriptionID)

	model, _ := args.Get(0).(*domain.UpdateSubscriptionViewModel)

	return model, args.Error(1)
}

func (m *ISubscriptionsService) Unsubscribe(ctx context.Context, subscriptionID uuid.UUID) error {
	args := m.Called(ctx, subscriptionID)
	return args.Error(0)
}

func (m *ISubscriptionsService) UpdatePlan(ctx context.Context, subscriptionID uuid.UUID, newPlan string) error {
	args := m.Called(ctx, subscriptionID, newPlan)
	return args.Error(0)
}

func (m *ISubscriptionsService) UpdateFromMailLink(ctx context.Context, subscriptionID uuid.UUID, planID string) error {
	args := m.Called(ctx, subscriptionID, planID)
	return args.Error(0)
}
