package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

type IDimensionsService struct {
	mock.Mock
}

func (m *IDimensionsService) View(ctx context.Context, subscriptionID uuid.UUID) (*domain.DimensionEventViewModel, error) {
	args := m.Called(ctx, subscriptionID)

	model, _ := args.Get(0).(*domain.DimensionEventViewModel)

	return model, args.Error(1)
}

func (m *IDimensionsService) Send(ctx context.Context, subscriptionID uuid.UUID, dimension string, quantity int64, eventTime time.Time) (*domain.DimensionEventViewModel, error) {
	args := m.Called(ctx, subscriptionID, dimension, quantity, eventTime)

	model, _ := args.Get(0).(*domain.DimensionEventViewModel)

	return model, args.Error(1)
}
