package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

type IDimensionUsageTableDAL struct {
	mock.Mock
}

func (m *IDimensionUsageTableDAL) Record(ctx context.Context, subscriptionID uuid.UUID, result domain.UsageEventResult) error {
	args := m.Called(ctx, subscriptionID, result)
	return args.Error(0)
}

func (m *IDimensionUsageTableDAL) GetAll(ctx context.Context, subscriptionID uuid.UUID) ([]*domain.DimensionUsageRecord, error) {
	args := m.Called(ctx, subscriptionID)

	records, _ := args.Get(0).([]*domain.DimensionUsageRecord)

	return records, args.Error(1)
}
