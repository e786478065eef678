package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

type MeteringClient struct {
	mock.Mock
}

func (m *MeteringClient) PostUsageEvent(ctx context.Context, event domain.UsageEvent) (*domain.UsageEventResult, error) {
	args := m.Called(ctx, event)

	result, _ := args.Get(0).(*domain.UsageEventResult)

	return result, args.Error(1)
}
