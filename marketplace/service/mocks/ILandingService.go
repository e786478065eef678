package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

type ILandingService struct {
	mock.Mock
}

func (m *ILandingService) BuildProvisionModel(ctx context.Context, token string, user domain.UserProfile) (*domain.ProvisionModel, error) {
	args := m.Called(ctx, token, user)

	model, _ := args.Get(0).(*domain.ProvisionModel)

	return model, args.Error(1)
}

func (m *ILandingService) Submit(ctx context.Context, model *domain.ProvisionModel) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}
