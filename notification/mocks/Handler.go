package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

type Handler struct {
	mock.Mock
}

func (m *Handler) ProcessNewSubscription(ctx context.Context, model *domain.ProvisionModel) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *Handler) ProcessChangePlan(ctx context.Context, model *domain.ProvisionModel) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *Handler) ProcessOperationFailOrConflict(ctx context.Context, payload *domain.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *Handler) NotifyChangePlan(ctx context.Context, payload *domain.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *Handler) NotifyChangeQuantity(ctx context.Context, payload *domain.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *Handler) NotifyReinstated(ctx context.Context, payload *domain.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *Handler) NotifySuspended(ctx context.Context, payload *domain.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *Handler) NotifyUnsubscribed(ctx context.Context, payload *domain.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
