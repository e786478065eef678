package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

type IWebhookHandler struct {
	mock.Mock
}

func (m *IWebhookHandler) ChangePlan(ctx context.Context, payload *domain.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *IWebhookHandler) ChangeQuantity(ctx context.Context, payload *domain.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *IWebhookHandler) Reinstated(ctx context.Context, payload *domain.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *IWebhookHandler) Suspended(ctx context.Context, payload *domain.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *IWebhookHandler) Unsubscribed(ctx context.Context, payload *domain.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
