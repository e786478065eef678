package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	"github.com/doitintl/hello/commandcenter/notification/mocks"
)

func TestMultiHandler_FanOut(t *testing.T) {
	ctx := context.Background()
	payload := testPayload(domain.WebhookActionSuspend, domain.OperationStatusSucceeded)
	model := testProvisionModel()

	email := &mocks.Handler{}
	email.On("NotifySuspended", ctx, payload).Return(nil)
	email.On("ProcessNewSubscription", ctx, model).Return(nil)

	queue := &mocks.Handler{}
	queue.On("NotifySuspended", ctx, payload).Return(nil)
	queue.On("ProcessNewSubscription", ctx, model).Return(nil)

	m := NewMultiHandler(logger.FromContext,
		Target{Name: "EmailNotifications", Handler: email},
		Target{Name: "AzureQueueNotifications", Handler: queue},
	)

	assert.Equal(t, []string{"EmailNotifications", "AzureQueueNotifications"}, m.Targets())
	assert.NoError(t, m.NotifySuspended(ctx, payload))
	assert.NoError(t, m.ProcessNewSubscription(ctx, model))

	email.AssertExpectations(t)
	queue.AssertExpectations(t)
}

func TestMultiHandler_AggregatesErrors(t *testing.T) {
	ctx := context.Background()
	emailErr := errors.New("sendgrid down")
	slackErr := errors.New("slack down")

	email := &mocks.Handler{}
	email.On("NotifyUnsubscribed", ctx, mock.Anything).Return(emailErr)

	queue := &mocks.Handler{}
	queue.On("NotifyUnsubscribed", ctx, mock.Anything).Return(nil)

	slackHandler := &mocks.Handler{}
	slackHandler.On("NotifyUnsubscribed", ctx, mock.Anything).Return(slackErr)

	m := NewMultiHandler(logger.FromContext,
		Target{Name: "EmailNotifications", Handler: email},
		Target{Name: "AzureQueueNotifications", Handler: queue},
		Target{Name: "SlackNotifications", Handler: slackHandler},
	)

	err := m.NotifyUnsubscribed(ctx, testPayload(domain.WebhookActionUnsubscribe, domain.OperationStatusSucceeded))

	assert.ErrorIs(t, err, emailErr)
	assert.ErrorIs(t, err, slackErr)
	assert.Contains(t, err.Error(), "EmailNotifications: sendgrid down")
	queue.AssertExpectations(t)
}
