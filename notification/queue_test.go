package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

type fakeQueue struct {
	createErrs  []error
	createCalls int
	enqueueErr  error
	messages    []string
}

func (q *fakeQueue) Create(_ context.Context, _ *azqueue.CreateOptions) (azqueue.CreateResponse, error) {
	q.createCalls++

	if len(q.createErrs) > 0 {
		err := q.createErrs[0]
		q.createErrs = q.createErrs[1:]

		return azqueue.CreateResponse{}, err
	}

	return azqueue.CreateResponse{}, nil
}

func (q *fakeQueue) EnqueueMessage(_ context.Context, content string, _ *azqueue.EnqueueMessageOptions) (azqueue.EnqueueMessagesResponse, error) {
	if q.enqueueErr != nil {
		return azqueue.EnqueueMessagesResponse{}, q.enqueueErr
	}

	q.messages = append(q.messages, content)

	return azqueue.EnqueueMessagesResponse{}, nil
}

func TestAzureQueueHandler_Messages(t *testing.T) {
	ctx := context.Background()
	queue := &fakeQueue{}
	h := NewAzureQueueHandler(logger.FromContext, queue, testBaseURL)

	require.NoError(t, h.ProcessNewSubscription(ctx, testProvisionModel()))
	require.NoError(t, h.NotifyUnsubscribed(ctx, testPayload(domain.WebhookActionUnsubscribe, domain.OperationStatusSucceeded)))

	assert.Equal(t, 1, queue.createCalls)
	require.Len(t, queue.messages, 2)

	var envelope struct {
		ActionLink string
		Payload    domain.ProvisionModel
	}

	require.NoError(t, json.Unmarshal([]byte(queue.messages[0]), &envelope))
	assert.Equal(t, "https://cc.contoso.com/maillink/activate?planId=silver&subscriptionId="+testSubscriptionID.String(), envelope.ActionLink)
	assert.Equal(t, "Contoso SaaS", envelope.Payload.SubscriptionName)

	var payload domain.WebhookPayload

	require.NoError(t, json.Unmarshal([]byte(queue.messages[1]), &payload))
	assert.Equal(t, testOperationID, payload.OperationID)
	assert.Equal(t, domain.WebhookActionUnsubscribe, payload.Action)
}

func TestAzureQueueHandler_QueueAlreadyExists(t *testing.T) {
	queue := &fakeQueue{
		createErrs: []error{&azcore.ResponseError{StatusCode: http.StatusConflict, ErrorCode: "QueueAlreadyExists"}},
	}
	h := NewAzureQueueHandler(logger.FromContext, queue, testBaseURL)

	require.NoError(t, h.NotifySuspended(context.Background(), testPayload(domain.WebhookActionSuspend, domain.OperationStatusSucceeded)))
	assert.Len(t, queue.messages, 1)
}

func TestAzureQueueHandler_CreateRetried(t *testing.T) {
	ctx := context.Background()
	createErr := errors.New("storage unavailable")
	queue := &fakeQueue{createErrs: []error{createErr}}
	h := NewAzureQueueHandler(logger.FromContext, queue, testBaseURL)
	payload := testPayload(domain.WebhookActionReinstate, domain.OperationStatusSucceeded)

	assert.ErrorIs(t, h.NotifyReinstated(ctx, payload), createErr)
	assert.Empty(t, queue.messages)

	require.NoError(t, h.NotifyReinstated(ctx, payload))
	assert.Equal(t, 2, queue.createCalls)
	assert.Len(t, queue.messages, 1)
}

func TestAzureQueueHandler_Errors(t *testing.T) {
	ctx := context.Background()
	enqueueErr := errors.New("throttled")
	h := NewAzureQueueHandler(logger.FromContext, &fakeQueue{enqueueErr: enqueueErr}, testBaseURL)

	assert.ErrorIs(t, h.NotifyChangePlan(ctx, testPayload(domain.WebhookActionChangePlan, domain.OperationStatusSucceeded)), enqueueErr)
	assert.ErrorIs(t, h.ProcessChangePlan(ctx, nil), ErrNilProvisionModel)
	assert.ErrorIs(t, h.NotifyChangeQuantity(ctx, nil), ErrNilWebhookPayload)
}
