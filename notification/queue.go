package notification

import (
	"context"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue/queueerror"

	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

// QueueAPI is the part of *azqueue.QueueClient the queue handler uses.
type QueueAPI interface {
	Create(ctx context.Context, options *azqueue.CreateOptions) (azqueue.CreateResponse, error)
	EnqueueMessage(ctx context.Context, content string, o *azqueue.EnqueueMessageOptions) (azqueue.EnqueueMessagesResponse, error)
}

// AzureQueueHandler enqueues notifications on an azure storage queue.
// Webhook events are queued as the verified payload, landing page events
// as {"ActionLink": ..., "Payload": ...}.
type AzureQueueHandler struct {
	loggerProvider logger.Provider
	queue          QueueAPI
	composer       *composer

	mu      sync.Mutex
	created bool
}

func NewAzureQueueHandler(log logger.Provider, queue QueueAPI, baseURL string) *AzureQueueHandler {
	return &AzureQueueHandler{
		loggerProvider: log,
		queue:          queue,
		composer:       &composer{baseURL: baseURL},
	}
}

func (h *AzureQueueHandler) ProcessNewSubscription(ctx context.Context, model *domain.ProvisionModel) error {
	return h.landing(ctx, EventNewSubscription, model)
}

func (h *AzureQueueHandler) ProcessChangePlan(ctx context.Context, model *domain.ProvisionModel) error {
	return h.landing(ctx, EventUpdateSubscription, model)
}

func (h *AzureQueueHandler) ProcessOperationFailOrConflict(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, payload)
}

func (h *AzureQueueHandler) NotifyChangePlan(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, payload)
}

func (h *AzureQueueHandler) NotifyChangeQuantity(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, payload)
}

func (h *AzureQueueHandler) NotifyReinstated(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, payload)
}

func (h *AzureQueueHandler) NotifySuspended(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, payload)
}

func (h *AzureQueueHandler) NotifyUnsubscribed(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, payload)
}

func (h *AzureQueueHandler) landing(ctx context.Context, event Event, model *domain.ProvisionModel) error {
	if model == nil {
		return ErrNilProvisionModel
	}

	data, err := h.composer.encodeLanding(event, model)
	if err != nil {
		return err
	}

	return h.enqueue(ctx, data)
}

func (h *AzureQueueHandler) webhook(ctx context.Context, payload *domain.WebhookPayload) error {
	if payload == nil {
		return ErrNilWebhookPayload
	}

	data, err := encodeWebhook(payload)
	if err != nil {
		return err
	}

	return h.enqueue(ctx, data)
}

func (h *AzureQueueHandler) enqueue(ctx context.Context, data []byte) error {
	if err := h.ensureCreated(ctx); err != nil {
		return err
	}

	if _, err := h.queue.EnqueueMessage(ctx, string(data), nil); err != nil {
		h.loggerProvider(ctx).Errorf("could not enqueue notification: %s", err)
		return err
	}

	return nil
}

// ensureCreated creates the queue on first use. A failed attempt is retried
// by the next notification.
func (h *AzureQueueHandler) ensureCreated(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.created {
		return nil
	}

	if _, err := h.queue.Create(ctx, nil); err != nil && !queueerror.HasCode(err, queueerror.QueueAlreadyExists) {
		h.loggerProvider(ctx).Errorf("could not create notification queue: %s", err)
		return err
	}

	h.created = true

	return nil
}
