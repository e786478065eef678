package notification

import (
	"context"

	"cloud.google.com/go/pubsub"

	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

const (
	eventTypeAttribute      = "eventType"
	subscriptionIDAttribute = "subscriptionId"
)

// PubSubHandler publishes the queue messages to a pubsub topic.
type PubSubHandler struct {
	loggerProvider logger.Provider
	topic          *pubsub.Topic
	composer       *composer
}

func NewPubSubHandler(log logger.Provider, client *pubsub.Client, topicID, baseURL string) *PubSubHandler {
	return &PubSubHandler{
		loggerProvider: log,
		topic:          client.Topic(topicID),
		composer:       &composer{baseURL: baseURL},
	}
}

func (h *PubSubHandler) ProcessNewSubscription(ctx context.Context, model *domain.ProvisionModel) error {
	return h.landing(ctx, EventNewSubscription, model)
}

func (h *PubSubHandler) ProcessChangePlan(ctx context.Context, model *domain.ProvisionModel) error {
	return h.landing(ctx, EventUpdateSubscription, model)
}

func (h *PubSubHandler) ProcessOperationFailOrConflict(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventOperationFailure, payload)
}

func (h *PubSubHandler) NotifyChangePlan(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventPlanChanged, payload)
}

func (h *PubSubHandler) NotifyChangeQuantity(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventQuantityChanged, payload)
}

func (h *PubSubHandler) NotifyReinstated(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventReinstated, payload)
}

func (h *PubSubHandler) NotifySuspended(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventSuspended, payload)
}

func (h *PubSubHandler) NotifyUnsubscribed(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventUnsubscribed, payload)
}

func (h *PubSubHandler) landing(ctx context.Context, event Event, model *domain.ProvisionModel) error {
	if model == nil {
		return ErrNilProvisionModel
	}

	data, err := h.composer.encodeLanding(event, model)
	if err != nil {
		return err
	}

	return h.publish(ctx, event, model.SubscriptionID, data)
}

func (h *PubSubHandler) webhook(ctx context.Context, event Event, payload *domain.WebhookPayload) error {
	if payload == nil {
		return ErrNilWebhookPayload
	}

	data, err := encodeWebhook(payload)
	if err != nil {
		return err
	}

	return h.publish(ctx, event, payload.SubscriptionID.String(), data)
}

func (h *PubSubHandler) publish(ctx context.Context, event Event, subscriptionID string, data []byte) error {
	res := h.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			eventTypeAttribute:      string(event),
			subscriptionIDAttribute: subscriptionID,
		},
	})

	msgID, err := res.Get(ctx)
	if err != nil {
		h.loggerProvider(ctx).Errorf("unable to publish %s notification: %s", event, err)
		return err
	}

	h.loggerProvider(ctx).Infof("published %s notification %s", event, msgID)

	return nil
}

// Stop flushes pending messages.
func (h *PubSubHandler) Stop() {
	h.topic.Stop()
}
