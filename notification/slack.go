package notification

import (
	"context"
	"time"

	"github.com/slack-go/slack"

	"github.com/doitintl/hello/commandcenter/common"
	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	httpIface "github.com/doitintl/hello/commandcenter/marketplace/http/iface"
)

// SlackHandler posts to a slack incoming webhook.
type SlackHandler struct {
	loggerProvider logger.Provider
	composer       *composer
	webhookURL     string
	channel        string
	environment    string
	now            func() time.Time
}

func NewSlackHandler(
	log logger.Provider,
	fulfillment httpIface.FulfillmentClient,
	baseURL string,
	opts common.SlackOptions,
) *SlackHandler {
	return &SlackHandler{
		loggerProvider: log,
		composer: &composer{
			baseURL:     baseURL,
			fulfillment: fulfillment,
		},
		webhookURL:  opts.WebhookURL,
		channel:     opts.Channel,
		environment: common.Env,
		now:         time.Now,
	}
}

func (h *SlackHandler) ProcessNewSubscription(ctx context.Context, model *domain.ProvisionModel) error {
	return h.landing(ctx, EventNewSubscription, model)
}

func (h *SlackHandler) ProcessChangePlan(ctx context.Context, model *domain.ProvisionModel) error {
	return h.landing(ctx, EventUpdateSubscription, model)
}

func (h *SlackHandler) ProcessOperationFailOrConflict(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventOperationFailure, payload)
}

func (h *SlackHandler) NotifyChangePlan(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventPlanChanged, payload)
}

func (h *SlackHandler) NotifyChangeQuantity(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventQuantityChanged, payload)
}

func (h *SlackHandler) NotifyReinstated(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventReinstated, payload)
}

func (h *SlackHandler) NotifySuspended(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventSuspended, payload)
}

func (h *SlackHandler) NotifyUnsubscribed(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventUnsubscribed, payload)
}

func (h *SlackHandler) landing(ctx context.Context, event Event, model *domain.ProvisionModel) error {
	if model == nil {
		return ErrNilProvisionModel
	}

	msg, err := h.composer.landing(event, model)
	if err != nil {
		return err
	}

	return h.post(ctx, msg)
}

func (h *SlackHandler) webhook(ctx context.Context, event Event, payload *domain.WebhookPayload) error {
	if payload == nil {
		return ErrNilWebhookPayload
	}

	msg, err := h.composer.webhook(ctx, event, payload)
	if err != nil {
		return err
	}

	return h.post(ctx, msg)
}

func (h *SlackHandler) post(ctx context.Context, msg *Message) error {
	return slack.PostWebhookContext(ctx, h.webhookURL, &slack.WebhookMessage{
		Channel:     h.channel,
		Text:        msg.Subject,
		Attachments: []slack.Attachment{assembleSlack(msg, h.environment, h.now().Unix())},
	})
}
