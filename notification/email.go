package notification

import (
	"context"

	"github.com/doitintl/hello/commandcenter/common"
	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/mailer"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	httpIface "github.com/doitintl/hello/commandcenter/marketplace/http/iface"
)

const (
	fromName      = "Marketplace command center"
	emailCategory = "commandcenter"
)

type MailSender interface {
	Send(ctx context.Context, msg *mailer.Message) error
}

// EmailHandler mails the operations team.
type EmailHandler struct {
	loggerProvider logger.Provider
	mailer         MailSender
	composer       *composer
	from           string
	to             string
}

func NewEmailHandler(
	log logger.Provider,
	sender MailSender,
	fulfillment httpIface.FulfillmentClient,
	baseURL string,
	opts common.MailOptions,
) *EmailHandler {
	return &EmailHandler{
		loggerProvider: log,
		mailer:         sender,
		composer: &composer{
			baseURL:     baseURL,
			fulfillment: fulfillment,
		},
		from: opts.FromEmail,
		to:   opts.OperationsTeamEmail,
	}
}

func (h *EmailHandler) ProcessNewSubscription(ctx context.Context, model *domain.ProvisionModel) error {
	return h.landing(ctx, EventNewSubscription, model)
}

func (h *EmailHandler) ProcessChangePlan(ctx context.Context, model *domain.ProvisionModel) error {
	return h.landing(ctx, EventUpdateSubscription, model)
}

func (h *EmailHandler) ProcessOperationFailOrConflict(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventOperationFailure, payload)
}

func (h *EmailHandler) NotifyChangePlan(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventPlanChanged, payload)
}

func (h *EmailHandler) NotifyChangeQuantity(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventQuantityChanged, payload)
}

func (h *EmailHandler) NotifyReinstated(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventReinstated, payload)
}

func (h *EmailHandler) NotifySuspended(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventSuspended, payload)
}

func (h *EmailHandler) NotifyUnsubscribed(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.webhook(ctx, EventUnsubscribed, payload)
}

func (h *EmailHandler) landing(ctx context.Context, event Event, model *domain.ProvisionModel) error {
	if model == nil {
		return ErrNilProvisionModel
	}

	msg, err := h.composer.landing(event, model)
	if err != nil {
		return err
	}

	return h.send(ctx, msg)
}

func (h *EmailHandler) webhook(ctx context.Context, event Event, payload *domain.WebhookPayload) error {
	if payload == nil {
		return ErrNilWebhookPayload
	}

	msg, err := h.composer.webhook(ctx, event, payload)
	if err != nil {
		h.loggerProvider(ctx).Errorf("could not compose %s email for subscription %s: %s", event, payload.SubscriptionID, err)
		return err
	}

	return h.send(ctx, msg)
}

func (h *EmailHandler) send(ctx context.Context, msg *Message) error {
	return h.mailer.Send(ctx, &mailer.Message{
		FromName:   fromName,
		From:       h.from,
		To:         h.to,
		Subject:    msg.Subject,
		HTML:       assembleEmail(msg.Markdown()),
		Categories: []string{emailCategory, string(msg.Event)},
	})
}
