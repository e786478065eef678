package notification

import (
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"

	"github.com/doitintl/hello/commandcenter/common"
	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/mailer"
	httpIface "github.com/doitintl/hello/commandcenter/marketplace/http/iface"
)

var (
	ErrNoNotificationHandler      = errors.New("no notification handler is active")
	ErrUnknownNotificationHandler = errors.New("unknown notification handler")
	ErrQueueClientRequired        = errors.New("azure queue client is required for queue notifications")
	ErrPubsubClientRequired       = errors.New("pubsub client is required for pubsub notifications")
)

// Dependencies are the clients the notification sinks are built on.
type Dependencies struct {
	Options     *common.Options
	Fulfillment httpIface.FulfillmentClient
	// Mailer overrides the sendgrid mailer built from the mail options.
	Mailer MailSender
	Queue  *azqueue.QueueClient
	Pubsub *pubsub.Client
}

// NewHandler builds the active notification handlers, in configuration order.
func NewHandler(log logger.Provider, deps Dependencies) (*MultiHandler, error) {
	opts := deps.Options

	if len(opts.ActiveNotificationHandlers) == 0 {
		return nil, ErrNoNotificationHandler
	}

	targets := make([]Target, 0, len(opts.ActiveNotificationHandlers))

	for _, kind := range opts.ActiveNotificationHandlers {
		var h Target

		h.Name = string(kind)

		switch kind {
		case common.EmailNotifications:
			sender := deps.Mailer
			if sender == nil {
				sender = mailer.NewMailer(log, mailer.SendGridConfig{
					APIKey:  opts.Mail.APIKey,
					BaseURL: opts.Mail.BaseURL,
				})
			}

			h.Handler = NewEmailHandler(log, sender, deps.Fulfillment, opts.BaseURL, opts.Mail)
		case common.AzureQueueNotifications:
			if deps.Queue == nil {
				return nil, ErrQueueClientRequired
			}

			h.Handler = NewAzureQueueHandler(log, deps.Queue, opts.BaseURL)
		case common.PubSubNotifications:
			if deps.Pubsub == nil {
				return nil, ErrPubsubClientRequired
			}

			h.Handler = NewPubSubHandler(log, deps.Pubsub, opts.PubSub.TopicID, opts.BaseURL)
		case common.SlackNotifications:
			h.Handler = NewSlackHandler(log, deps.Fulfillment, opts.BaseURL, opts.Slack)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownNotificationHandler, kind)
		}

		targets = append(targets, h)
	}

	return NewMultiHandler(log, targets...), nil
}
