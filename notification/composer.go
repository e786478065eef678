package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/doitintl/hello/commandcenter/common"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	httpIface "github.com/doitintl/hello/commandcenter/marketplace/http/iface"
)

const (
	activateLinkPath   = "maillink/activate"
	updateLinkPath     = "maillink/update"
	reinstateLinkPath  = "maillink/reinstate"
	operationsLinkPath = "subscriptions/operations"
)

type webhookTemplate struct {
	subject    string
	body       string
	linkPath   string
	actionText string
}

var webhookTemplates = map[Event]webhookTemplate{
	EventPlanChanged: {
		subject: "Plan change request complete",
		body:    "Plan change request complete. Please take the required action.",
	},
	EventQuantityChanged: {
		subject: "Quantity change request",
		body:    "Quantity change request. Please take the required action.",
	},
	EventReinstated: {
		subject:    "Reinstate subscription request",
		body:       "Reinstate subscription request. Please take the required action, then return to this email and click the following link to confirm.",
		linkPath:   reinstateLinkPath,
		actionText: "Click here to confirm.",
	},
	EventSuspended: {
		subject: "Suspend subscription request",
		body:    "Suspend subscription request. Please take the required action.",
	},
	EventUnsubscribed: {
		subject: "Cancel subscription request",
		body:    "Cancel subscription request. Please take the required action.",
	},
	EventOperationFailure: {
		subject:    "Operation failure",
		body:       "Operation failure.",
		linkPath:   operationsLinkPath,
		actionText: "Click here to list all operations for this subscription",
	},
}

// composer builds the messages and links shared by the notification sinks.
type composer struct {
	baseURL     string
	fulfillment httpIface.FulfillmentClient
}

func (c *composer) link(path string, params ...string) (string, error) {
	b, err := common.NewLinkBuilder(c.baseURL)
	if err != nil {
		return "", err
	}

	b.AddPath(path)

	for i := 0; i+1 < len(params); i += 2 {
		b.AddQuery(params[i], params[i+1])
	}

	return b.String(), nil
}

// landingLink is the mail link that confirms a landing page submission.
func (c *composer) landingLink(event Event, m *domain.ProvisionModel) (string, error) {
	if event == EventNewSubscription {
		return c.link(activateLinkPath, "subscriptionId", m.SubscriptionID, "planId", m.PlanID)
	}

	return c.link(updateLinkPath, "subscriptionId", m.SubscriptionID, "planId", m.TargetPlanID())
}

func (c *composer) webhookLink(event Event, p *domain.WebhookPayload) (string, error) {
	t := webhookTemplates[event]

	switch t.linkPath {
	case "":
		return "", nil
	case operationsLinkPath:
		return c.link(operationsLinkPath, "subscriptionId", p.SubscriptionID.String())
	default:
		return c.link(t.linkPath,
			"subscriptionId", p.SubscriptionID.String(),
			"publisherId", p.PublisherID,
			"offerId", p.OfferID,
			"planId", p.PlanID,
			"quantity", strconv.Itoa(p.Quantity),
			"operationId", p.OperationID.String(),
		)
	}
}

func (c *composer) landing(event Event, m *domain.ProvisionModel) (*Message, error) {
	link, err := c.landingLink(event, m)
	if err != nil {
		return nil, err
	}

	msg := &Message{
		Event:      event,
		ActionLink: link,
		Details:    provisionDetails(m),
	}

	if event == EventNewSubscription {
		msg.Subject = "New subscription, " + m.SubscriptionName
		msg.Paragraphs = []string{
			"New subscription. Please take the required action, then return to this email and click the following link to confirm.",
		}
		msg.ActionText = "Click here to activate subscription"

		return msg, nil
	}

	msg.Subject = "Update subscription, " + m.SubscriptionName
	msg.Paragraphs = []string{
		fmt.Sprintf("Updated subscription from %s to %s.", escapeMarkdown(m.PlanID), escapeMarkdown(m.TargetPlanID())),
		"Please take the required action, then return to this email and click the following link to confirm.",
	}
	msg.ActionText = "Click here to update subscription"

	return msg, nil
}

// webhook looks the subscription up so the message shows its current name and details.
func (c *composer) webhook(ctx context.Context, event Event, p *domain.WebhookPayload) (*Message, error) {
	t, ok := webhookTemplates[event]
	if !ok {
		return nil, fmt.Errorf("no template for event %s", event)
	}

	subscription, err := c.fulfillment.GetSubscription(ctx, p.SubscriptionID)
	if err != nil {
		return nil, err
	}

	link, err := c.webhookLink(event, p)
	if err != nil {
		return nil, err
	}

	return &Message{
		Event:      event,
		Subject:    fmt.Sprintf("%s, %s", t.subject, subscription.Name),
		Paragraphs: []string{t.body},
		ActionLink: link,
		ActionText: t.actionText,
		Details:    subscriptionDetails(subscription, p),
	}, nil
}

func provisionDetails(m *domain.ProvisionModel) []Detail {
	details := []Detail{
		{Name: "Subscription id", Value: m.SubscriptionID},
		{Name: "Subscription name", Value: m.SubscriptionName},
		{Name: "Offer", Value: m.OfferID},
		{Name: "Plan", Value: m.PlanID},
	}

	if m.NewPlanID != "" {
		details = append(details, Detail{Name: "New plan", Value: m.NewPlanID})
	}

	return append(details,
		Detail{Name: "Status", Value: string(m.SubscriptionStatus)},
		Detail{Name: "Region", Value: string(m.Region)},
		Detail{Name: "Business unit contact", Value: m.BusinessUnitContactEmail},
		Detail{Name: "Purchaser email", Value: m.PurchaserEmail},
		Detail{Name: "Purchaser tenant", Value: m.PurchaserTenantID},
		Detail{Name: "Submitted by", Value: fmt.Sprintf("%s (%s)", m.FullName, m.Email)},
	)
}

func subscriptionDetails(s *domain.Subscription, p *domain.WebhookPayload) []Detail {
	details := []Detail{
		{Name: "Subscription id", Value: s.ID.String()},
		{Name: "Subscription name", Value: s.Name},
		{Name: "Offer", Value: s.OfferID},
		{Name: "Plan", Value: s.PlanID},
		{Name: "Status", Value: string(s.SaasSubscriptionStatus)},
		{Name: "Purchaser email", Value: s.Purchaser.EmailID},
		{Name: "Purchaser tenant", Value: s.Purchaser.TenantID},
		{Name: "Beneficiary email", Value: s.Beneficiary.EmailID},
	}

	if s.Quantity > 0 {
		details = append(details, Detail{Name: "Quantity", Value: strconv.Itoa(s.Quantity)})
	}

	return append(details,
		Detail{Name: "Operation id", Value: p.OperationID.String()},
		Detail{Name: "Operation action", Value: string(p.Action)},
		Detail{Name: "Operation status", Value: string(p.Status)},
	)
}

// landingEnvelope is the queued form of a landing page submission.
type landingEnvelope struct {
	ActionLink string                 `json:"ActionLink"`
	Payload    *domain.ProvisionModel `json:"Payload"`
}

func (c *composer) encodeLanding(event Event, m *domain.ProvisionModel) ([]byte, error) {
	link, err := c.landingLink(event, m)
	if err != nil {
		return nil, err
	}

	return json.Marshal(landingEnvelope{ActionLink: link, Payload: m})
}

func encodeWebhook(p *domain.WebhookPayload) ([]byte, error) {
	return json.Marshal(p)
}
