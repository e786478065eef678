package domain

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidWebhookPayload = errors.New("invalid webhook payload")

// WebhookPayload is the notification the marketplace posts to the webhook endpoint.
type WebhookPayload struct {
	OperationID            uuid.UUID       `json:"id"`
	ActivityID             string          `json:"activityId"`
	PublisherID            string          `json:"publisherId"`
	OfferID                string          `json:"offerId"`
	PlanID                 string          `json:"planId"`
	Quantity               int             `json:"quantity,omitempty"`
	SubscriptionID         uuid.UUID       `json:"subscriptionId"`
	TimeStamp              Timestamp       `json:"timeStamp"`
	Action                 WebhookAction   `json:"action"`
	Status                 OperationStatus `json:"status"`
	OperationRequestSource string          `json:"operationRequestSource,omitempty"`
	Subscription           *Subscription   `json:"subscription,omitempty"`
}

// Validate checks the fields needed to look the operation up.
func (p *WebhookPayload) Validate() error {
	if p.OperationID == uuid.Nil || p.SubscriptionID == uuid.Nil || p.Action == "" {
		return ErrInvalidWebhookPayload
	}

	return nil
}

// Verified returns a copy of the payload where every field the marketplace
// reported for the operation replaces the unauthenticated value.
func (p WebhookPayload) Verified(op *Operation) WebhookPayload {
	if op == nil {
		return p
	}

	if op.Action != "" {
		p.Action = op.Action
	}

	if op.Status != "" {
		p.Status = op.Status
	}

	if op.PlanID != "" {
		p.PlanID = op.PlanID
	}

	if op.Quantity != 0 {
		p.Quantity = op.Quantity
	}

	if op.OfferID != "" {
		p.OfferID = op.OfferID
	}

	if op.PublisherID != "" {
		p.PublisherID = op.PublisherID
	}

	if !op.TimeStamp.IsZero() {
		p.TimeStamp = op.TimeStamp
	}

	return p
}
