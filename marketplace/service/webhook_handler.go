package service

import (
	"context"

	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	httpIface "github.com/doitintl/hello/commandcenter/marketplace/http/iface"
	notificationIface "github.com/doitintl/hello/commandcenter/notification/iface"
)

// WebhookHandler reacts to verified webhook actions. Plan and quantity changes
// are acknowledged right away, the other actions are left to the operations team.
// Once an operation is acknowledged a failed notification is only logged, so the
// operation is recorded and a redelivery is not acknowledged again.
type WebhookHandler struct {
	loggerProvider logger.Provider
	fulfillment    httpIface.FulfillmentClient
	notifications  notificationIface.Handler
}

func NewWebhookHandler(
	log logger.Provider,
	fulfillment httpIface.FulfillmentClient,
	notifications notificationIface.Handler,
) *WebhookHandler {
	return &WebhookHandler{
		loggerProvider: log,
		fulfillment:    fulfillment,
		notifications:  notifications,
	}
}

func (h *WebhookHandler) ChangePlan(ctx context.Context, payload *domain.WebhookPayload) error {
	if payload.Status.IsFailure() {
		return h.notifications.ProcessOperationFailOrConflict(ctx, payload)
	}

	if payload.Status != domain.OperationStatusSucceeded {
		return nil
	}

	if err := h.fulfillment.UpdateOperationStatus(ctx, payload.SubscriptionID, payload.OperationID, domain.OperationUpdate{
		PlanID: payload.PlanID,
		Status: domain.UpdateOperationStatusSuccess,
	}); err != nil {
		return err
	}

	h.loggerProvider(ctx).Infof("plan of subscription %s changed to %s", payload.SubscriptionID, payload.PlanID)

	h.notifyAcknowledged(ctx, payload, h.notifications.NotifyChangePlan)

	return nil
}

func (h *WebhookHandler) ChangeQuantity(ctx context.Context, payload *domain.WebhookPayload) error {
	if payload.Status.IsFailure() {
		return h.notifications.ProcessOperationFailOrConflict(ctx, payload)
	}

	if payload.Status != domain.OperationStatusSucceeded {
		return nil
	}

	if err := h.fulfillment.UpdateOperationStatus(ctx, payload.SubscriptionID, payload.OperationID, domain.OperationUpdate{
		Quantity: payload.Quantity,
		Status:   domain.UpdateOperationStatusSuccess,
	}); err != nil {
		return err
	}

	h.loggerProvider(ctx).Infof("quantity of subscription %s changed to %d", payload.SubscriptionID, payload.Quantity)

	h.notifyAcknowledged(ctx, payload, h.notifications.NotifyChangeQuantity)

	return nil
}

func (h *WebhookHandler) Reinstated(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.notify(ctx, payload, h.notifications.NotifyReinstated)
}

func (h *WebhookHandler) Suspended(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.notify(ctx, payload, h.notifications.NotifySuspended)
}

func (h *WebhookHandler) Unsubscribed(ctx context.Context, payload *domain.WebhookPayload) error {
	return h.notify(ctx, payload, h.notifications.NotifyUnsubscribed)
}

func (h *WebhookHandler) notify(
	ctx context.Context,
	payload *domain.WebhookPayload,
	onSuccess func(context.Context, *domain.WebhookPayload) error,
) error {
	switch {
	case payload.Status.IsFailure():
		return h.notifications.ProcessOperationFailOrConflict(ctx, payload)
	case payload.Status == domain.OperationStatusSucceeded:
		return onSuccess(ctx, payload)
	default:
		return nil
	}
}

func (h *WebhookHandler) notifyAcknowledged(
	ctx context.Context,
	payload *domain.WebhookPayload,
	send func(context.Context, *domain.WebhookPayload) error,
) {
	if err := send(ctx, payload); err != nil {
		h.loggerProvider(ctx).Errorf("operation %s was acknowledged but the %s notification failed: %v", payload.OperationID, payload.Action, err)
	}
}
