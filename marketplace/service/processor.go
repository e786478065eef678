package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/dal"
	dalIface "github.com/doitintl/hello/commandcenter/marketplace/dal/iface"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	marketplaceHttp "github.com/doitintl/hello/commandcenter/marketplace/http"
	httpIface "github.com/doitintl/hello/commandcenter/marketplace/http/iface"
	"github.com/doitintl/hello/commandcenter/marketplace/service/iface"
	"github.com/doitintl/hello/commandcenter/metrics"
)

const unknownActionLabel = "unknown"

type MarketplaceProcessor struct {
	loggerProvider logger.Provider
	fulfillment    httpIface.FulfillmentClient
	operationsDAL  dalIface.IOperationsTableDAL
	webhookHandler iface.IWebhookHandler
	now            func() time.Time
}

func NewMarketplaceProcessor(
	log logger.Provider,
	fulfillment httpIface.FulfillmentClient,
	operationsDAL dalIface.IOperationsTableDAL,
	webhookHandler iface.IWebhookHandler,
) *MarketplaceProcessor {
	return &MarketplaceProcessor{
		loggerProvider: log,
		fulfillment:    fulfillment,
		operationsDAL:  operationsDAL,
		webhookHandler: webhookHandler,
		now:            time.Now,
	}
}

func (s *MarketplaceProcessor) ActivateSubscription(ctx context.Context, subscriptionID uuid.UUID, planID string) error {
	logger := s.loggerProvider(ctx)

	if err := s.fulfillment.ActivateSubscription(ctx, subscriptionID, planID, 0); err != nil {
		return err
	}

	logger.Infof("activated subscription %s on plan %s", subscriptionID, planID)

	return nil
}

func (s *MarketplaceProcessor) GetSubscriptionFromPurchaseIdentificationToken(ctx context.Context, token string) (*domain.ResolvedSubscription, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	resolved, err := s.fulfillment.ResolveSubscription(ctx, token)
	if err != nil {
		s.loggerProvider(ctx).Errorf("failed to resolve purchase token: %v", err)
		return nil, ErrCannotResolveToken
	}

	if resolved == nil || resolved.ID == uuid.Nil {
		return nil, ErrCannotResolveToken
	}

	return resolved, nil
}

// OperationAck reports a successful outcome for an operation the operations team completed.
func (s *MarketplaceProcessor) OperationAck(ctx context.Context, subscriptionID, operationID uuid.UUID, planID string, quantity int) error {
	logger := s.loggerProvider(ctx)

	update := domain.OperationUpdate{
		PlanID:   planID,
		Quantity: quantity,
		Status:   domain.UpdateOperationStatusSuccess,
	}

	if err := s.fulfillment.UpdateOperationStatus(ctx, subscriptionID, operationID, update); err != nil {
		return err
	}

	logger.Infof("acknowledged operation %s of subscription %s", operationID, subscriptionID)

	return nil
}

// ProcessWebhookNotification re-reads the operation from the marketplace and
// dispatches the verified action. Notifications that cannot be verified, or
// that were already dispatched, are dropped without error so the marketplace
// does not retry them.
func (s *MarketplaceProcessor) ProcessWebhookNotification(ctx context.Context, payload *domain.WebhookPayload) error {
	logger := s.loggerProvider(ctx)

	if payload == nil {
		return ErrNilWebhookPayload
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	logger.SetLabels(map[string]string{
		"subscriptionId": payload.SubscriptionID.String(),
		"operationId":    payload.OperationID.String(),
	})

	operation, err := s.fulfillment.GetOperation(ctx, payload.SubscriptionID, payload.OperationID)
	if err != nil {
		if errors.Is(err, marketplaceHttp.ErrNotFound) {
			logger.Errorf("operation %s is unknown to the marketplace, ignoring notification", payload.OperationID)
			countWebhook(payload.Action, payload.Status, metrics.OutcomeUnverified)

			return nil
		}

		return err
	}

	if operation.SubscriptionID != uuid.Nil && operation.SubscriptionID != payload.SubscriptionID {
		logger.Warningf("operation %s belongs to subscription %s, ignoring notification", operation.ID, operation.SubscriptionID)
		countWebhook(payload.Action, payload.Status, metrics.OutcomeMismatch)

		return nil
	}

	verified := payload.Verified(operation)

	existing, err := s.operationsDAL.Get(ctx, verified.SubscriptionID, verified.OperationID)
	if err != nil {
		if !errors.Is(err, dal.ErrRecordNotFound) {
			return err
		}

		existing = nil
	}

	if existing != nil && existing.Processed && existing.Status == verified.Status {
		logger.Infof("operation %s was already processed with status %s", verified.OperationID, verified.Status)
		countWebhook(verified.Action, verified.Status, metrics.OutcomeDuplicate)

		return nil
	}

	if existing != nil && existing.Processed && existing.Status.IsTerminal() && !verified.Status.IsTerminal() {
		logger.Infof("operation %s is %s but was already processed as %s", verified.OperationID, verified.Status, existing.Status)
		countWebhook(verified.Action, verified.Status, metrics.OutcomeStale)

		return nil
	}

	logger.Infof("received %s notification with status %s", verified.Action, verified.Status)

	outcome, err := s.dispatch(ctx, &verified)
	countWebhook(verified.Action, verified.Status, outcome)

	if err != nil {
		return err
	}

	s.record(ctx, &verified, existing)

	return nil
}

func (s *MarketplaceProcessor) dispatch(ctx context.Context, payload *domain.WebhookPayload) (string, error) {
	logger := s.loggerProvider(ctx)

	var err error

	switch payload.Action {
	case domain.WebhookActionUnsubscribe:
		err = s.webhookHandler.Unsubscribed(ctx, payload)
	case domain.WebhookActionChangePlan:
		err = s.webhookHandler.ChangePlan(ctx, payload)
	case domain.WebhookActionChangeQuantity:
		err = s.webhookHandler.ChangeQuantity(ctx, payload)
	case domain.WebhookActionSuspend:
		err = s.webhookHandler.Suspended(ctx, payload)
	case domain.WebhookActionReinstate:
		err = s.webhookHandler.Reinstated(ctx, payload)
	case domain.WebhookActionTransfer, domain.WebhookActionRenew:
		logger.Infof("no handling required for %s", payload.Action)
		return metrics.OutcomeIgnored, nil
	default:
		return metrics.OutcomeUnknownEvent, fmt.Errorf("%w: %s", ErrUnknownWebhookAction, payload.Action)
	}

	if err != nil {
		return metrics.OutcomeFailed, err
	}

	return metrics.OutcomeDispatched, nil
}

func (s *MarketplaceProcessor) record(ctx context.Context, payload *domain.WebhookPayload, existing *domain.OperationRecord) {
	logger := s.loggerProvider(ctx)

	source := domain.OperationSourceWebhook
	if existing != nil && existing.Source != "" {
		source = existing.Source
	}

	record := domain.OperationRecord{
		SubscriptionID: payload.SubscriptionID,
		OperationID:    payload.OperationID,
		Action:         payload.Action,
		Status:         payload.Status,
		PlanID:         payload.PlanID,
		Quantity:       payload.Quantity,
		Source:         source,
		Processed:      payload.Status.IsTerminal(),
		RecordedAt:     s.now().UTC(),
	}

	if err := s.operationsDAL.Record(ctx, record); err != nil {
		logger.Errorf("failed to record operation %s: %v", payload.OperationID, err)
	}
}

func countWebhook(action domain.WebhookAction, status domain.OperationStatus, outcome string) {
	label := string(action)
	if !action.IsKnown() {
		label = unknownActionLabel
	}

	metrics.WebhookNotifications.WithLabelValues(label, string(status), outcome).Inc()
}
