package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/doitintl/hello/commandcenter/logger"
	dalIface "github.com/doitintl/hello/commandcenter/marketplace/dal/iface"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	marketplaceHttp "github.com/doitintl/hello/commandcenter/marketplace/http"
	httpIface "github.com/doitintl/hello/commandcenter/marketplace/http/iface"
)

const ledgerConcurrency = 8

type SubscriptionsService struct {
	loggerProvider   logger.Provider
	fulfillment      httpIface.FulfillmentClient
	operationsDAL    dalIface.IOperationsTableDAL
	showUnsubscribed bool
	now              func() time.Time
}

func NewSubscriptionsService(
	log logger.Provider,
	fulfillment httpIface.FulfillmentClient,
	operationsDAL dalIface.IOperationsTableDAL,
	showUnsubscribed bool,
) *SubscriptionsService {
	return &SubscriptionsService{
		loggerProvider:   log,
		fulfillment:      fulfillment,
		operationsDAL:    operationsDAL,
		showUnsubscribed: showUnsubscribed,
		now:              time.Now,
	}
}

// List returns the subscriptions page rows, enriched with their ledger counts.
func (s *SubscriptionsService) List(ctx context.Context) ([]domain.SubscriptionViewModel, error) {
	subscriptions, err := s.fulfillment.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}

	models := make([]domain.SubscriptionViewModel, 0, len(subscriptions))

	for _, subscription := range subscriptions {
		if subscription.SaasSubscriptionStatus == domain.SubscriptionStatusUnsubscribed && !s.showUnsubscribed {
			continue
		}

		models = append(models, domain.NewSubscriptionViewModel(subscription))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ledgerConcurrency)

	for i := range models {
		model := &models[i]

		g.Go(func() error {
			records, err := s.operationsDAL.GetAll(gctx, model.ID)
			if err != nil {
				return err
			}

			model.OperationCount = len(records)
			model.ExistingOperations = len(records) > 0

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(models, func(i, j int) bool {
		return models[i].Name > models[j].Name
	})

	return models, nil
}

// Operations returns the live state of every operation recorded for the subscription.
func (s *SubscriptionsService) Operations(ctx context.Context, subscriptionID uuid.UUID) (*domain.OperationsViewModel, error) {
	logger := s.loggerProvider(ctx)

	subscription, err := s.fulfillment.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	records, err := s.operationsDAL.GetAll(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	operations := make([]*domain.Operation, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ledgerConcurrency)

	for i, record := range records {
		i, record := i, record

		g.Go(func() error {
			op, err := s.fulfillment.GetOperation(gctx, subscriptionID, record.OperationID)
			if err != nil {
				if errors.Is(err, marketplaceHttp.ErrNotFound) {
					logger.Warningf("operation %s is recorded but unknown to the marketplace", record.OperationID)
					return nil
				}

				return err
			}

			operations[i] = op

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	model := &domain.OperationsViewModel{
		SubscriptionID:   subscriptionID,
		SubscriptionName: subscription.Name,
		Operations:       make([]domain.Operation, 0, len(operations)),
	}

	for _, op := range operations {
		if op != nil {
			model.Operations = append(model.Operations, *op)
		}
	}

	return model, nil
}

func (s *SubscriptionsService) UpdateView(ctx context.Context, subscriptionID uuid.UUID) (*domain.UpdateSubscriptionViewModel, error) {
	subscription, err := s.fulfillment.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	if !domain.CanPerform(subscription.SaasSubscriptionStatus, domain.SubscriptionActionUpdate) {
		return nil, ErrActionNotPermitted
	}

	plans, err := s.fulfillment.ListAvailablePlans(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	operations, err := s.fulfillment.ListOperations(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	return &domain.UpdateSubscriptionViewModel{
		SubscriptionID:    subscriptionID,
		SubscriptionName:  subscription.Name,
		CurrentPlan:       subscription.PlanID,
		AvailablePlans:    plans,
		PendingOperations: domain.AnyInProgress(operations),
	}, nil
}

func (s *SubscriptionsService) Unsubscribe(ctx context.Context, subscriptionID uuid.UUID) error {
	subscription, err := s.fulfillment.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return err
	}

	if !domain.CanPerform(subscription.SaasSubscriptionStatus, domain.SubscriptionActionUnsubscribe) {
		return ErrActionNotPermitted
	}

	operationID, err := s.fulfillment.DeleteSubscription(ctx, subscriptionID)
	if err != nil {
		return err
	}

	s.recordPortalOperation(ctx, domain.OperationRecord{
		SubscriptionID: subscriptionID,
		OperationID:    operationID,
		Action:         domain.WebhookActionUnsubscribe,
		PlanID:         subscription.PlanID,
	})

	return nil
}

func (s *SubscriptionsService) UpdatePlan(ctx context.Context, subscriptionID uuid.UUID, newPlan string) error {
	operations, err := s.fulfillment.ListOperations(ctx, subscriptionID)
	if err != nil {
		return err
	}

	if domain.AnyInProgress(operations) {
		return ErrPendingOperation
	}

	subscription, err := s.fulfillment.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return err
	}

	if !domain.CanPerform(subscription.SaasSubscriptionStatus, domain.SubscriptionActionUpdate) {
		return ErrActionNotPermitted
	}

	return s.changePlan(ctx, subscriptionID, newPlan)
}

// UpdateFromMailLink applies a plan change the operations team confirmed from an email.
func (s *SubscriptionsService) UpdateFromMailLink(ctx context.Context, subscriptionID uuid.UUID, planID string) error {
	return s.changePlan(ctx, subscriptionID, planID)
}

func (s *SubscriptionsService) changePlan(ctx context.Context, subscriptionID uuid.UUID, planID string) error {
	operationID, err := s.fulfillment.UpdateSubscriptionPlan(ctx, subscriptionID, planID)
	if err != nil {
		return err
	}

	s.recordPortalOperation(ctx, domain.OperationRecord{
		SubscriptionID: subscriptionID,
		OperationID:    operationID,
		Action:         domain.WebhookActionChangePlan,
		PlanID:         planID,
	})

	return nil
}

// recordPortalOperation only logs ledger failures, the marketplace already accepted the operation.
func (s *SubscriptionsService) recordPortalOperation(ctx context.Context, record domain.OperationRecord) {
	record.Status = domain.OperationStatusInProgress
	record.Source = domain.OperationSourcePortal
	record.RecordedAt = s.now().UTC()

	if err := s.operationsDAL.Record(ctx, record); err != nil {
		s.loggerProvider(ctx).Errorf("failed to record operation %s: %v", record.OperationID, err)
	}
}
