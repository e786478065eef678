package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	httpIface "github.com/doitintl/hello/commandcenter/marketplace/http/iface"
	"github.com/doitintl/hello/commandcenter/marketplace/service/iface"
	notificationIface "github.com/doitintl/hello/commandcenter/notification/iface"
)

type LandingService struct {
	loggerProvider logger.Provider
	processor      iface.IMarketplaceProcessor
	fulfillment    httpIface.FulfillmentClient
	notifications  notificationIface.Handler
}

func NewLandingService(
	log logger.Provider,
	processor iface.IMarketplaceProcessor,
	fulfillment httpIface.FulfillmentClient,
	notifications notificationIface.Handler,
) *LandingService {
	return &LandingService{
		loggerProvider: log,
		processor:      processor,
		fulfillment:    fulfillment,
		notifications:  notifications,
	}
}

// BuildProvisionModel resolves the purchase token into the landing page model.
func (s *LandingService) BuildProvisionModel(ctx context.Context, token string, user domain.UserProfile) (*domain.ProvisionModel, error) {
	resolved, err := s.processor.GetSubscriptionFromPurchaseIdentificationToken(ctx, token)
	if err != nil {
		return nil, err
	}

	plans, err := s.fulfillment.ListAvailablePlans(ctx, resolved.ID)
	if err != nil {
		return nil, err
	}

	operations, err := s.fulfillment.ListOperations(ctx, resolved.ID)
	if err != nil {
		return nil, err
	}

	model := &domain.ProvisionModel{
		SubscriptionID:           resolved.ID.String(),
		SubscriptionName:         resolved.SubscriptionName,
		OfferID:                  resolved.OfferID,
		PlanID:                   resolved.PlanID,
		AvailablePlans:           plans,
		BusinessUnitContactEmail: user.Email,
		Email:                    user.Email,
		FullName:                 user.FullName,
		PendingOperations:        domain.AnyInProgress(operations),
		Region:                   domain.RegionNorthAmerica,
		SubscriptionStatus:       domain.SubscriptionStatusNotStarted,
	}

	if sub := resolved.Subscription; sub != nil {
		model.SubscriptionStatus = sub.SaasSubscriptionStatus
		model.PurchaserEmail = sub.Purchaser.EmailID
		model.PurchaserTenantID = sub.Purchaser.TenantID
	}

	return model, nil
}

// Submit hands the landing page submission to the operations team. The
// subscription status is read back from the marketplace instead of the form.
func (s *LandingService) Submit(ctx context.Context, model *domain.ProvisionModel) error {
	if model == nil {
		return ErrNilProvisionModel
	}

	subscriptionID, err := uuid.Parse(model.SubscriptionID)
	if err != nil {
		return ErrInvalidSubscriptionID
	}

	subscription, err := s.fulfillment.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return err
	}

	model.SubscriptionStatus = subscription.SaasSubscriptionStatus

	if model.IsNewSubscription() {
		s.loggerProvider(ctx).Infof("new subscription %s submitted", subscriptionID)
		return s.notifications.ProcessNewSubscription(ctx, model)
	}

	s.loggerProvider(ctx).Infof("plan change to %s submitted for subscription %s", model.TargetPlanID(), subscriptionID)

	return s.notifications.ProcessChangePlan(ctx, model)
}
