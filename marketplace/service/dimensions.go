package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/logger"
	dalIface "github.com/doitintl/hello/commandcenter/marketplace/dal/iface"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	httpIface "github.com/doitintl/hello/commandcenter/marketplace/http/iface"
)

type DimensionsService struct {
	loggerProvider    logger.Provider
	fulfillment       httpIface.FulfillmentClient
	metering          httpIface.MeteringClient
	dimensionUsageDAL dalIface.IDimensionUsageTableDAL
	dimensions        []domain.Dimension
	now               func() time.Time
}

func NewDimensionsService(
	log logger.Provider,
	fulfillment httpIface.FulfillmentClient,
	metering httpIface.MeteringClient,
	dimensionUsageDAL dalIface.IDimensionUsageTableDAL,
	dimensions []domain.Dimension,
) *DimensionsService {
	return &DimensionsService{
		loggerProvider:    log,
		fulfillment:       fulfillment,
		metering:          metering,
		dimensionUsageDAL: dimensionUsageDAL,
		dimensions:        dimensions,
		now:               time.Now,
	}
}

func (s *DimensionsService) View(ctx context.Context, subscriptionID uuid.UUID) (*domain.DimensionEventViewModel, error) {
	subscription, err := s.fulfillment.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	usage, err := s.dimensionUsageDAL.GetAll(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(usage, func(i, j int) bool {
		return usage[i].SentAt.After(usage[j].SentAt)
	})

	return &domain.DimensionEventViewModel{
		SubscriptionID:         subscriptionID,
		SubscriptionName:       subscription.Name,
		OfferID:                subscription.OfferID,
		PlanID:                 subscription.PlanID,
		SubscriptionDimensions: s.applicable(subscription),
		PastUsageEvents:        usage,
	}, nil
}

// Send posts a usage event for a dimension configured for the subscription
// and records the metering api answer in the usage ledger.
func (s *DimensionsService) Send(
	ctx context.Context,
	subscriptionID uuid.UUID,
	dimension string,
	quantity int64,
	eventTime time.Time,
) (*domain.DimensionEventViewModel, error) {
	logger := s.loggerProvider(ctx)

	model, err := s.View(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	if !contains(model.SubscriptionDimensions, dimension) {
		return nil, ErrDimensionNotConfigured
	}

	result, err := s.metering.PostUsageEvent(ctx, domain.UsageEvent{
		ResourceID:         subscriptionID,
		Quantity:           quantity,
		Dimension:          dimension,
		EffectiveStartTime: eventTime.UTC(),
		PlanID:             model.PlanID,
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("usage event for dimension %s of subscription %s is %s", dimension, subscriptionID, result.Status)

	if err := s.dimensionUsageDAL.Record(ctx, subscriptionID, *result); err != nil {
		logger.Errorf("failed to record usage event %s: %v", result.UsageEventID, err)
	}

	record := &domain.DimensionUsageRecord{
		SubscriptionID:     subscriptionID,
		SentAt:             s.now().UTC(),
		UsageEventID:       result.UsageEventID,
		Status:             result.Status,
		Quantity:           result.Quantity,
		Dimension:          dimension,
		EffectiveStartTime: eventTime.UTC(),
		PlanID:             model.PlanID,
	}

	model.Result = result
	model.PastUsageEvents = append([]*domain.DimensionUsageRecord{record}, model.PastUsageEvents...)

	return model, nil
}

func (s *DimensionsService) applicable(subscription *domain.Subscription) []string {
	var ids []string

	for _, d := range s.dimensions {
		if d.AppliesTo(subscription.OfferID, subscription.PlanID) {
			ids = append(ids, d.ID)
		}
	}

	return ids
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}

	return false
}
