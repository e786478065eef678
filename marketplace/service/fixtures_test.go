package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

var (
	subscriptionID = uuid.MustParse("a7bd8c5e-2a0f-4c93-9e43-0d4a5d1f2c31")
	operationID    = uuid.MustParse("5e2b37d4-8b4b-4d0e-9b1f-1c0fd5a4b2e7")
	otherID        = uuid.MustParse("c3e1b1f0-3f7e-49b8-8f2a-6f1d9d3e0a55")

	fixedNow = time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC)
)

func testLoggerProvider() logger.Provider {
	return func(ctx context.Context) logger.ILogger {
		return logger.FromContext(ctx)
	}
}

func testNow() time.Time {
	return fixedNow
}

func testSubscription(status domain.SubscriptionStatus) *domain.Subscription {
	return &domain.Subscription{
		ID:                     subscriptionID,
		Name:                   "contoso-prod",
		OfferID:                "contoso-saas",
		PublisherID:            "contoso",
		PlanID:                 "silver",
		SaasSubscriptionStatus: status,
		Purchaser: domain.AADIdentifier{
			EmailID:  "buyer@fabrikam.com",
			TenantID: "7b9f4e2a-0000-4c4c-9d9d-123456789abc",
		},
	}
}

func testPayload(action domain.WebhookAction, status domain.OperationStatus) *domain.WebhookPayload {
	return &domain.WebhookPayload{
		OperationID:    operationID,
		SubscriptionID: subscriptionID,
		PublisherID:    "contoso",
		OfferID:        "contoso-saas",
		PlanID:         "silver",
		Action:         action,
		Status:         status,
	}
}
