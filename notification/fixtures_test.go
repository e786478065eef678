package notification

import (
	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

const testBaseURL = "https://cc.contoso.com/"

var (
	testSubscriptionID = uuid.MustParse("37f9dea2-4345-438f-b0bd-03d40d28c7e0")
	testOperationID    = uuid.MustParse("74dfb4db-c193-4891-827d-eb05fbdc64b0")
)

func testSubscription() *domain.Subscription {
	return &domain.Subscription{
		ID:                     testSubscriptionID,
		Name:                   "Contoso SaaS",
		OfferID:                "contoso-saas",
		PlanID:                 "gold",
		SaasSubscriptionStatus: domain.SubscriptionStatusSubscribed,
		Purchaser: domain.AADIdentifier{
			EmailID:  "buyer@fabrikam.com",
			TenantID: "c3b4f6a0-1a1e-4b8b-9c55-58a5f5b7a111",
		},
	}
}

func testPayload(action domain.WebhookAction, status domain.OperationStatus) *domain.WebhookPayload {
	return &domain.WebhookPayload{
		OperationID:    testOperationID,
		SubscriptionID: testSubscriptionID,
		PublisherID:    "contoso",
		OfferID:        "contoso-saas",
		PlanID:         "gold",
		Quantity:       3,
		Action:         action,
		Status:         status,
	}
}

func testProvisionModel() *domain.ProvisionModel {
	return &domain.ProvisionModel{
		SubscriptionID:           testSubscriptionID.String(),
		SubscriptionName:         "Contoso SaaS",
		OfferID:                  "contoso-saas",
		PlanID:                   "silver",
		BusinessUnitContactEmail: "bu@fabrikam.com",
		Region:                   domain.RegionWestEurope,
		SubscriptionStatus:       domain.SubscriptionStatusPendingFulfillmentStart,
		FullName:                 "Jo Buyer",
		Email:                    "jo@fabrikam.com",
	}
}
