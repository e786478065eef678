package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionViewModel is a row of the subscriptions page.
type SubscriptionViewModel struct {
	Subscription
	NextActions        []SubscriptionAction
	PendingOperations  bool
	PurchaserTenantID  string
	PurchaserEmail     string
	ExistingOperations bool
	OperationCount     int
}

func NewSubscriptionViewModel(s Subscription) SubscriptionViewModel {
	return SubscriptionViewModel{
		Subscription:      s,
		NextActions:       NextActions(s.SaasSubscriptionStatus),
		PurchaserTenantID: s.Purchaser.TenantID,
		PurchaserEmail:    s.Purchaser.EmailID,
	}
}

type OperationsViewModel struct {
	SubscriptionID   uuid.UUID
	SubscriptionName string
	Operations       []Operation
}

type UpdateSubscriptionViewModel struct {
	SubscriptionID    uuid.UUID
	SubscriptionName  string
	CurrentPlan       string
	NewPlan           string
	AvailablePlans    []Plan
	PendingOperations bool
}

// UpdateSubscriptionForm is posted from the update page.
type UpdateSubscriptionForm struct {
	SubscriptionID string `form:"subscriptionId" binding:"required,uuid"`
	NewPlan        string `form:"newPlan" binding:"required"`
}

// SubscriptionActionQuery selects a portal action for a subscription.
type SubscriptionActionQuery struct {
	SubscriptionID     string `form:"subscriptionId" binding:"required,uuid"`
	SubscriptionAction string `form:"subscriptionAction" binding:"required"`
}

// NotificationModel carries the operation details embedded in mail links.
type NotificationModel struct {
	SubscriptionID string `form:"subscriptionId" binding:"required,uuid"`
	OperationID    string `form:"operationId" binding:"omitempty,uuid"`
	PublisherID    string `form:"publisherId"`
	OfferID        string `form:"offerId"`
	PlanID         string `form:"planId"`
	Quantity       int    `form:"quantity" binding:"min=0"`
}

type ActivateActionViewModel struct {
	SubscriptionID uuid.UUID
	PlanID         string
}

// OperationUpdateViewModel is shown after an operation was acknowledged from a mail link.
type OperationUpdateViewModel struct {
	SubscriptionID uuid.UUID
	OperationID    uuid.UUID
	PlanID         string
	Quantity       int
}

type DimensionEventViewModel struct {
	SubscriptionID         uuid.UUID
	SubscriptionName       string
	OfferID                string
	PlanID                 string
	SubscriptionDimensions []string
	PastUsageEvents        []*DimensionUsageRecord
	Result                 *UsageEventResult
}

// DimensionEventForm is posted from the dimensions page.
type DimensionEventForm struct {
	SubscriptionID    string    `form:"subscriptionId" binding:"required,uuid"`
	SelectedDimension string    `form:"selectedDimension" binding:"required"`
	Quantity          int64     `form:"quantity" binding:"required,min=1"`
	EventTime         time.Time `form:"eventTime" time_format:"2006-01-02T15:04" time_utc:"1" binding:"required"`
}
