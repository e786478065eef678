package domain

// ProvisionModel is the landing page model. It is shown to the purchaser and
// handed to the notification handlers once submitted.
type ProvisionModel struct {
	SubscriptionID           string             `json:"subscriptionId" form:"subscriptionId" binding:"required,uuid"`
	SubscriptionName         string             `json:"subscriptionName" form:"subscriptionName"`
	OfferID                  string             `json:"offerId" form:"offerId" binding:"required"`
	PlanID                   string             `json:"planId" form:"planId" binding:"required"`
	NewPlanID                string             `json:"newPlanId,omitempty" form:"newPlanId"`
	AvailablePlans           []Plan             `json:"availablePlans,omitempty" form:"-"`
	BusinessUnitContactEmail string             `json:"businessUnitContactEmail" form:"businessUnitContactEmail" binding:"required,email"`
	Email                    string             `json:"email" form:"email"`
	FullName                 string             `json:"fullName" form:"fullName"`
	PendingOperations        bool               `json:"pendingOperations" form:"pendingOperations"`
	Region                   Region             `json:"region" form:"region" binding:"omitempty,oneof=NorthAmerica WestEurope EastEurope Germany APAC"`
	SubscriptionStatus       SubscriptionStatus `json:"subscriptionStatus" form:"subscriptionStatus"`
	PurchaserEmail           string             `json:"purchaserEmail" form:"purchaserEmail"`
	PurchaserTenantID        string             `json:"purchaserTenantId" form:"purchaserTenantId"`
}

// TargetPlanID is the plan the purchaser asked for.
func (m *ProvisionModel) TargetPlanID() string {
	if m.NewPlanID != "" {
		return m.NewPlanID
	}

	return m.PlanID
}

// IsNewSubscription reports whether the subscription still waits for activation.
func (m *ProvisionModel) IsNewSubscription() bool {
	return m.SubscriptionStatus == SubscriptionStatusPendingFulfillmentStart
}

// UserProfile is the signed in user as seen by the landing page.
type UserProfile struct {
	FullName string
	Email    string
}
