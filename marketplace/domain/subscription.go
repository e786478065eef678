package domain

import "github.com/google/uuid"

// AADIdentifier identifies a purchaser or beneficiary tenant user.
type AADIdentifier struct {
	EmailID  string `json:"emailId"`
	ObjectID string `json:"objectId"`
	TenantID string `json:"tenantId"`
	PUID     string `json:"puid,omitempty"`
}

type Term struct {
	StartDate Timestamp `json:"startDate"`
	EndDate   Timestamp `json:"endDate"`
	TermUnit  string    `json:"termUnit"`
}

// Subscription is a saas subscription as returned by the fulfillment api.
type Subscription struct {
	ID                        uuid.UUID          `json:"id"`
	PublisherID               string             `json:"publisherId"`
	OfferID                   string             `json:"offerId"`
	Name                      string             `json:"name"`
	SaasSubscriptionStatus    SubscriptionStatus `json:"saasSubscriptionStatus"`
	Beneficiary               AADIdentifier      `json:"beneficiary"`
	Purchaser                 AADIdentifier      `json:"purchaser"`
	PlanID                    string             `json:"planId"`
	Quantity                  int                `json:"quantity,omitempty"`
	Term                      Term               `json:"term"`
	AutoRenew                 bool               `json:"autoRenew"`
	IsTest                    bool               `json:"isTest"`
	IsFreeTrial               bool               `json:"isFreeTrial"`
	AllowedCustomerOperations []string           `json:"allowedCustomerOperations,omitempty"`
	SessionMode               string             `json:"sessionMode,omitempty"`
	SandboxType               string             `json:"sandboxType,omitempty"`
}

// ResolvedSubscription is the result of resolving a purchase identification token.
type ResolvedSubscription struct {
	ID               uuid.UUID     `json:"id"`
	SubscriptionName string        `json:"subscriptionName"`
	OfferID          string        `json:"offerId"`
	PlanID           string        `json:"planId"`
	Quantity         int           `json:"quantity,omitempty"`
	Subscription     *Subscription `json:"subscription"`
}

type Plan struct {
	PlanID        string `json:"planId"`
	DisplayName   string `json:"displayName"`
	IsPrivate     bool   `json:"isPrivate"`
	Description   string `json:"description"`
	HasFreeTrials bool   `json:"hasFreeTrials"`
	IsStopSell    bool   `json:"isStopSell"`
}
