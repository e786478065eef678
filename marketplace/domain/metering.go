package domain

import (
	"time"

	"github.com/google/uuid"
)

// UsageEvent reports metered usage of a dimension.
type UsageEvent struct {
	ResourceID         uuid.UUID `json:"resourceId"`
	Quantity           int64     `json:"quantity"`
	Dimension          string    `json:"dimension"`
	EffectiveStartTime time.Time `json:"effectiveStartTime"`
	PlanID             string    `json:"planId"`
}

// UsageEventResult is the metering api answer for a usage event.
type UsageEventResult struct {
	UsageEventID       string           `json:"usageEventId"`
	Status             UsageEventStatus `json:"status"`
	MessageTime        Timestamp        `json:"messageTime"`
	ResourceID         uuid.UUID        `json:"resourceId"`
	Quantity           int64            `json:"quantity"`
	Dimension          string           `json:"dimension"`
	EffectiveStartTime Timestamp        `json:"effectiveStartTime"`
	PlanID             string           `json:"planId"`
}

// DimensionUsageRecord is a row of the dimension usage ledger.
type DimensionUsageRecord struct {
	SubscriptionID     uuid.UUID
	SentAt             time.Time
	UsageEventID       string
	Status             UsageEventStatus
	Quantity           int64
	Dimension          string
	EffectiveStartTime time.Time
	PlanID             string
}

// Dimension is a metered billing dimension and the offers/plans it belongs to.
type Dimension struct {
	ID       string
	PlanIDs  []string
	OfferIDs []string
}

func (d Dimension) AppliesTo(offerID, planID string) bool {
	return contains(d.OfferIDs, offerID) && contains(d.PlanIDs, planID)
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}

	return false
}
