package domain

import (
	"time"

	"github.com/google/uuid"
)

// Operation is an asynchronous change to a subscription, as known to the marketplace.
type Operation struct {
	ID               uuid.UUID       `json:"id"`
	ActivityID       string          `json:"activityId"`
	SubscriptionID   uuid.UUID       `json:"subscriptionId"`
	OfferID          string          `json:"offerId"`
	PublisherID      string          `json:"publisherId"`
	PlanID           string          `json:"planId"`
	Quantity         int             `json:"quantity,omitempty"`
	Action           WebhookAction   `json:"action"`
	TimeStamp        Timestamp       `json:"timeStamp"`
	Status           OperationStatus `json:"status"`
	ResourceLocation string          `json:"resourceLocation,omitempty"`
	ErrorStatusCode  string          `json:"errorStatusCode,omitempty"`
	ErrorMessage     string          `json:"errorMessage,omitempty"`
}

// OperationUpdate reports the publisher side outcome of an operation.
type OperationUpdate struct {
	PlanID   string                `json:"planId,omitempty"`
	Quantity int                   `json:"quantity,omitempty"`
	Status   UpdateOperationStatus `json:"status"`
}

// OperationRecord is a row of the operations ledger.
type OperationRecord struct {
	SubscriptionID uuid.UUID
	OperationID    uuid.UUID
	Action         WebhookAction
	Status         OperationStatus
	PlanID         string
	Quantity       int
	Source         OperationSource
	// Processed is set once a terminal status was dispatched.
	Processed  bool
	RecordedAt time.Time
}

// AnyInProgress reports whether one of the operations is still running.
func AnyInProgress(operations []Operation) bool {
	for _, op := range operations {
		if op.Status == OperationStatusInProgress {
			return true
		}
	}

	return false
}
