package domain

import "strings"

// SubscriptionStatus is the saas subscription status reported by the fulfillment api.
type SubscriptionStatus string

const (
	SubscriptionStatusNotStarted              SubscriptionStatus = "NotStarted"
	SubscriptionStatusPendingFulfillmentStart SubscriptionStatus = "PendingFulfillmentStart"
	SubscriptionStatusSubscribed              SubscriptionStatus = "Subscribed"
	SubscriptionStatusSuspended               SubscriptionStatus = "Suspended"
	SubscriptionStatusUnsubscribed            SubscriptionStatus = "Unsubscribed"
)

var subscriptionStatuses = []SubscriptionStatus{
	SubscriptionStatusNotStarted,
	SubscriptionStatusPendingFulfillmentStart,
	SubscriptionStatusSubscribed,
	SubscriptionStatusSuspended,
	SubscriptionStatusUnsubscribed,
}

func (s *SubscriptionStatus) UnmarshalText(b []byte) error {
	*s = normalize(string(b), subscriptionStatuses)
	return nil
}

// OperationStatus is the status of an asynchronous marketplace operation.
type OperationStatus string

const (
	OperationStatusNotStarted OperationStatus = "NotStarted"
	OperationStatusInProgress OperationStatus = "InProgress"
	OperationStatusSucceeded  OperationStatus = "Succeeded"
	OperationStatusFailed     OperationStatus = "Failed"
	OperationStatusConflict   OperationStatus = "Conflict"
)

var operationStatuses = []OperationStatus{
	OperationStatusNotStarted,
	OperationStatusInProgress,
	OperationStatusSucceeded,
	OperationStatusFailed,
	OperationStatusConflict,
}

func (s *OperationStatus) UnmarshalText(b []byte) error {
	*s = normalize(string(b), operationStatuses)
	return nil
}

// IsTerminal reports whether the operation will not change anymore.
func (s OperationStatus) IsTerminal() bool {
	switch s {
	case OperationStatusSucceeded, OperationStatusFailed, OperationStatusConflict:
		return true
	default:
		return false
	}
}

// IsFailure reports whether the operation failed or conflicted.
func (s OperationStatus) IsFailure() bool {
	return s == OperationStatusFailed || s == OperationStatusConflict
}

// UpdateOperationStatus is the outcome a publisher reports for an operation.
type UpdateOperationStatus string

const (
	UpdateOperationStatusSuccess UpdateOperationStatus = "Success"
	UpdateOperationStatusFailure UpdateOperationStatus = "Failure"
)

// WebhookAction is the action carried by a webhook notification.
type WebhookAction string

const (
	WebhookActionUnsubscribe    WebhookAction = "Unsubscribe"
	WebhookActionChangePlan     WebhookAction = "ChangePlan"
	WebhookActionChangeQuantity WebhookAction = "ChangeQuantity"
	WebhookActionSuspend        WebhookAction = "Suspend"
	WebhookActionReinstate      WebhookAction = "Reinstate"
	WebhookActionTransfer       WebhookAction = "Transfer"
	WebhookActionRenew          WebhookAction = "Renew"
)

var webhookActions = []WebhookAction{
	WebhookActionUnsubscribe,
	WebhookActionChangePlan,
	WebhookActionChangeQuantity,
	WebhookActionSuspend,
	WebhookActionReinstate,
	WebhookActionTransfer,
	WebhookActionRenew,
}

func (a *WebhookAction) UnmarshalText(b []byte) error {
	*a = normalize(string(b), webhookActions)
	return nil
}

// IsKnown reports whether the action is one the marketplace documents.
func (a WebhookAction) IsKnown() bool {
	for _, known := range webhookActions {
		if a == known {
			return true
		}
	}

	return false
}

// SubscriptionAction is an action an admin can take from the portal.
type SubscriptionAction string

const (
	SubscriptionActionActivate    SubscriptionAction = "Activate"
	SubscriptionActionUpdate      SubscriptionAction = "Update"
	SubscriptionActionAck         SubscriptionAction = "Ack"
	SubscriptionActionUnsubscribe SubscriptionAction = "Unsubscribe"
)

var subscriptionActions = []SubscriptionAction{
	SubscriptionActionActivate,
	SubscriptionActionUpdate,
	SubscriptionActionAck,
	SubscriptionActionUnsubscribe,
}

// ParseSubscriptionAction parses a portal action, case insensitive.
func ParseSubscriptionAction(value string) (SubscriptionAction, bool) {
	a := normalize(value, subscriptionActions)
	for _, known := range subscriptionActions {
		if a == known {
			return a, true
		}
	}

	return a, false
}

// Region is the deployment region chosen on the landing page.
type Region string

const (
	RegionNorthAmerica Region = "NorthAmerica"
	RegionWestEurope   Region = "WestEurope"
	RegionEastEurope   Region = "EastEurope"
	RegionGermany      Region = "Germany"
	RegionAPAC         Region = "APAC"
)

// Regions lists the selectable regions, the first one is the default.
var Regions = []Region{RegionNorthAmerica, RegionWestEurope, RegionEastEurope, RegionGermany, RegionAPAC}

// UsageEventStatus is the metering api outcome of a usage event.
type UsageEventStatus string

const (
	UsageEventStatusAccepted              UsageEventStatus = "Accepted"
	UsageEventStatusExpired               UsageEventStatus = "Expired"
	UsageEventStatusDuplicate             UsageEventStatus = "Duplicate"
	UsageEventStatusError                 UsageEventStatus = "Error"
	UsageEventStatusResourceNotFound      UsageEventStatus = "ResourceNotFound"
	UsageEventStatusResourceNotAuthorized UsageEventStatus = "ResourceNotAuthorized"
	UsageEventStatusInvalidDimension      UsageEventStatus = "InvalidDimension"
	UsageEventStatusBadArgument           UsageEventStatus = "BadArgument"
)

// OperationSource tells who started an operation recorded in the ledger.
type OperationSource string

const (
	OperationSourcePortal  OperationSource = "portal"
	OperationSourceWebhook OperationSource = "webhook"
)

func normalize[T ~string](value string, known []T) T {
	for _, k := range known {
		if strings.EqualFold(string(k), value) {
			return k
		}
	}

	return T(value)
}
