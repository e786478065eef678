package service

import "errors"

var (
	ErrEmptyToken             = errors.New("marketplace purchase identification token is empty")
	ErrCannotResolveToken     = errors.New("cannot resolve the purchase identification token")
	ErrNilWebhookPayload      = errors.New("webhook payload is nil")
	ErrNilProvisionModel      = errors.New("provision model is nil")
	ErrUnknownWebhookAction   = errors.New("unknown webhook action")
	ErrPendingOperation       = errors.New("subscription has an operation in progress")
	ErrActionNotPermitted     = errors.New("action is not permitted in the current subscription status")
	ErrDimensionNotConfigured = errors.New("dimension is not configured for the subscription")
	ErrInvalidSubscriptionID  = errors.New("invalid subscription id")
)
