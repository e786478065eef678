package handlers

import "errors"

var (
	ErrEmptyToken          = errors.New("token URL parameter cannot be empty")
	ErrCannotResolve       = errors.New("cannot resolve subscription")
	ErrInvalidPayload      = errors.New("invalid payload")
	ErrUnknownAction       = errors.New("unknown subscription action")
	ErrInvalidSubscription = errors.New("subscriptionId must be a valid uuid")
	ErrInvalidOperation    = errors.New("operationId must be a valid uuid")
	ErrSignInFailed        = errors.New("sign in failed")
)
