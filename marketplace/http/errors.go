package http

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                 = errors.New("marketplace resource not found")
	ErrUnauthorized             = errors.New("marketplace api rejected the credentials")
	ErrMissingOperationLocation = errors.New("marketplace response has no operation location")
	ErrEmptyMarketplaceToken    = errors.New("marketplace token is empty")
)

// APIError is returned for unexpected marketplace api responses.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("marketplace %s failed with status %d: %s", e.Operation, e.StatusCode, e.Body)
}
