package auth

import "errors"

var (
	ErrNoSession         = errors.New("no session")
	ErrInvalidSession    = errors.New("invalid session")
	ErrInvalidState      = errors.New("invalid sign in state")
	ErrMissingIDToken    = errors.New("token response has no id_token")
	ErrInvalidIDToken    = errors.New("invalid id token")
	ErrInvalidAudience   = errors.New("token audience mismatch")
	ErrInvalidIssuer     = errors.New("token issuer mismatch")
	ErrInvalidNonce      = errors.New("token nonce mismatch")
	ErrMissingEmail      = errors.New("token has no email claim")
	ErrMissingBearer     = errors.New("missing bearer token")
	ErrInvalidWebhookJWT = errors.New("invalid webhook token")
)
