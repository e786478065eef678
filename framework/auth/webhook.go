package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// WebhookTokenValidator checks the bearer token azure ad issues to marketplace webhook calls.
type WebhookTokenValidator struct {
	audience string
	issuer   string
	keyfunc  jwt.Keyfunc
}

func NewWebhookTokenValidator(tenantID, clientID string, keys jwt.Keyfunc) *WebhookTokenValidator {
	return &WebhookTokenValidator{
		audience: clientID,
		issuer:   fmt.Sprintf("https://sts.windows.net/%s/", tenantID),
		keyfunc:  keys,
	}
}

// Validate verifies an Authorization header value.
func (v *WebhookTokenValidator) Validate(authorization string) error {
	raw, ok := bearerToken(authorization)
	if !ok {
		return ErrMissingBearer
	}

	var claims jwt.RegisteredClaims

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))

	token, err := parser.ParseWithClaims(raw, &claims, v.keyfunc)
	if err != nil || !token.Valid {
		return fmt.Errorf("%w: %v", ErrInvalidWebhookJWT, err)
	}

	if !claims.VerifyAudience(v.audience, true) {
		return ErrInvalidAudience
	}

	if !claims.VerifyIssuer(v.issuer, true) {
		return ErrInvalidIssuer
	}

	return nil
}

func bearerToken(authorization string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorization), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
