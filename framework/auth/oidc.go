package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

const (
	// AzureADKeysURL serves the signing keys of every azure ad tenant.
	AzureADKeysURL = "https://login.microsoftonline.com/common/discovery/v2.0/keys"

	jwksRefreshInterval = time.Hour
)

// multi tenant authorities, the issuer then names the user's tenant.
var multiTenantAuthorities = map[string]bool{
	"common":        true,
	"organizations": true,
	"consumers":     true,
}

type OIDCConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// IDTokenClaims are the azure ad v2 id_token claims used for sign in.
type IDTokenClaims struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	PreferredUsername string `json:"preferred_username"`
	TenantID          string `json:"tid"`
	Nonce             string `json:"nonce"`
	jwt.RegisteredClaims
}

// User resolves the signed in user, falling back to preferred_username for the email.
func (c *IDTokenClaims) User() (User, error) {
	email := c.Email
	if email == "" {
		email = c.PreferredUsername
	}

	if email == "" {
		return User{}, ErrMissingEmail
	}

	return User{Name: c.Name, Email: strings.ToLower(email)}, nil
}

// codeExchanger is satisfied by oauth2.Config.
type codeExchanger interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// OIDC signs users in with the azure ad authorization code flow.
type OIDC struct {
	tenantID string
	clientID string
	oauth    codeExchanger
	keyfunc  jwt.Keyfunc
}

// NewJWKS fetches the azure ad signing keys and refreshes them in the background.
func NewJWKS() (*keyfunc.JWKS, error) {
	return keyfunc.Get(AzureADKeysURL, keyfunc.Options{
		RefreshInterval:   jwksRefreshInterval,
		RefreshUnknownKID: true,
	})
}

func NewOIDC(cfg OIDCConfig, keys jwt.Keyfunc) *OIDC {
	return &OIDC{
		tenantID: cfg.TenantID,
		clientID: cfg.ClientID,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     microsoft.AzureADEndpoint(cfg.TenantID),
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
		},
		keyfunc: keys,
	}
}

// AuthCodeURL is where the user is sent to sign in.
func (o *OIDC) AuthCodeURL(state, nonce string) string {
	return o.oauth.AuthCodeURL(state,
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("response_mode", "query"),
	)
}

// Exchange redeems the authorization code and verifies the returned id_token.
func (o *OIDC) Exchange(ctx context.Context, code, nonce string) (*IDTokenClaims, error) {
	token, err := o.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	raw, ok := token.Extra("id_token").(string)
	if !ok || raw == "" {
		return nil, ErrMissingIDToken
	}

	return o.VerifyIDToken(raw, nonce)
}

func (o *OIDC) VerifyIDToken(raw, nonce string) (*IDTokenClaims, error) {
	var claims IDTokenClaims

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))

	token, err := parser.ParseWithClaims(raw, &claims, o.keyfunc)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	if !claims.VerifyAudience(o.clientID, true) {
		return nil, ErrInvalidAudience
	}

	if !o.validIssuer(&claims) {
		return nil, ErrInvalidIssuer
	}

	if claims.Nonce != nonce {
		return nil, ErrInvalidNonce
	}

	return &claims, nil
}

func (o *OIDC) validIssuer(claims *IDTokenClaims) bool {
	tenant := o.tenantID
	if multiTenantAuthorities[strings.ToLower(tenant)] {
		tenant = claims.TenantID
	} else if claims.TenantID != "" && !strings.EqualFold(claims.TenantID, tenant) {
		return false
	}

	if tenant == "" {
		return false
	}

	return claims.Issuer == fmt.Sprintf("https://login.microsoftonline.com/%s/v2.0", tenant)
}
