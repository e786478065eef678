package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/doitintl/hello/commandcenter/framework/auth"
	"github.com/doitintl/hello/commandcenter/framework/web"
	"github.com/doitintl/hello/commandcenter/logger"
)

// Authenticator runs the azure ad authorization code flow.
type Authenticator interface {
	AuthCodeURL(state, nonce string) string
	Exchange(ctx context.Context, code, nonce string) (*auth.IDTokenClaims, error)
}

// SessionStore keeps the signed in user and the pending sign in state.
type SessionStore interface {
	Issue(ctx *gin.Context, user auth.User) (*auth.SessionClaims, error)
	Clear(ctx *gin.Context)
	IssueState(ctx *gin.Context, returnURL string) (*auth.StateClaims, error)
	ConsumeState(ctx *gin.Context, state string) (*auth.StateClaims, error)
}

type Account struct {
	loggerProvider logger.Provider
	authenticator  Authenticator
	sessions       SessionStore
}

func NewAccount(log logger.Provider, authenticator Authenticator, sessions SessionStore) *Account {
	return &Account{
		loggerProvider: log,
		authenticator:  authenticator,
		sessions:       sessions,
	}
}

func (h *Account) SignIn(ctx *gin.Context) error {
	state, err := h.sessions.IssueState(ctx, safeReturnURL(ctx.Query("returnUrl")))
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Redirect(ctx, h.authenticator.AuthCodeURL(state.State, state.Nonce))
}

// Callback completes the sign in started by SignIn.
func (h *Account) Callback(ctx *gin.Context) error {
	log := h.loggerProvider(ctx)

	if e := ctx.Query("error"); e != "" {
		log.Warningf("sign in rejected: %s %s", e, ctx.Query("error_description"))
		return web.NewRequestError(ErrSignInFailed, http.StatusUnauthorized)
	}

	state, err := h.sessions.ConsumeState(ctx, ctx.Query("state"))
	if err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	claims, err := h.authenticator.Exchange(ctx, ctx.Query("code"), state.Nonce)
	if err != nil {
		log.Warningf("sign in failed: %v", err)
		return web.NewRequestError(ErrSignInFailed, http.StatusUnauthorized)
	}

	user, err := claims.User()
	if err != nil {
		return web.NewRequestError(err, http.StatusUnauthorized)
	}

	if _, err := h.sessions.Issue(ctx, user); err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	log.Infof("user %s signed in", user.Email)

	return web.Redirect(ctx, safeReturnURL(state.ReturnURL))
}

func (h *Account) SignOut(ctx *gin.Context) error {
	h.sessions.Clear(ctx)
	return web.Redirect(ctx, "/")
}

// safeReturnURL only allows local paths, so sign in cannot redirect to another site.
func safeReturnURL(returnURL string) string {
	if !strings.HasPrefix(returnURL, "/") || strings.HasPrefix(returnURL, "//") || strings.HasPrefix(returnURL, "/\\") {
		return subscriptionsPath
	}

	return returnURL
}
