package mid

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/doitintl/hello/commandcenter/common"
	"github.com/doitintl/hello/commandcenter/framework/auth"
	"github.com/doitintl/hello/commandcenter/framework/web"
	"github.com/doitintl/hello/commandcenter/logger"
)

const (
	SignInPath        = "/account/signin"
	NotAuthorizedPath = "/subscriptions/notauthorized"

	csrfFormField = "csrfToken"
	csrfHeader    = "X-CSRF-Token"
)

var ErrInvalidCSRFToken = errors.New("invalid csrf token")

// SessionReader reads the signed in user of a request.
type SessionReader interface {
	Read(r *http.Request) (*auth.SessionClaims, error)
}

// SessionRequired sends anonymous users to the sign in page and sets the user in the context.
func SessionRequired(sessions SessionReader) web.Middleware {
	f := func(handler web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			session, err := sessions.Read(ctx.Request)
			if err != nil {
				signIn := SignInPath + "?returnUrl=" + url.QueryEscape(ctx.Request.URL.RequestURI())
				return web.Redirect(ctx, signIn)
			}

			ctx.Set(common.CtxKeys.Email, session.Email)
			ctx.Set(common.CtxKeys.Name, session.Name)
			ctx.Set(common.CtxKeys.CSRFToken, session.CSRF)

			logger.FromContext(ctx).SetLabel("email", session.Email)

			return handler(ctx)
		}

		return h
	}

	return f
}

// AdminRequired only lets users of the command center admin's email domain through.
// It must run after SessionRequired.
func AdminRequired(adminEmail string) web.Middleware {
	f := func(handler web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			email := ctx.GetString(common.CtxKeys.Email)

			if !common.SameEmailDomain(email, adminEmail) {
				logger.FromContext(ctx).Warningf("user %q is not a command center admin", email)
				return web.Redirect(ctx, NotAuthorizedPath)
			}

			return handler(ctx)
		}

		return h
	}

	return f
}

// CSRFProtected checks that state changing requests carry the session's csrf token.
// It must run after SessionRequired.
func CSRFProtected() web.Middleware {
	f := func(handler web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			switch ctx.Request.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return handler(ctx)
			}

			expected := ctx.GetString(common.CtxKeys.CSRFToken)

			got := ctx.GetHeader(csrfHeader)
			if got == "" {
				got = ctx.PostForm(csrfFormField)
			}

			if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(got)) != 1 {
				return web.NewRequestError(ErrInvalidCSRFToken, http.StatusForbidden)
			}

			return handler(ctx)
		}

		return h
	}

	return f
}
