package mid

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/doitintl/hello/commandcenter/framework/web"
	"github.com/doitintl/hello/commandcenter/logger"
)

const maxLoggedBodyBytes = 64 << 10

// TokenValidator validates the Authorization header of a request.
type TokenValidator interface {
	Validate(authorization string) error
}

// WebhookTokenRequired rejects webhook calls without a valid azure ad bearer token.
// A nil validator lets every call through.
func WebhookTokenRequired(validator TokenValidator) web.Middleware {
	f := func(handler web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			if validator == nil {
				return handler(ctx)
			}

			if err := validator.Validate(ctx.GetHeader("Authorization")); err != nil {
				logger.FromContext(ctx).Warningf("webhook token rejected: %s", err)
				return web.NewRequestError(web.ErrAuthenticationFailure, http.StatusUnauthorized)
			}

			return handler(ctx)
		}

		return h
	}

	return f
}

// WebhookBodyLogger logs the raw body of webhook calls and restores it for the handler.
func WebhookBodyLogger() web.Middleware {
	f := func(handler web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			if !strings.Contains(strings.ToLower(ctx.Request.URL.Path), "webhook") || ctx.Request.Body == nil {
				return handler(ctx)
			}

			body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxLoggedBodyBytes+1))
			if err != nil {
				return web.NewRequestError(err, http.StatusBadRequest)
			}

			rest := ctx.Request.Body
			ctx.Request.Body = struct {
				io.Reader
				io.Closer
			}{io.MultiReader(bytes.NewReader(body), rest), rest}

			logged := body
			if len(logged) > maxLoggedBodyBytes {
				logged = logged[:maxLoggedBodyBytes]
			}

			logger.FromContext(ctx).Infof("webhook body: %s", logged)

			return handler(ctx)
		}

		return h
	}

	return f
}
