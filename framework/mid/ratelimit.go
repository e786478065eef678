package mid

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/doitintl/hello/commandcenter/framework/web"
	"github.com/doitintl/hello/commandcenter/logger"
)

var ErrTooManyRequests = errors.New("too many requests")

// RateLimit sheds load above the limiter's rate. The marketplace retries rejected webhook calls.
func RateLimit(limiter *rate.Limiter) web.Middleware {
	f := func(handler web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			if !limiter.Allow() {
				logger.FromContext(ctx).Warningf("rate limit exceeded for %s %s", ctx.Request.Method, ctx.Request.URL.Path)
				ctx.Header("Retry-After", "1")

				return web.NewRequestError(ErrTooManyRequests, http.StatusTooManyRequests)
			}

			return handler(ctx)
		}

		return h
	}

	return f
}
