package mid

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/doitintl/hello/commandcenter/framework/web"
	"github.com/doitintl/hello/commandcenter/internal"
	"github.com/doitintl/hello/commandcenter/metrics"
)

// Metrics counts requests by route pattern and status.
func Metrics() web.Middleware {
	f := func(before web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			v, ok := internal.DataFromContext(ctx)
			if !ok {
				return web.NewShutdownError("web value missing from context")
			}

			err := before(ctx)

			status := v.StatusCode
			if status == 0 {
				status = ctx.Writer.Status()
			}

			if err != nil && !web.IsShutdown(err) {
				status = web.StatusFor(err)
			}

			if status == 0 {
				status = http.StatusOK
			}

			metrics.HTTPRequests.WithLabelValues(v.Route, ctx.Request.Method, strconv.Itoa(status)).Inc()
			metrics.HTTPLatency.WithLabelValues(v.Route, ctx.Request.Method).Observe(time.Since(v.Now).Seconds())

			return err
		}

		return h
	}

	return f
}
