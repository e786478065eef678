package mid

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/doitintl/hello/commandcenter/framework/web"
	"github.com/doitintl/hello/commandcenter/internal"
	"github.com/doitintl/hello/commandcenter/logger"
)

// Errors handles errors coming out of the call chain. Request errors are
// answered with their status, as the error page for html routes and as json
// otherwise. Rejected requests are logged as warnings, failures as errors.
func Errors() web.Middleware {
	f := func(before web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			v, ok := internal.DataFromContext(ctx)
			if !ok {
				return web.NewShutdownError("web value missing from context")
			}

			log := logger.FromContext(ctx)

			if err := before(ctx); err != nil {
				status := web.StatusFor(err)

				log.SetLabels(map[string]string{
					"route":  v.Route,
					"status": strconv.Itoa(status),
				})

				if status < http.StatusInternalServerError {
					log.Warningf("%s: %s rejected: %v", v.TraceID, v.Route, err)
				} else {
					log.Errorf("%s: %s failed: %v", v.TraceID, v.Route, err)
				}

				if err := web.RespondError(ctx, err); err != nil {
					return err
				}

				// If we receive the shutdown err we need to return it
				// back to the base handler to shutdown the service.
				if ok := web.IsShutdown(err); ok {
					return err
				}
			}

			return nil
		}

		return h
	}

	return f
}
