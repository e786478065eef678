package mid

import (
	"github.com/gin-gonic/gin"

	"github.com/doitintl/hello/commandcenter/framework/web"
	"github.com/doitintl/hello/commandcenter/internal"
)

// HTML marks the routes of browser pages, their errors are rendered as the error page.
func HTML() web.Middleware {
	f := func(handler web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			if v, ok := internal.DataFromContext(ctx); ok {
				v.HTML = true
			}

			return handler(ctx)
		}

		return h
	}

	return f
}
