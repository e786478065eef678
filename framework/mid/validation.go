package mid

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/framework/web"
)

// ValidateQueryUUID rejects requests whose query parameter is not a uuid.
func ValidateQueryUUID(paramName string) web.Middleware {
	f := func(handler web.Handler) web.Handler {
		h := func(ctx *gin.Context) error {
			if _, err := uuid.Parse(ctx.Query(paramName)); err != nil {
				return web.NewRequestError(errors.New("error: "+paramName+" must be a valid uuid"), http.StatusBadRequest)
			}

			return handler(ctx)
		}

		return h
	}

	return f
}
