package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doitintl/hello/commandcenter/internal"
)

// ErrorPage is the template rendered for failed browser requests.
const ErrorPage = "error.html"

// ErrorViewModel is passed to the error page.
type ErrorViewModel struct {
	TraceID string
	Status  int
	Message string
}

// Respond converts a Go value to JSON and sends it to the client with the corresponded status code.
func Respond(ctx *gin.Context, data interface{}, statusCode int) error {
	setStatus(ctx, statusCode)

	// If there is nothing to marshal then set status code and return.
	if data == nil || statusCode == http.StatusNoContent {
		ctx.Status(statusCode)
		return nil
	}

	ctx.JSON(statusCode, data)

	return nil
}

// RespondHTML renders the named page with the given view model.
func RespondHTML(ctx *gin.Context, name string, data interface{}, statusCode int) error {
	setStatus(ctx, statusCode)
	ctx.HTML(statusCode, name, data)

	return nil
}

// Redirect sends a 302 (or 303 for POST requests) to the given location.
func Redirect(ctx *gin.Context, location string) error {
	status := http.StatusFound
	if ctx.Request.Method == http.MethodPost {
		status = http.StatusSeeOther
	}

	setStatus(ctx, status)
	ctx.Redirect(status, location)

	return nil
}

// RespondError sends an error response back to the client, as JSON for api
// requests and as the error page for browser requests.
func RespondError(ctx *gin.Context, err error) error {
	status := http.StatusInternalServerError
	message := http.StatusText(http.StatusInternalServerError)

	if webErr, ok := err.(*Error); ok {
		status = webErr.Status
		message = webErr.Err.Error()
	}

	if v, ok := internal.DataFromContext(ctx); ok && v.HTML {
		return RespondHTML(ctx, ErrorPage, ErrorViewModel{
			TraceID: v.TraceID,
			Status:  status,
			Message: message,
		}, status)
	}

	return Respond(ctx, ErrorResponse{Error: message}, status)
}

func setStatus(ctx *gin.Context, statusCode int) {
	if v, ok := internal.DataFromContext(ctx); ok {
		v.StatusCode = statusCode
	}
}
