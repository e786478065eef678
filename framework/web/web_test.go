package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/doitintl/hello/commandcenter/internal"
)

func trace(name string, calls *[]string) Middleware {
	return func(next Handler) Handler {
		return func(ctx *gin.Context) error {
			*calls = append(*calls, name)
			return next(ctx)
		}
	}
}

func TestGroup_MiddlewareOrder(t *testing.T) {
	var calls []string

	app := NewTestApp(httptest.NewRecorder(), trace("app", &calls))
	group := NewGroup(app, "/subscriptions", trace("group", &calls))
	sub := group.NewSubgroup("/maillink", trace("subgroup", &calls))

	sub.Get("/activate", func(ctx *gin.Context) error {
		calls = append(calls, "handler")
		return Respond(ctx, nil, http.StatusNoContent)
	}, trace("route", &calls))

	// a sibling route must not see the subgroup middlewares
	group.Get("/list", func(ctx *gin.Context) error {
		return Respond(ctx, nil, http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subscriptions/maillink/activate", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"app", "group", "subgroup", "route", "handler"}, calls)

	calls = nil

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subscriptions/list", nil))

	assert.Equal(t, []string{"app", "group"}, calls)
}

func TestHandle_SetsRoute(t *testing.T) {
	var route string

	app := NewTestApp(httptest.NewRecorder())
	app.Get("/subscriptions/:id", func(ctx *gin.Context) error {
		v, _ := internal.DataFromContext(ctx)
		route = v.Route

		return Respond(ctx, gin.H{"ok": true}, http.StatusOK)
	})

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subscriptions/42", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/subscriptions/:id", route)
}

func TestRedirect(t *testing.T) {
	app := NewTestApp(httptest.NewRecorder())
	handler := func(ctx *gin.Context) error {
		return Redirect(ctx, "/subscriptions")
	}

	app.Get("/go", handler)
	app.Post("/go", handler)

	get := httptest.NewRecorder()
	app.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/go", nil))
	assert.Equal(t, http.StatusFound, get.Code)
	assert.Equal(t, "/subscriptions", get.Header().Get("Location"))

	post := httptest.NewRecorder()
	app.ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/go", nil))
	assert.Equal(t, http.StatusSeeOther, post.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, StatusFor(NewRequestError(ErrAuthenticationFailure, http.StatusUnauthorized)))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
	assert.ErrorIs(t, NewRequestError(ErrAuthenticationFailure, http.StatusUnauthorized), ErrAuthenticationFailure)
}
