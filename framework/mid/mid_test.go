package mid

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/doitintl/hello/commandcenter/common"
	"github.com/doitintl/hello/commandcenter/framework/auth"
	"github.com/doitintl/hello/commandcenter/framework/web"
)

type fakeSessions struct {
	session *auth.SessionClaims
}

func (f fakeSessions) Read(*http.Request) (*auth.SessionClaims, error) {
	if f.session == nil {
		return nil, auth.ErrNoSession
	}

	return f.session, nil
}

type fakeValidator struct {
	err error
}

func (f fakeValidator) Validate(string) error {
	return f.err
}

func ok(ctx *gin.Context) error {
	return web.Respond(ctx, gin.H{"email": ctx.GetString(common.CtxKeys.Email)}, http.StatusOK)
}

func serve(app *web.App, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	return w
}

func TestSessionRequired(t *testing.T) {
	tests := []struct {
		name         string
		session      *auth.SessionClaims
		wantedStatus int
		wantedLoc    string
	}{
		{
			name:         "anonymous user is sent to sign in",
			wantedStatus: http.StatusFound,
			wantedLoc:    "/account/signin?returnUrl=" + url.QueryEscape("/landingpage?token=abc"),
		},
		{
			name:         "signed in user",
			session:      &auth.SessionClaims{Email: "jo@contoso.com", CSRF: "csrf"},
			wantedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := web.NewTestApp(httptest.NewRecorder(), Errors())
			app.Get("/landingpage", ok, SessionRequired(fakeSessions{session: tt.session}))

			w := serve(app, httptest.NewRequest(http.MethodGet, "/landingpage?token=abc", nil))

			assert.Equal(t, tt.wantedStatus, w.Code)
			assert.Equal(t, tt.wantedLoc, w.Header().Get("Location"))
		})
	}
}

func TestAdminRequired(t *testing.T) {
	tests := []struct {
		name         string
		email        string
		wantedStatus int
	}{
		{name: "same domain", email: "ops@Contoso.com", wantedStatus: http.StatusOK},
		{name: "other domain", email: "jo@fabrikam.com", wantedStatus: http.StatusFound},
		{name: "no email", email: "", wantedStatus: http.StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := web.NewTestApp(httptest.NewRecorder(), Errors())
			app.Get("/subscriptions", ok,
				SessionRequired(fakeSessions{session: &auth.SessionClaims{Email: tt.email}}),
				AdminRequired("admin@contoso.com"),
			)

			w := serve(app, httptest.NewRequest(http.MethodGet, "/subscriptions", nil))

			assert.Equal(t, tt.wantedStatus, w.Code)

			if tt.wantedStatus == http.StatusFound {
				assert.Equal(t, NotAuthorizedPath, w.Header().Get("Location"))
			}
		})
	}
}

func TestCSRFProtected(t *testing.T) {
	tests := []struct {
		name         string
		form         url.Values
		header       string
		wantedStatus int
	}{
		{name: "form token", form: url.Values{"csrfToken": {"secret"}}, wantedStatus: http.StatusOK},
		{name: "header token", header: "secret", wantedStatus: http.StatusOK},
		{name: "wrong token", form: url.Values{"csrfToken": {"guess"}}, wantedStatus: http.StatusForbidden},
		{name: "missing token", wantedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := web.NewTestApp(httptest.NewRecorder(), Errors())
			app.Post("/landingpage", ok,
				SessionRequired(fakeSessions{session: &auth.SessionClaims{Email: "jo@contoso.com", CSRF: "secret"}}),
				CSRFProtected(),
			)

			r := httptest.NewRequest(http.MethodPost, "/landingpage", strings.NewReader(tt.form.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			if tt.header != "" {
				r.Header.Set(csrfHeader, tt.header)
			}

			w := serve(app, r)
			assert.Equal(t, tt.wantedStatus, w.Code)
		})
	}
}

func TestWebhookTokenRequired(t *testing.T) {
	tests := []struct {
		name         string
		validator    TokenValidator
		wantedStatus int
	}{
		{name: "disabled", validator: nil, wantedStatus: http.StatusOK},
		{name: "valid", validator: fakeValidator{}, wantedStatus: http.StatusOK},
		{name: "invalid", validator: fakeValidator{err: auth.ErrInvalidIssuer}, wantedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := web.NewTestApp(httptest.NewRecorder(), Errors())
			app.Post("/api/webhook", ok, WebhookTokenRequired(tt.validator))

			w := serve(app, httptest.NewRequest(http.MethodPost, "/api/webhook", nil))
			assert.Equal(t, tt.wantedStatus, w.Code)
		})
	}
}

func TestWebhookBodyLogger_RestoresBody(t *testing.T) {
	const payload = `{"id":"74dfb4db-c193-4891-827d-eb05fbdc64b0","action":"Suspend"}`

	var got string

	app := web.NewTestApp(httptest.NewRecorder(), Errors(), WebhookBodyLogger())
	app.Post("/api/webhook", func(ctx *gin.Context) error {
		body, err := io.ReadAll(ctx.Request.Body)
		require.NoError(t, err)

		got = string(body)

		return web.Respond(ctx, nil, http.StatusOK)
	})

	w := serve(app, httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(payload)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, got)
}

func TestRateLimit(t *testing.T) {
	app := web.NewTestApp(httptest.NewRecorder(), Errors())
	app.Post("/api/webhook", ok, RateLimit(rate.NewLimiter(rate.Every(1<<62), 1)))

	first := serve(app, httptest.NewRequest(http.MethodPost, "/api/webhook", nil))
	second := serve(app, httptest.NewRequest(http.MethodPost, "/api/webhook", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}

func TestErrors_RendersHTMLForPages(t *testing.T) {
	failing := func(ctx *gin.Context) error {
		return web.NewRequestError(errors.New("subscription not found"), http.StatusNotFound)
	}

	app := web.NewTestApp(httptest.NewRecorder(), Errors())
	app.Get("/api/thing", failing)
	app.Get("/page", failing, HTML())

	api := serve(app, httptest.NewRequest(http.MethodGet, "/api/thing", nil))
	assert.Equal(t, http.StatusNotFound, api.Code)
	assert.JSONEq(t, `{"error":"subscription not found"}`, api.Body.String())

	page := serve(app, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.Equal(t, http.StatusNotFound, page.Code)
	assert.Contains(t, page.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, page.Body.String(), "subscription not found")
}

func TestErrors_HidesUnexpectedFailures(t *testing.T) {
	app := web.NewTestApp(httptest.NewRecorder(), Errors())
	app.Post("/api/webhook", func(ctx *gin.Context) error {
		return errors.New("table storage: connection reset")
	})

	w := serve(app, httptest.NewRequest(http.MethodPost, "/api/webhook", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestPanics(t *testing.T) {
	app := web.NewTestApp(httptest.NewRecorder(), Errors(), Panics())
	app.Get("/boom", func(*gin.Context) error {
		panic("boom")
	})

	w := serve(app, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestValidateQueryUUID(t *testing.T) {
	app := web.NewTestApp(httptest.NewRecorder(), Errors())
	app.Get("/subscriptions/operations", ok, ValidateQueryUUID("subscriptionId"))

	bad := serve(app, httptest.NewRequest(http.MethodGet, "/subscriptions/operations?subscriptionId=nope", nil))
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	good := serve(app, httptest.NewRequest(http.MethodGet, "/subscriptions/operations?subscriptionId=37f9dea2-4345-438f-b0bd-03d40d28c7e0", nil))
	assert.Equal(t, http.StatusOK, good.Code)
}
