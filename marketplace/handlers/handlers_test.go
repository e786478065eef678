package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/doitintl/hello/commandcenter/common"
	"github.com/doitintl/hello/commandcenter/framework/mid"
	"github.com/doitintl/hello/commandcenter/framework/web"
	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	marketplaceHttp "github.com/doitintl/hello/commandcenter/marketplace/http"
	"github.com/doitintl/hello/commandcenter/marketplace/service"
	"github.com/doitintl/hello/commandcenter/marketplace/service/mocks"
)

var (
	subscriptionID = uuid.MustParse("a7bd8c5e-2a0f-4c93-9e43-0d4a5d1f2c31")
	operationID    = uuid.MustParse("5e2b37d4-8b4b-4d0e-9b1f-1c0fd5a4b2e7")
)

const (
	userEmail = "ada@contoso.com"
	userName  = "Ada Admin"
	csrfToken = "csrf-token"
)

func signedIn(handler web.Handler) web.Handler {
	return func(ctx *gin.Context) error {
		ctx.Set(common.CtxKeys.Email, userEmail)
		ctx.Set(common.CtxKeys.Name, userName)
		ctx.Set(common.CtxKeys.CSRFToken, csrfToken)

		return handler(ctx)
	}
}

func newTestApp() *web.App {
	return web.NewTestApp(httptest.NewRecorder(), mid.Errors(), signedIn)
}

func serve(app *web.App, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	return w
}

func postForm(target string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return r
}

func TestSubscriptions_Index(t *testing.T) {
	s := &mocks.ISubscriptionsService{}
	h := NewSubscriptions(logger.FromContext, s)

	app := newTestApp()
	app.Get("/subscriptions", h.Index, mid.HTML())

	sub := domain.Subscription{
		ID:                     subscriptionID,
		Name:                   "contoso-prod",
		OfferID:                "contoso-saas",
		PlanID:                 "silver",
		SaasSubscriptionStatus: domain.SubscriptionStatusSubscribed,
	}

	s.On("List", mock.Anything).Return([]domain.SubscriptionViewModel{domain.NewSubscriptionViewModel(sub)}, nil).Once()

	w := serve(app, httptest.NewRequest(http.MethodGet, "/subscriptions", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "contoso-prod")
	assert.Contains(t, w.Body.String(), "subscriptionAction=Unsubscribe")
	s.AssertExpectations(t)
}

func TestSubscriptions_Action(t *testing.T) {
	type fields struct {
		service *mocks.ISubscriptionsService
	}

	tests := []struct {
		name         string
		query        string
		on           func(*fields)
		wantedStatus int
		wantedBody   string
		wantedLoc    string
	}{
		{
			name:  "update shows the plans",
			query: "subscriptionId=" + subscriptionID.String() + "&subscriptionAction=update",
			on: func(f *fields) {
				f.service.On("UpdateView", mock.Anything, subscriptionID).Return(&domain.UpdateSubscriptionViewModel{
					SubscriptionID:   subscriptionID,
					SubscriptionName: "contoso-prod",
					CurrentPlan:      "silver",
					AvailablePlans:   []domain.Plan{{PlanID: "silver", DisplayName: "Silver"}, {PlanID: "gold", DisplayName: "Gold"}},
				}, nil).Once()
			},
			wantedStatus: http.StatusOK,
			wantedBody:   "Gold",
		},
		{
			name:  "unsubscribe redirects to the list",
			query: "subscriptionId=" + subscriptionID.String() + "&subscriptionAction=Unsubscribe",
			on: func(f *fields) {
				f.service.On("Unsubscribe", mock.Anything, subscriptionID).Return(nil).Once()
			},
			wantedStatus: http.StatusFound,
			wantedLoc:    "/subscriptions",
		},
		{
			name:  "unsubscribe not permitted",
			query: "subscriptionId=" + subscriptionID.String() + "&subscriptionAction=Unsubscribe",
			on: func(f *fields) {
				f.service.On("Unsubscribe", mock.Anything, subscriptionID).Return(service.ErrActionNotPermitted).Once()
			},
			wantedStatus: http.StatusConflict,
		},
		{
			name:         "ack needs no action",
			query:        "subscriptionId=" + subscriptionID.String() + "&subscriptionAction=Ack",
			wantedStatus: http.StatusOK,
			wantedBody:   "No action is needed",
		},
		{
			name:         "unknown action",
			query:        "subscriptionId=" + subscriptionID.String() + "&subscriptionAction=Delete",
			wantedStatus: http.StatusBadRequest,
		},
		{
			name:         "invalid subscription id",
			query:        "subscriptionId=42&subscriptionAction=Ack",
			wantedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fields{service: &mocks.ISubscriptionsService{}}

			if tt.on != nil {
				tt.on(&f)
			}

			app := newTestApp()
			app.Get("/subscriptions/action", NewSubscriptions(logger.FromContext, f.service).Action, mid.HTML())

			w := serve(app, httptest.NewRequest(http.MethodGet, "/subscriptions/action?"+tt.query, nil))

			assert.Equal(t, tt.wantedStatus, w.Code)

			if tt.wantedBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantedBody)
			}

			if tt.wantedLoc != "" {
				assert.Equal(t, tt.wantedLoc, w.Header().Get("Location"))
			}

			f.service.AssertExpectations(t)
		})
	}
}

func TestSubscriptions_Update(t *testing.T) {
	s := &mocks.ISubscriptionsService{}

	app := newTestApp()
	app.Post("/subscriptions/update", NewSubscriptions(logger.FromContext, s).Update, mid.HTML())

	s.On("UpdatePlan", mock.Anything, subscriptionID, "gold").Return(nil).Once()

	w := serve(app, postForm("/subscriptions/update", url.Values{
		"subscriptionId": {subscriptionID.String()},
		"newPlan":        {"gold"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/subscriptions", w.Header().Get("Location"))

	w = serve(app, postForm("/subscriptions/update", url.Values{"subscriptionId": {subscriptionID.String()}}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.On("UpdatePlan", mock.Anything, subscriptionID, "platinum").Return(service.ErrPendingOperation).Once()

	w = serve(app, postForm("/subscriptions/update", url.Values{
		"subscriptionId": {subscriptionID.String()},
		"newPlan":        {"platinum"},
	}))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/subscriptions", w.Header().Get("Location"))

	s.On("UpdatePlan", mock.Anything, subscriptionID, "bronze").Return(service.ErrActionNotPermitted).Once()

	w = serve(app, postForm("/subscriptions/update", url.Values{
		"subscriptionId": {subscriptionID.String()},
		"newPlan":        {"bronze"},
	}))
	assert.Equal(t, http.StatusConflict, w.Code)

	s.AssertExpectations(t)
}

func TestSubscriptions_Operations(t *testing.T) {
	s := &mocks.ISubscriptionsService{}

	app := newTestApp()
	app.Get("/subscriptions/operations", NewSubscriptions(logger.FromContext, s).Operations, mid.HTML())

	s.On("Operations", mock.Anything, subscriptionID).Return(&domain.OperationsViewModel{
		SubscriptionID:   subscriptionID,
		SubscriptionName: "contoso-prod",
		Operations: []domain.Operation{
			{ID: operationID, Action: domain.WebhookActionChangePlan, Status: domain.OperationStatusSucceeded, PlanID: "gold"},
		},
	}, nil).Once()

	w := serve(app, httptest.NewRequest(http.MethodGet, "/subscriptions/operations?subscriptionId="+subscriptionID.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), operationID.String())

	s.On("Operations", mock.Anything, subscriptionID).Return(nil, marketplaceHttp.ErrNotFound).Once()

	w = serve(app, httptest.NewRequest(http.MethodGet, "/subscriptions/operations?subscriptionId="+subscriptionID.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestDimensions(t *testing.T) {
	s := &mocks.IDimensionsService{}
	h := NewDimensions(logger.FromContext, s)

	app := newTestApp()
	app.Get("/subscriptions/dimensions", h.Index, mid.HTML())
	app.Post("/subscriptions/dimensions", h.Send, mid.HTML())

	view := &domain.DimensionEventViewModel{
		SubscriptionID:         subscriptionID,
		SubscriptionName:       "contoso-prod",
		OfferID:                "contoso-saas",
		PlanID:                 "silver",
		SubscriptionDimensions: []string{"messages"},
	}

	sent := *view
	sent.Result = &domain.UsageEventResult{UsageEventID: "a1b2c3", Status: domain.UsageEventStatusAccepted, Dimension: "messages", Quantity: 5}

	eventTime := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	s.On("View", mock.Anything, subscriptionID).Return(view, nil).Once()
	s.On("Send", mock.Anything, subscriptionID, "messages", int64(5), mock.MatchedBy(eventTime.Equal)).Return(&sent, nil).Once()
	s.On("Send", mock.Anything, subscriptionID, "seats", int64(5), mock.Anything).Return(nil, service.ErrDimensionNotConfigured).Once()

	w := serve(app, httptest.NewRequest(http.MethodGet, "/subscriptions/dimensions?subscriptionId="+subscriptionID.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "messages")

	form := url.Values{
		"subscriptionId":    {subscriptionID.String()},
		"selectedDimension": {"messages"},
		"quantity":          {"5"},
		"eventTime":         {"2024-03-04T09:00"},
	}

	w = serve(app, postForm("/subscriptions/dimensions", form))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a1b2c3")

	form.Set("selectedDimension", "seats")

	w = serve(app, postForm("/subscriptions/dimensions", form))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.AssertExpectations(t)
}

func TestLandingPage_Index(t *testing.T) {
	user := domain.UserProfile{FullName: userName, Email: userEmail}

	tests := []struct {
		name         string
		query        string
		on           func(*mocks.ILandingService)
		wantedStatus int
		wantedBody   string
	}{
		{
			name:         "empty token",
			wantedStatus: http.StatusOK,
			wantedBody:   ErrEmptyToken.Error(),
		},
		{
			name:  "unresolvable token",
			query: "?token=bad",
			on: func(s *mocks.ILandingService) {
				s.On("BuildProvisionModel", mock.Anything, "bad", user).Return(nil, service.ErrCannotResolveToken).Once()
			},
			wantedStatus: http.StatusOK,
			wantedBody:   ErrCannotResolve.Error(),
		},
		{
			name:  "resolved subscription",
			query: "?token=good",
			on: func(s *mocks.ILandingService) {
				s.On("BuildProvisionModel", mock.Anything, "good", user).Return(&domain.ProvisionModel{
					SubscriptionID:   subscriptionID.String(),
					SubscriptionName: "contoso-prod",
					OfferID:          "contoso-saas",
					PlanID:           "silver",
					Region:           domain.RegionNorthAmerica,
				}, nil).Once()
			},
			wantedStatus: http.StatusOK,
			wantedBody:   "contoso-prod",
		},
		{
			name:  "marketplace failure",
			query: "?token=good",
			on: func(s *mocks.ILandingService) {
				s.On("BuildProvisionModel", mock.Anything, "good", user).Return(nil, errors.New("boom")).Once()
			},
			wantedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &mocks.ILandingService{}

			if tt.on != nil {
				tt.on(s)
			}

			app := newTestApp()
			app.Get("/landingpage", NewLandingPage(logger.FromContext, s).Index, mid.HTML())

			w := serve(app, httptest.NewRequest(http.MethodGet, "/landingpage"+tt.query, nil))

			assert.Equal(t, tt.wantedStatus, w.Code)

			if tt.wantedBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantedBody)
			}

			s.AssertExpectations(t)
		})
	}
}

func TestLandingPage_Submit(t *testing.T) {
	s := &mocks.ILandingService{}

	app := newTestApp()
	app.Post("/landingpage", NewLandingPage(logger.FromContext, s).Submit, mid.HTML())

	s.On("Submit", mock.Anything, mock.MatchedBy(func(m *domain.ProvisionModel) bool {
		return m.SubscriptionID == subscriptionID.String() &&
			m.NewPlanID == "gold" &&
			m.Region == domain.RegionNorthAmerica &&
			m.Email == userEmail
	})).Return(nil).Once()

	form := url.Values{
		"subscriptionId":           {subscriptionID.String()},
		"offerId":                  {"contoso-saas"},
		"planId":                   {"silver"},
		"newPlanId":                {"gold"},
		"businessUnitContactEmail": {"bu@contoso.com"},
	}

	w := serve(app, postForm("/landingpage", form))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/landingpage/success", w.Header().Get("Location"))

	form.Set("businessUnitContactEmail", "not-an-email")

	w = serve(app, postForm("/landingpage", form))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.AssertExpectations(t)
}

func TestMailLink(t *testing.T) {
	processor := &mocks.IMarketplaceProcessor{}
	subscriptions := &mocks.ISubscriptionsService{}
	h := NewMailLink(logger.FromContext, processor, subscriptions)

	app := newTestApp()
	app.Get("/maillink/activate", h.Activate, mid.HTML())
	app.Get("/maillink/reinstate", h.OperationAck, mid.HTML())
	app.Get("/maillink/update", h.Update, mid.HTML())

	processor.On("ActivateSubscription", mock.Anything, subscriptionID, "gold").Return(nil).Once()
	processor.On("OperationAck", mock.Anything, subscriptionID, operationID, "gold", 3).Return(nil).Once()
	subscriptions.On("UpdateFromMailLink", mock.Anything, subscriptionID, "platinum").Return(nil).Once()

	w := serve(app, httptest.NewRequest(http.MethodGet, "/maillink/activate?subscriptionId="+subscriptionID.String()+"&planId=gold", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Subscription activated")

	w = serve(app, httptest.NewRequest(http.MethodGet, "/maillink/reinstate?subscriptionId="+subscriptionID.String()+
		"&operationId="+operationID.String()+"&planId=gold&quantity=3&publisherId=contoso&offerId=contoso-saas", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), operationID.String())

	w = serve(app, httptest.NewRequest(http.MethodGet, "/maillink/reinstate?subscriptionId="+subscriptionID.String(), nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(app, httptest.NewRequest(http.MethodGet, "/maillink/update?subscriptionId="+subscriptionID.String()+"&planId=platinum", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "platinum")

	processor.AssertExpectations(t)
	subscriptions.AssertExpectations(t)
}

func TestWebhook_Handle(t *testing.T) {
	valid := `{"id":"` + operationID.String() + `","subscriptionId":"` + subscriptionID.String() + `","action":"ChangePlan","status":"Succeeded","planId":"gold"}`

	tests := []struct {
		name         string
		body         string
		on           func(*mocks.IMarketplaceProcessor)
		wantedStatus int
	}{
		{
			name: "processed",
			body: valid,
			on: func(p *mocks.IMarketplaceProcessor) {
				p.On("ProcessWebhookNotification", mock.Anything, mock.MatchedBy(func(payload *domain.WebhookPayload) bool {
					return payload.OperationID == operationID && payload.Action == domain.WebhookActionChangePlan
				})).Return(nil).Once()
			},
			wantedStatus: http.StatusOK,
		},
		{
			name:         "malformed json",
			body:         `{"id":`,
			wantedStatus: http.StatusBadRequest,
		},
		{
			name:         "missing operation id",
			body:         `{"subscriptionId":"` + subscriptionID.String() + `","action":"Suspend"}`,
			wantedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown action",
			body: valid,
			on: func(p *mocks.IMarketplaceProcessor) {
				p.On("ProcessWebhookNotification", mock.Anything, mock.Anything).Return(service.ErrUnknownWebhookAction).Once()
			},
			wantedStatus: http.StatusBadRequest,
		},
		{
			name: "processing failure is retried by the marketplace",
			body: valid,
			on: func(p *mocks.IMarketplaceProcessor) {
				p.On("ProcessWebhookNotification", mock.Anything, mock.Anything).Return(errors.New("table unavailable")).Once()
			},
			wantedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &mocks.IMarketplaceProcessor{}

			if tt.on != nil {
				tt.on(p)
			}

			app := web.NewTestApp(httptest.NewRecorder(), mid.Errors())
			app.Post("/api/webhook", NewWebhook(logger.FromContext, p).Handle)

			r := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")

			w := serve(app, r)

			assert.Equal(t, tt.wantedStatus, w.Code)
			p.AssertExpectations(t)
		})
	}
}

func TestSafeReturnURL(t *testing.T) {
	assert.Equal(t, "/landingpage?token=abc", safeReturnURL("/landingpage?token=abc"))
	assert.Equal(t, "/subscriptions", safeReturnURL("https://evil.example.com"))
	assert.Equal(t, "/subscriptions", safeReturnURL("//evil.example.com"))
	assert.Equal(t, "/subscriptions", safeReturnURL(""))
}
