package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/common"
	"github.com/doitintl/hello/commandcenter/framework/web"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	marketplaceHttp "github.com/doitintl/hello/commandcenter/marketplace/http"
	"github.com/doitintl/hello/commandcenter/marketplace/service"
)

const (
	subscriptionsPage       = "subscriptions.html"
	operationsPage          = "operations.html"
	subscriptionActionPage  = "subscription_action.html"
	updateSubscriptionPage  = "update_subscription.html"
	dimensionsPage          = "dimensions.html"
	notAuthorizedPage       = "not_authorized.html"
	landingPage             = "landing.html"
	landingSuccessPage      = "landing_success.html"
	mailActivatePage        = "mail_activate.html"
	mailUpdatePage          = "mail_update.html"
	mailOperationUpdatePage = "mail_operation_update.html"

	subscriptionsPath  = "/subscriptions"
	landingSuccessPath = "/landingpage/success"
)

// page is the view model of every html page.
type page struct {
	User      domain.UserProfile
	CSRFToken string
	Model     interface{}
}

func newPage(ctx *gin.Context, model interface{}) page {
	return page{
		User:      currentUser(ctx),
		CSRFToken: ctx.GetString(common.CtxKeys.CSRFToken),
		Model:     model,
	}
}

func currentUser(ctx *gin.Context) domain.UserProfile {
	return domain.UserProfile{
		FullName: ctx.GetString(common.CtxKeys.Name),
		Email:    ctx.GetString(common.CtxKeys.Email),
	}
}

func parseSubscriptionID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, web.NewRequestError(ErrInvalidSubscription, http.StatusBadRequest)
	}

	return id, nil
}

// requestError maps service and marketplace errors to request errors.
func requestError(err error) error {
	switch {
	case errors.Is(err, marketplaceHttp.ErrNotFound):
		return web.NewRequestError(err, http.StatusNotFound)
	case errors.Is(err, service.ErrActionNotPermitted),
		errors.Is(err, service.ErrPendingOperation):
		return web.NewRequestError(err, http.StatusConflict)
	case errors.Is(err, service.ErrDimensionNotConfigured),
		errors.Is(err, service.ErrInvalidSubscriptionID),
		errors.Is(err, domain.ErrInvalidWebhookPayload):
		return web.NewRequestError(err, http.StatusBadRequest)
	default:
		return web.NewRequestError(err, http.StatusInternalServerError)
	}
}
