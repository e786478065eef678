package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doitintl/hello/commandcenter/framework/web"
	"github.com/doitintl/hello/commandcenter/internal"
	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	"github.com/doitintl/hello/commandcenter/marketplace/service"
	"github.com/doitintl/hello/commandcenter/marketplace/service/iface"
)

type Subscriptions struct {
	loggerProvider logger.Provider
	service        iface.ISubscriptionsService
}

func NewSubscriptions(log logger.Provider, service iface.ISubscriptionsService) *Subscriptions {
	return &Subscriptions{
		loggerProvider: log,
		service:        service,
	}
}

func (h *Subscriptions) Index(ctx *gin.Context) error {
	models, err := h.service.List(ctx)
	if err != nil {
		return requestError(err)
	}

	return web.RespondHTML(ctx, subscriptionsPage, newPage(ctx, models), http.StatusOK)
}

func (h *Subscriptions) Operations(ctx *gin.Context) error {
	subscriptionID, err := parseSubscriptionID(ctx.Query("subscriptionId"))
	if err != nil {
		return err
	}

	model, err := h.service.Operations(ctx, subscriptionID)
	if err != nil {
		return requestError(err)
	}

	return web.RespondHTML(ctx, operationsPage, newPage(ctx, model), http.StatusOK)
}

// Action runs a portal action from the subscriptions page.
func (h *Subscriptions) Action(ctx *gin.Context) error {
	var query domain.SubscriptionActionQuery

	if err := ctx.ShouldBindQuery(&query); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	subscriptionID, err := parseSubscriptionID(query.SubscriptionID)
	if err != nil {
		return err
	}

	action, ok := domain.ParseSubscriptionAction(query.SubscriptionAction)
	if !ok {
		return web.NewRequestError(ErrUnknownAction, http.StatusBadRequest)
	}

	h.loggerProvider(ctx).Infof("subscription action %s for %s", action, subscriptionID)

	switch action {
	case domain.SubscriptionActionUpdate:
		model, err := h.service.UpdateView(ctx, subscriptionID)
		if err != nil {
			return requestError(err)
		}

		return web.RespondHTML(ctx, updateSubscriptionPage, newPage(ctx, model), http.StatusOK)
	case domain.SubscriptionActionUnsubscribe:
		if err := h.service.Unsubscribe(ctx, subscriptionID); err != nil {
			return requestError(err)
		}

		return web.Redirect(ctx, subscriptionsPath)
	default:
		return web.RespondHTML(ctx, subscriptionActionPage, newPage(ctx, domain.ActivateActionViewModel{
			SubscriptionID: subscriptionID,
		}), http.StatusOK)
	}
}

func (h *Subscriptions) Update(ctx *gin.Context) error {
	var form domain.UpdateSubscriptionForm

	if err := ctx.ShouldBind(&form); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	subscriptionID, err := parseSubscriptionID(form.SubscriptionID)
	if err != nil {
		return err
	}

	if err := h.service.UpdatePlan(ctx, subscriptionID, form.NewPlan); err != nil {
		if !errors.Is(err, service.ErrPendingOperation) {
			return requestError(err)
		}

		h.loggerProvider(ctx).Infof("plan of subscription %s not changed, an operation is pending", subscriptionID)
	}

	return web.Redirect(ctx, subscriptionsPath)
}

func (h *Subscriptions) NotAuthorized(ctx *gin.Context) error {
	return web.RespondHTML(ctx, notAuthorizedPage, newPage(ctx, nil), http.StatusForbidden)
}

func (h *Subscriptions) Error(ctx *gin.Context) error {
	var traceID string
	if v, ok := internal.DataFromContext(ctx); ok {
		traceID = v.TraceID
	}

	return web.RespondHTML(ctx, web.ErrorPage, web.ErrorViewModel{
		TraceID: traceID,
		Message: "An error occurred while processing your request.",
	}, http.StatusOK)
}
