package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doitintl/hello/commandcenter/framework/web"
	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	"github.com/doitintl/hello/commandcenter/marketplace/service/iface"
)

type Dimensions struct {
	loggerProvider logger.Provider
	service        iface.IDimensionsService
}

func NewDimensions(log logger.Provider, service iface.IDimensionsService) *Dimensions {
	return &Dimensions{
		loggerProvider: log,
		service:        service,
	}
}

func (h *Dimensions) Index(ctx *gin.Context) error {
	subscriptionID, err := parseSubscriptionID(ctx.Query("subscriptionId"))
	if err != nil {
		return err
	}

	model, err := h.service.View(ctx, subscriptionID)
	if err != nil {
		return requestError(err)
	}

	return web.RespondHTML(ctx, dimensionsPage, newPage(ctx, model), http.StatusOK)
}

// Send posts a usage event and shows the metering api answer.
func (h *Dimensions) Send(ctx *gin.Context) error {
	var form domain.DimensionEventForm

	if err := ctx.ShouldBind(&form); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	subscriptionID, err := parseSubscriptionID(form.SubscriptionID)
	if err != nil {
		return err
	}

	model, err := h.service.Send(ctx, subscriptionID, form.SelectedDimension, form.Quantity, form.EventTime)
	if err != nil {
		return requestError(err)
	}

	return web.RespondHTML(ctx, dimensionsPage, newPage(ctx, model), http.StatusOK)
}
