package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doitintl/hello/commandcenter/framework/web"
	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	"github.com/doitintl/hello/commandcenter/marketplace/service"
	"github.com/doitintl/hello/commandcenter/marketplace/service/iface"
)

type Webhook struct {
	loggerProvider logger.Provider
	processor      iface.IMarketplaceProcessor
}

func NewWebhook(log logger.Provider, processor iface.IMarketplaceProcessor) *Webhook {
	return &Webhook{
		loggerProvider: log,
		processor:      processor,
	}
}

// Handle receives the marketplace webhook notifications. A 5xx answer makes the marketplace retry.
func (h *Webhook) Handle(ctx *gin.Context) error {
	log := h.loggerProvider(ctx)

	var payload domain.WebhookPayload

	if err := ctx.ShouldBindJSON(&payload); err != nil {
		log.Warningf("error unmarshalling webhook payload: %v", err)
		return web.NewRequestError(ErrInvalidPayload, http.StatusBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	if err := h.processor.ProcessWebhookNotification(ctx, &payload); err != nil {
		if errors.Is(err, service.ErrUnknownWebhookAction) {
			return web.NewRequestError(err, http.StatusBadRequest)
		}

		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, nil, http.StatusOK)
}
