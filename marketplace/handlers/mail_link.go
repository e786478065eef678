package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/framework/web"
	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	"github.com/doitintl/hello/commandcenter/marketplace/service/iface"
)

// MailLink serves the links embedded in the operations team emails.
type MailLink struct {
	loggerProvider logger.Provider
	processor      iface.IMarketplaceProcessor
	subscriptions  iface.ISubscriptionsService
}

func NewMailLink(log logger.Provider, processor iface.IMarketplaceProcessor, subscriptions iface.ISubscriptionsService) *MailLink {
	return &MailLink{
		loggerProvider: log,
		processor:      processor,
		subscriptions:  subscriptions,
	}
}

func (h *MailLink) Activate(ctx *gin.Context) error {
	model, subscriptionID, err := bindNotification(ctx)
	if err != nil {
		return err
	}

	if err := h.processor.ActivateSubscription(ctx, subscriptionID, model.PlanID); err != nil {
		return requestError(err)
	}

	return web.RespondHTML(ctx, mailActivatePage, newPage(ctx, domain.ActivateActionViewModel{
		SubscriptionID: subscriptionID,
		PlanID:         model.PlanID,
	}), http.StatusOK)
}

// OperationAck confirms a quantity change, reinstate, suspend or unsubscribe
// operation once the operations team handled it.
func (h *MailLink) OperationAck(ctx *gin.Context) error {
	model, subscriptionID, err := bindNotification(ctx)
	if err != nil {
		return err
	}

	operationID, err := uuid.Parse(model.OperationID)
	if err != nil {
		return web.NewRequestError(ErrInvalidOperation, http.StatusBadRequest)
	}

	if err := h.processor.OperationAck(ctx, subscriptionID, operationID, model.PlanID, model.Quantity); err != nil {
		return requestError(err)
	}

	return web.RespondHTML(ctx, mailOperationUpdatePage, newPage(ctx, domain.OperationUpdateViewModel{
		SubscriptionID: subscriptionID,
		OperationID:    operationID,
		PlanID:         model.PlanID,
		Quantity:       model.Quantity,
	}), http.StatusOK)
}

func (h *MailLink) Update(ctx *gin.Context) error {
	model, subscriptionID, err := bindNotification(ctx)
	if err != nil {
		return err
	}

	if err := h.subscriptions.UpdateFromMailLink(ctx, subscriptionID, model.PlanID); err != nil {
		return requestError(err)
	}

	return web.RespondHTML(ctx, mailUpdatePage, newPage(ctx, domain.ActivateActionViewModel{
		SubscriptionID: subscriptionID,
		PlanID:         model.PlanID,
	}), http.StatusOK)
}

func bindNotification(ctx *gin.Context) (*domain.NotificationModel, uuid.UUID, error) {
	var model domain.NotificationModel

	if err := ctx.ShouldBindQuery(&model); err != nil {
		return nil, uuid.Nil, web.NewRequestError(err, http.StatusBadRequest)
	}

	subscriptionID, err := parseSubscriptionID(model.SubscriptionID)
	if err != nil {
		return nil, uuid.Nil, err
	}

	return &model, subscriptionID, nil
}
