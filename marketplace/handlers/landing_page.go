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

type LandingPage struct {
	loggerProvider logger.Provider
	service        iface.ILandingService
}

type landingViewModel struct {
	Provision *domain.ProvisionModel
	Regions   []domain.Region
	Error     string
}

func NewLandingPage(log logger.Provider, service iface.ILandingService) *LandingPage {
	return &LandingPage{
		loggerProvider: log,
		service:        service,
	}
}

// Index shows the purchaser the subscription behind the marketplace token.
func (h *LandingPage) Index(ctx *gin.Context) error {
	token := ctx.Query("token")
	if token == "" {
		return h.respondError(ctx, ErrEmptyToken)
	}

	model, err := h.service.BuildProvisionModel(ctx, token, currentUser(ctx))
	if err != nil {
		if errors.Is(err, service.ErrCannotResolveToken) || errors.Is(err, service.ErrEmptyToken) {
			return h.respondError(ctx, ErrCannotResolve)
		}

		return requestError(err)
	}

	return web.RespondHTML(ctx, landingPage, newPage(ctx, landingViewModel{
		Provision: model,
		Regions:   domain.Regions,
	}), http.StatusOK)
}

func (h *LandingPage) Submit(ctx *gin.Context) error {
	var model domain.ProvisionModel

	if err := ctx.ShouldBind(&model); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	if model.Region == "" {
		model.Region = domain.RegionNorthAmerica
	}

	user := currentUser(ctx)
	model.FullName = user.FullName
	model.Email = user.Email

	if err := h.service.Submit(ctx, &model); err != nil {
		return requestError(err)
	}

	return web.Redirect(ctx, landingSuccessPath)
}

func (h *LandingPage) Success(ctx *gin.Context) error {
	return web.RespondHTML(ctx, landingSuccessPage, newPage(ctx, nil), http.StatusOK)
}

func (h *LandingPage) respondError(ctx *gin.Context, err error) error {
	h.loggerProvider(ctx).Warningf("landing page: %v", err)

	return web.RespondHTML(ctx, landingPage, newPage(ctx, landingViewModel{
		Regions: domain.Regions,
		Error:   err.Error(),
	}), http.StatusOK)
}
