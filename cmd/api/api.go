package api

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/doitintl/hello/commandcenter/common"
	"github.com/doitintl/hello/commandcenter/framework/auth"
	"github.com/doitintl/hello/commandcenter/framework/connection"
	"github.com/doitintl/hello/commandcenter/framework/mid"
	"github.com/doitintl/hello/commandcenter/framework/web"
	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/mailer"
	"github.com/doitintl/hello/commandcenter/marketplace/dal"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	"github.com/doitintl/hello/commandcenter/marketplace/handlers"
	marketplaceHttp "github.com/doitintl/hello/commandcenter/marketplace/http"
	"github.com/doitintl/hello/commandcenter/marketplace/service"
	"github.com/doitintl/hello/commandcenter/notification"
)

const (
	webhookRatePerSecond = 20
	webhookBurst         = 40
)

// API holds the dependencies the routes are built from.
type API struct {
	shutdown chan os.Signal
	log      *logger.Logging
	conn     *connection.Connection
	opts     *common.Options
}

func NewAPI(shutdown chan os.Signal, logging *logger.Logging, conn *connection.Connection, opts *common.Options) *API {
	return &API{
		shutdown,
		logging,
		conn,
		opts,
	}
}

// Build builds the api endpoints with the needed middlewares, and returns http.Handler interface.
func (a *API) Build() (http.Handler, error) {
	loggerProvider := logger.FromContext

	// Construct the web.App which holds all routes as well as common Middleware.
	app, err := web.NewApp(a.shutdown, web.Config{
		SentryDSN:   a.opts.SentryDSN,
		Environment: common.Env,
		Release:     common.ServiceVersion,
	}, mid.Logger(), mid.Errors(), mid.Metrics(), mid.Panics(), mid.Sentry())
	if err != nil {
		return nil, err
	}

	credential, err := marketplaceHttp.NewClientSecretCredential(
		a.opts.MarketplaceClient.TenantID,
		a.opts.MarketplaceClient.ClientID,
		a.opts.MarketplaceClient.ClientSecret,
	)
	if err != nil {
		return nil, err
	}

	marketplaceClient := marketplaceHttp.NewClient(loggerProvider, credential, marketplaceHttp.Config{
		BaseURL: a.opts.MarketplaceClient.BaseURL,
	})

	deps := notification.Dependencies{
		Options:     a.opts,
		Fulfillment: marketplaceClient,
		Queue:       a.conn.Queue(),
		Pubsub:      a.conn.Pubsub(),
	}

	if common.GetEnvBool("MAIL_DRY_RUN", false) {
		deps.Mailer = mailer.NewCowardMailer(loggerProvider)
	}

	notifications, err := notification.NewHandler(loggerProvider, deps)
	if err != nil {
		return nil, err
	}

	operationsDAL := dal.NewOperationsTableDAL(a.conn.Tables())
	dimensionUsageDAL := dal.NewDimensionUsageTableDAL(a.conn.Tables())

	webhookHandler := service.NewWebhookHandler(loggerProvider, marketplaceClient, notifications)
	processor := service.NewMarketplaceProcessor(loggerProvider, marketplaceClient, operationsDAL, webhookHandler)
	subscriptionsService := service.NewSubscriptionsService(loggerProvider, marketplaceClient, operationsDAL, a.opts.ShowUnsubscribed)
	landingService := service.NewLandingService(loggerProvider, processor, marketplaceClient, notifications)
	dimensionsService := service.NewDimensionsService(loggerProvider, marketplaceClient, marketplaceClient, dimensionUsageDAL, dimensions(a.opts.Dimensions))

	jwks, err := auth.NewJWKS()
	if err != nil {
		return nil, err
	}

	sessions := auth.NewSessionManager(a.opts.Session.Key, a.opts.Session.Secure)
	oidc := auth.NewOIDC(auth.OIDCConfig{
		TenantID:     a.opts.AzureAD.TenantID,
		ClientID:     a.opts.AzureAD.ClientID,
		ClientSecret: a.opts.AzureAD.ClientSecret,
		RedirectURL:  strings.TrimSuffix(a.opts.BaseURL, "/") + a.opts.AzureAD.CallbackPath,
	}, jwks.Keyfunc)

	var webhookValidator mid.TokenValidator
	if a.opts.WebhookToken.Enabled {
		webhookValidator = auth.NewWebhookTokenValidator(a.opts.WebhookToken.TenantID, a.opts.WebhookToken.ClientID, jwks.Keyfunc)
	}

	subscriptions := handlers.NewSubscriptions(loggerProvider, subscriptionsService)
	dimensionsHandler := handlers.NewDimensions(loggerProvider, dimensionsService)
	landingPage := handlers.NewLandingPage(loggerProvider, landingService)
	mailLink := handlers.NewMailLink(loggerProvider, processor, subscriptionsService)
	webhook := handlers.NewWebhook(loggerProvider, processor)
	account := handlers.NewAccount(loggerProvider, oidc, sessions)

	app.Get("/health", func(ctx *gin.Context) error {
		return web.Respond(ctx, gin.H{"status": "ok"}, http.StatusOK)
	})
	app.HandleHTTP(http.MethodGet, "/metrics", promhttp.Handler())

	// Sign in
	app.Get(mid.SignInPath, account.SignIn, mid.HTML())
	app.Get(a.opts.AzureAD.CallbackPath, account.Callback, mid.HTML())
	app.Get("/account/signout", account.SignOut, mid.HTML())

	// Marketplace webhook
	app.Post("/api/webhook", webhook.Handle,
		mid.RateLimit(rate.NewLimiter(webhookRatePerSecond, webhookBurst)),
		mid.WebhookBodyLogger(),
		mid.WebhookTokenRequired(webhookValidator),
	)

	// Static pages
	publicGroup := web.NewGroup(app, "/subscriptions", mid.HTML())
	{
		publicGroup.Get("/notauthorized", subscriptions.NotAuthorized)
		publicGroup.Get("/error", subscriptions.Error)
	}

	validSubscription := mid.ValidateQueryUUID("subscriptionId")
	signedIn := []web.Middleware{mid.HTML(), mid.SessionRequired(sessions)}
	admin := []web.Middleware{mid.HTML(), mid.SessionRequired(sessions), mid.AdminRequired(a.opts.CommandCenterAdmin)}

	// Purchaser landing page
	landingGroup := web.NewGroup(app, "/landingpage", signedIn...)
	{
		landingGroup.Get("", landingPage.Index)
		landingGroup.Post("", landingPage.Submit, mid.CSRFProtected())
		landingGroup.Get("/success", landingPage.Success)
	}

	// Publisher administration
	app.Get("/", subscriptions.Index, admin...)

	subscriptionsGroup := web.NewGroup(app, "/subscriptions", admin...)
	{
		subscriptionsGroup.Get("", subscriptions.Index)
		subscriptionsGroup.Get("/operations", subscriptions.Operations, validSubscription)
		subscriptionsGroup.Get("/action", subscriptions.Action, validSubscription)
		subscriptionsGroup.Post("/update", subscriptions.Update, mid.CSRFProtected())

		dimensionsGroup := subscriptionsGroup.NewSubgroup("/dimensions")
		dimensionsGroup.Get("", dimensionsHandler.Index, validSubscription)
		dimensionsGroup.Post("", dimensionsHandler.Send, mid.CSRFProtected())
	}

	// Links of the operations team emails
	mailLinkGroup := web.NewGroup(app, "/maillink", admin...)
	{
		mailLinkGroup.Get("/activate", mailLink.Activate, validSubscription)
		mailLinkGroup.Get("/quantitychange", mailLink.OperationAck, validSubscription)
		mailLinkGroup.Get("/reinstate", mailLink.OperationAck, validSubscription)
		mailLinkGroup.Get("/suspendsubscription", mailLink.OperationAck, validSubscription)
		mailLinkGroup.Get("/unsubscribe", mailLink.OperationAck, validSubscription)
		mailLinkGroup.Get("/update", mailLink.Update, validSubscription)
	}

	return app, nil
}

func dimensions(opts []common.DimensionOptions) []domain.Dimension {
	result := make([]domain.Dimension, 0, len(opts))

	for _, d := range opts {
		result = append(result, domain.Dimension{
			ID:       d.DimensionID,
			PlanIDs:  d.PlanIDs,
			OfferIDs: d.OfferIDs,
		})
	}

	return result
}
