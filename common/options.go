package common

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// NotificationHandlerKind selects a notification sink.
type NotificationHandlerKind string

const (
	EmailNotifications      NotificationHandlerKind = "EmailNotifications"
	AzureQueueNotifications NotificationHandlerKind = "AzureQueueNotifications"
	PubSubNotifications     NotificationHandlerKind = "PubSubNotifications"
	SlackNotifications      NotificationHandlerKind = "SlackNotifications"
)

const configFileEnv = "COMMAND_CENTER_CONFIG"

// Secret names looked up when a secret source is configured.
const (
	SecretSendgridAPIKey          = "sendgrid-api-key"
	SecretMarketplaceClientSecret = "marketplace-client-secret"
	SecretAzureADClientSecret     = "azure-ad-client-secret"
	SecretSessionKey              = "command-center-session-key"
)

var (
	ErrMailOptionsRequired       = errors.New("mail options are required for email notifications")
	ErrAzureQueueOptionsRequired = errors.New("azure queue options are required for queue notifications")
	ErrPubSubOptionsRequired     = errors.New("pubsub options are required for pubsub notifications")
	ErrSlackOptionsRequired      = errors.New("slack options are required for slack notifications")
)

// Options is the command center configuration.
type Options struct {
	BaseURL                         string                    `yaml:"base_url" validate:"required,url"`
	CommandCenterAdmin              string                    `yaml:"command_center_admin" validate:"required,email"`
	ShowUnsubscribed                bool                      `yaml:"show_unsubscribed"`
	OperationsStoreConnectionString string                    `yaml:"operations_store_connection_string" validate:"required"`
	ActiveNotificationHandlers      []NotificationHandlerKind `yaml:"active_notification_handler" validate:"required,min=1,dive,oneof=EmailNotifications AzureQueueNotifications PubSubNotifications SlackNotifications"`

	Mail       MailOptions       `yaml:"mail"`
	AzureQueue AzureQueueOptions `yaml:"azure_queue"`
	PubSub     PubSubOptions     `yaml:"pubsub"`
	Slack      SlackOptions      `yaml:"slack"`

	MarketplaceClient MarketplaceClientOptions `yaml:"marketplace_client"`
	AzureAD           AzureADOptions           `yaml:"azure_ad"`
	WebhookToken      WebhookTokenOptions      `yaml:"webhook_token"`
	Session           SessionOptions           `yaml:"session"`

	Dimensions []DimensionOptions `yaml:"dimensions" validate:"dive"`

	SentryDSN        string `yaml:"sentry_dsn" validate:"omitempty,url"`
	SecretsProjectID string `yaml:"secrets_project_id"`
}

type MailOptions struct {
	OperationsTeamEmail string `yaml:"operations_team_email" validate:"omitempty,email"`
	FromEmail           string `yaml:"from_email" validate:"omitempty,email"`
	APIKey              string `yaml:"api_key"`
	BaseURL             string `yaml:"base_url" validate:"omitempty,url"`
}

type AzureQueueOptions struct {
	StorageConnectionString string `yaml:"storage_connection_string"`
	QueueName               string `yaml:"queue_name"`
}

type PubSubOptions struct {
	ProjectID string `yaml:"project_id"`
	TopicID   string `yaml:"topic_id"`
}

type SlackOptions struct {
	WebhookURL string `yaml:"webhook_url" validate:"omitempty,url"`
	Channel    string `yaml:"channel"`
}

type MarketplaceClientOptions struct {
	TenantID     string `yaml:"tenant_id" validate:"required,uuid"`
	ClientID     string `yaml:"client_id" validate:"required,uuid"`
	ClientSecret string `yaml:"client_secret" validate:"required"`
	BaseURL      string `yaml:"base_url" validate:"omitempty,url"`
}

type AzureADOptions struct {
	TenantID     string `yaml:"tenant_id" validate:"required"`
	ClientID     string `yaml:"client_id" validate:"required"`
	ClientSecret string `yaml:"client_secret" validate:"required"`
	CallbackPath string `yaml:"callback_path" validate:"required,startswith=/"`
}

type WebhookTokenOptions struct {
	Enabled  bool   `yaml:"enabled"`
	TenantID string `yaml:"tenant_id" validate:"required_if=Enabled true"`
	ClientID string `yaml:"client_id" validate:"required_if=Enabled true"`
}

type SessionOptions struct {
	Key    string `yaml:"key" validate:"required,min=32"`
	Secure bool   `yaml:"secure"`
}

type DimensionOptions struct {
	DimensionID string   `yaml:"dimension_id" validate:"required"`
	PlanIDs     []string `yaml:"plan_ids" validate:"required,min=1"`
	OfferIDs    []string `yaml:"offer_ids" validate:"required,min=1"`
}

// SecretSource resolves named secrets, e.g. from google secret manager.
type SecretSource interface {
	AccessSecret(ctx context.Context, projectID, name string) ([]byte, error)
}

// HasNotificationHandler reports whether the given sink is active.
func (o *Options) HasNotificationHandler(kind NotificationHandlerKind) bool {
	for _, k := range o.ActiveNotificationHandlers {
		if k == kind {
			return true
		}
	}

	return false
}

// LoadOptions reads the optional yaml config file, applies environment
// overrides, fills missing secrets from the secret source and validates the result.
func LoadOptions(ctx context.Context, secrets SecretSource) (*Options, error) {
	o := defaultOptions()

	if path := GetEnv(configFileEnv, ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, o); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	o.applyEnv()

	if secrets != nil && o.SecretsProjectID != "" {
		if err := o.applySecrets(ctx, secrets); err != nil {
			return nil, err
		}
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	return o, nil
}

func defaultOptions() *Options {
	return &Options{
		ActiveNotificationHandlers: []NotificationHandlerKind{EmailNotifications},
		AzureAD: AzureADOptions{
			TenantID:     "common",
			CallbackPath: "/signin-oidc",
		},
		Session: SessionOptions{
			Secure: true,
		},
	}
}

func (o *Options) applyEnv() {
	setString(&o.BaseURL, "BASE_URL")
	setString(&o.CommandCenterAdmin, "COMMAND_CENTER_ADMIN")
	setString(&o.OperationsStoreConnectionString, "OPERATIONS_STORE_CONNECTION_STRING")
	o.ShowUnsubscribed = GetEnvBool("SHOW_UNSUBSCRIBED", o.ShowUnsubscribed)

	if v := GetEnv("ACTIVE_NOTIFICATION_HANDLER", ""); v != "" {
		o.ActiveNotificationHandlers = ParseNotificationHandlers(v)
	}

	setString(&o.Mail.OperationsTeamEmail, "MAIL_OPERATIONS_TEAM_EMAIL")
	setString(&o.Mail.FromEmail, "MAIL_FROM_EMAIL")
	setString(&o.Mail.APIKey, "SENDGRID_API_KEY")
	setString(&o.Mail.BaseURL, "SENDGRID_BASE_URL")

	setString(&o.AzureQueue.StorageConnectionString, "AZURE_QUEUE_CONNECTION_STRING")
	setString(&o.AzureQueue.QueueName, "AZURE_QUEUE_NAME")

	setString(&o.PubSub.ProjectID, "PUBSUB_PROJECT_ID")
	setString(&o.PubSub.TopicID, "PUBSUB_TOPIC")

	setString(&o.Slack.WebhookURL, "SLACK_WEBHOOK_URL")
	setString(&o.Slack.Channel, "SLACK_CHANNEL")

	setString(&o.MarketplaceClient.TenantID, "MARKETPLACE_TENANT_ID")
	setString(&o.MarketplaceClient.ClientID, "MARKETPLACE_CLIENT_ID")
	setString(&o.MarketplaceClient.ClientSecret, "MARKETPLACE_CLIENT_SECRET")
	setString(&o.MarketplaceClient.BaseURL, "MARKETPLACE_BASE_URL")

	setString(&o.AzureAD.TenantID, "AZURE_AD_TENANT_ID")
	setString(&o.AzureAD.ClientID, "AZURE_AD_CLIENT_ID")
	setString(&o.AzureAD.ClientSecret, "AZURE_AD_CLIENT_SECRET")
	setString(&o.AzureAD.CallbackPath, "AZURE_AD_CALLBACK_PATH")

	o.WebhookToken.Enabled = GetEnvBool("WEBHOOK_AUTH_ENABLED", o.WebhookToken.Enabled)
	setString(&o.WebhookToken.TenantID, "WEBHOOK_TENANT_ID")
	setString(&o.WebhookToken.ClientID, "WEBHOOK_CLIENT_ID")

	setString(&o.Session.Key, "SESSION_KEY")
	o.Session.Secure = GetEnvBool("SESSION_SECURE", o.Session.Secure)

	setString(&o.SentryDSN, "SENTRY_DSN")
	setString(&o.SecretsProjectID, "SECRETS_PROJECT_ID")
}

func (o *Options) applySecrets(ctx context.Context, secrets SecretSource) error {
	targets := map[string]*string{
		SecretSendgridAPIKey:          &o.Mail.APIKey,
		SecretMarketplaceClientSecret: &o.MarketplaceClient.ClientSecret,
		SecretAzureADClientSecret:     &o.AzureAD.ClientSecret,
		SecretSessionKey:              &o.Session.Key,
	}

	for name, target := range targets {
		if *target != "" {
			continue
		}

		if name == SecretSendgridAPIKey && !o.HasNotificationHandler(EmailNotifications) {
			continue
		}

		data, err := secrets.AccessSecret(ctx, o.SecretsProjectID, name)
		if err != nil {
			return fmt.Errorf("access secret %s: %w", name, err)
		}

		*target = strings.TrimSpace(string(data))
	}

	return nil
}

// Validate checks the struct tags and the per-sink requirements.
func (o *Options) Validate() error {
	v := validator.New()
	v.RegisterStructValidation(notificationOptionsLevel, Options{})

	if err := v.Struct(o); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fe := range validationErrs {
				switch fe.Tag() {
				case "mail":
					return ErrMailOptionsRequired
				case "azure_queue":
					return ErrAzureQueueOptionsRequired
				case "pubsub":
					return ErrPubSubOptionsRequired
				case "slack":
					return ErrSlackOptionsRequired
				}
			}
		}

		return err
	}

	return nil
}

func notificationOptionsLevel(sl validator.StructLevel) {
	o := sl.Current().Interface().(Options)

	if o.HasNotificationHandler(EmailNotifications) &&
		(o.Mail.OperationsTeamEmail == "" || o.Mail.FromEmail == "" || o.Mail.APIKey == "") {
		sl.ReportError(o.Mail, "Mail", "Mail", "mail", "")
	}

	if o.HasNotificationHandler(AzureQueueNotifications) &&
		(o.AzureQueue.StorageConnectionString == "" || o.AzureQueue.QueueName == "") {
		sl.ReportError(o.AzureQueue, "AzureQueue", "AzureQueue", "azure_queue", "")
	}

	if o.HasNotificationHandler(PubSubNotifications) && (o.PubSub.ProjectID == "" || o.PubSub.TopicID == "") {
		sl.ReportError(o.PubSub, "PubSub", "PubSub", "pubsub", "")
	}

	if o.HasNotificationHandler(SlackNotifications) && o.Slack.WebhookURL == "" {
		sl.ReportError(o.Slack, "Slack", "Slack", "slack", "")
	}
}

// ParseNotificationHandlers splits a comma separated handler list.
func ParseNotificationHandlers(value string) []NotificationHandlerKind {
	var kinds []NotificationHandlerKind

	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			kinds = append(kinds, NotificationHandlerKind(part))
		}
	}

	return kinds
}

func setString(target *string, key string) {
	if value := GetEnv(key, ""); value != "" {
		*target = value
	}
}
