package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/doitintl/hello/commandcenter/logger"
)

const (
	DefaultBaseURL      = "https://api.sendgrid.com"
	DefaultMailSendPath = "/v3/mail/send"
)

var (
	ErrMissingRecipient = errors.New("email has no recipient")
	ErrMissingSender    = errors.New("email has no sender")
)

type SendGridConfig struct {
	APIKey       string
	BaseURL      string
	MailSendPath string
}

// Message is a single html email.
type Message struct {
	FromName   string
	From       string
	To         string
	Subject    string
	HTML       string
	Categories []string
}

func (m *Message) validate() error {
	if m.From == "" {
		return ErrMissingSender
	}

	if m.To == "" {
		return ErrMissingRecipient
	}

	return nil
}

// StatusError is returned when sendgrid does not accept the email.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sendgrid responded with status %d: %s", e.StatusCode, e.Body)
}

type Mailer struct {
	loggerProvider logger.Provider
	config         SendGridConfig
}

func NewMailer(log logger.Provider, config SendGridConfig) *Mailer {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if config.MailSendPath == "" {
		config.MailSendPath = DefaultMailSendPath
	}

	return &Mailer{
		loggerProvider: log,
		config:         config,
	}
}

// Send delivers the message through the sendgrid v3 mail send api.
func (s *Mailer) Send(ctx context.Context, msg *Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	l := s.loggerProvider(ctx)

	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(msg.FromName, msg.From))
	m.Subject = msg.Subject

	enable := false
	m.SetTrackingSettings(&mail.TrackingSettings{SubscriptionTracking: &mail.SubscriptionTrackingSetting{Enable: &enable}})

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", msg.To))
	m.AddPersonalizations(personalization)

	m.AddContent(mail.NewContent("text/html", msg.HTML))
	m.AddCategories(msg.Categories...)

	request := sendgrid.GetRequest(s.config.APIKey, s.config.MailSendPath, s.config.BaseURL)
	request.Method = http.MethodPost
	request.Body = mail.GetRequestBody(m)

	response, err := sendgrid.MakeRequestRetryWithContext(ctx, request)
	if err != nil {
		l.Errorf("sendgrid request failed: %s", err)
		return err
	}

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusAccepted {
		return &StatusError{StatusCode: response.StatusCode, Body: response.Body}
	}

	l.Infof("email %q sent to %s", msg.Subject, msg.To)

	return nil
}

// CowardMailer logs emails instead of sending them, for local runs without a sendgrid key.
type CowardMailer struct {
	loggerProvider logger.Provider
}

func NewCowardMailer(log logger.Provider) *CowardMailer {
	return &CowardMailer{loggerProvider: log}
}

func (c *CowardMailer) Send(ctx context.Context, msg *Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	c.loggerProvider(ctx).Printf("not sending email %q to %s", msg.Subject, msg.To)

	return nil
}
