package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/metrics"
)

const (
	DefaultBaseURL = "https://marketplaceapi.microsoft.com/api"
	APIVersion     = "2018-08-31"

	// MarketplaceScope is the azure ad resource of the saas fulfillment and metering apis.
	MarketplaceScope = "20e940b3-4c77-4b0b-9a53-9e16a1b010a7/.default"

	requestIDHeader         = "x-ms-requestid"
	correlationIDHeader     = "x-ms-correlationid"
	marketplaceTokenHeader  = "x-ms-marketplace-token"
	operationLocationHeader = "Operation-Location"

	defaultTimeout    = 30 * time.Second
	defaultRetryCount = 3
)

type Config struct {
	BaseURL    string
	RetryCount int
	Timeout    time.Duration
}

// Client calls the saas fulfillment api v2 and the metering api.
type Client struct {
	loggerProvider logger.Provider
	rest           *resty.Client
}

// NewClientSecretCredential creates the azure ad credential of the publisher application.
func NewClientSecretCredential(tenantID, clientID, clientSecret string) (azcore.TokenCredential, error) {
	return azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
}

func NewClient(log logger.Provider, credential azcore.TokenCredential, cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	retryCount := cfg.RetryCount
	if retryCount == 0 {
		retryCount = defaultRetryCount
	}

	rest := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(retryIdempotent)

	rest.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		token, err := credential.GetToken(r.Context(), policy.TokenRequestOptions{
			Scopes: []string{MarketplaceScope},
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}

		r.SetAuthToken(token.Token)
		r.SetHeader(requestIDHeader, uuid.NewString())

		if r.Header.Get(correlationIDHeader) == "" {
			r.SetHeader(correlationIDHeader, uuid.NewString())
		}

		return nil
	})

	return &Client{
		loggerProvider: log,
		rest:           rest,
	}
}

// Mutating calls start marketplace operations, they are never retried.
func retryIdempotent(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
		return false
	}

	return err != nil || r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.rest.R().
		SetContext(ctx).
		SetQueryParam("api-version", APIVersion)
}

func (c *Client) execute(operation string, req *resty.Request, method, url string) (*resty.Response, error) {
	resp, err := c.executeRaw(operation, req, method, url)
	if err != nil {
		return nil, err
	}

	if err := checkResponse(operation, resp); err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) executeRaw(operation string, req *resty.Request, method, url string) (*resty.Response, error) {
	started := time.Now()
	resp, err := req.Execute(method, url)

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode())
	}

	metrics.MarketplaceRequests.WithLabelValues(operation, status).Inc()
	metrics.MarketplaceLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())

	if err != nil {
		c.loggerProvider(req.Context()).Errorf("marketplace %s request failed: %s", operation, err)
		return nil, fmt.Errorf("marketplace %s: %w", operation, err)
	}

	return resp, nil
}

func checkResponse(operation string, resp *resty.Response) error {
	switch code := resp.StatusCode(); {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	default:
		return &APIError{
			Operation:  operation,
			StatusCode: code,
			Body:       resp.String(),
		}
	}
}

// operationIDFromResponse extracts the operation id from the Operation-Location header,
// e.g. https://marketplaceapi.microsoft.com/api/saas/subscriptions/<id>/operations/<operation id>?api-version=2018-08-31
func operationIDFromResponse(resp *resty.Response) (uuid.UUID, error) {
	location := resp.Header().Get(operationLocationHeader)
	if location == "" {
		return uuid.Nil, ErrMissingOperationLocation
	}

	u, err := url.Parse(location)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrMissingOperationLocation, err)
	}

	id, err := uuid.Parse(path.Base(u.Path))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrMissingOperationLocation, err)
	}

	return id, nil
}
