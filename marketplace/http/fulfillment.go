package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

const (
	subscriptionsPath = "/saas/subscriptions"
	maxPages          = 1000
)

type subscriptionsPage struct {
	Subscriptions []domain.Subscription `json:"subscriptions"`
	NextLink      string                `json:"@nextLink"`
}

type plansResponse struct {
	Plans []domain.Plan `json:"plans"`
}

type operationsResponse struct {
	Operations []domain.Operation `json:"operations"`
}

type activateRequest struct {
	PlanID   string `json:"planId"`
	Quantity int    `json:"quantity,omitempty"`
}

type updateRequest struct {
	PlanID   string `json:"planId,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
}

func subscriptionPath(subscriptionID uuid.UUID) string {
	return subscriptionsPath + "/" + subscriptionID.String()
}

func operationPath(subscriptionID, operationID uuid.UUID) string {
	return subscriptionPath(subscriptionID) + "/operations/" + operationID.String()
}

func (c *Client) ResolveSubscription(ctx context.Context, marketplaceToken string) (*domain.ResolvedSubscription, error) {
	if marketplaceToken == "" {
		return nil, ErrEmptyMarketplaceToken
	}

	var resolved domain.ResolvedSubscription

	req := c.request(ctx).
		SetHeader(marketplaceTokenHeader, marketplaceToken).
		SetResult(&resolved)

	if _, err := c.execute("resolve", req, http.MethodPost, subscriptionsPath+"/resolve"); err != nil {
		return nil, err
	}

	return &resolved, nil
}

// ListSubscriptions returns every subscription of the publisher, following the next links.
func (c *Client) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	var subscriptions []domain.Subscription

	link := ""

	for i := 0; i < maxPages; i++ {
		var page subscriptionsPage

		var err error

		if link == "" {
			_, err = c.execute("listSubscriptions", c.request(ctx).SetResult(&page), http.MethodGet, subscriptionsPath)
		} else {
			_, err = c.execute("listSubscriptions", c.rest.R().SetContext(ctx).SetResult(&page), http.MethodGet, link)
		}

		if err != nil {
			return nil, err
		}

		subscriptions = append(subscriptions, page.Subscriptions...)

		if page.NextLink == "" || page.NextLink == link {
			break
		}

		link = page.NextLink
	}

	return subscriptions, nil
}

func (c *Client) GetSubscription(ctx context.Context, subscriptionID uuid.UUID) (*domain.Subscription, error) {
	var subscription domain.Subscription

	req := c.request(ctx).SetResult(&subscription)
	if _, err := c.execute("getSubscription", req, http.MethodGet, subscriptionPath(subscriptionID)); err != nil {
		return nil, err
	}

	return &subscription, nil
}

func (c *Client) ListAvailablePlans(ctx context.Context, subscriptionID uuid.UUID) ([]domain.Plan, error) {
	var plans plansResponse

	req := c.request(ctx).SetResult(&plans)
	if _, err := c.execute("listAvailablePlans", req, http.MethodGet, subscriptionPath(subscriptionID)+"/listAvailablePlans"); err != nil {
		return nil, err
	}

	return plans.Plans, nil
}

func (c *Client) ActivateSubscription(ctx context.Context, subscriptionID uuid.UUID, planID string, quantity int) error {
	req := c.request(ctx).SetBody(activateRequest{PlanID: planID, Quantity: quantity})

	_, err := c.execute("activate", req, http.MethodPost, subscriptionPath(subscriptionID)+"/activate")

	return err
}

// UpdateSubscriptionPlan starts a plan change and returns the operation id.
func (c *Client) UpdateSubscriptionPlan(ctx context.Context, subscriptionID uuid.UUID, planID string) (uuid.UUID, error) {
	req := c.request(ctx).SetBody(updateRequest{PlanID: planID})

	resp, err := c.execute("updatePlan", req, http.MethodPatch, subscriptionPath(subscriptionID))
	if err != nil {
		return uuid.Nil, err
	}

	return operationIDFromResponse(resp)
}

// UpdateSubscriptionQuantity starts a seat quantity change and returns the operation id.
func (c *Client) UpdateSubscriptionQuantity(ctx context.Context, subscriptionID uuid.UUID, quantity int) (uuid.UUID, error) {
	req := c.request(ctx).SetBody(updateRequest{Quantity: quantity})

	resp, err := c.execute("updateQuantity", req, http.MethodPatch, subscriptionPath(subscriptionID))
	if err != nil {
		return uuid.Nil, err
	}

	return operationIDFromResponse(resp)
}

// DeleteSubscription unsubscribes and returns the operation id.
func (c *Client) DeleteSubscription(ctx context.Context, subscriptionID uuid.UUID) (uuid.UUID, error) {
	resp, err := c.execute("delete", c.request(ctx), http.MethodDelete, subscriptionPath(subscriptionID))
	if err != nil {
		return uuid.Nil, err
	}

	return operationIDFromResponse(resp)
}

// ListOperations returns the outstanding operations of a subscription.
func (c *Client) ListOperations(ctx context.Context, subscriptionID uuid.UUID) ([]domain.Operation, error) {
	var operations operationsResponse

	req := c.request(ctx).SetResult(&operations)
	if _, err := c.execute("listOperations", req, http.MethodGet, subscriptionPath(subscriptionID)+"/operations"); err != nil {
		return nil, err
	}

	return operations.Operations, nil
}

func (c *Client) GetOperation(ctx context.Context, subscriptionID, operationID uuid.UUID) (*domain.Operation, error) {
	var operation domain.Operation

	req := c.request(ctx).SetResult(&operation)
	if _, err := c.execute("getOperation", req, http.MethodGet, operationPath(subscriptionID, operationID)); err != nil {
		return nil, err
	}

	return &operation, nil
}

func (c *Client) UpdateOperationStatus(ctx context.Context, subscriptionID, operationID uuid.UUID, update domain.OperationUpdate) error {
	req := c.request(ctx).SetBody(update)

	_, err := c.execute("updateOperation", req, http.MethodPatch, operationPath(subscriptionID, operationID))

	return err
}
