package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

const usageEventPath = "/usageEvent"

// duplicateUsageEvent is the 409 body, it carries the event accepted earlier.
type duplicateUsageEvent struct {
	AdditionalInfo struct {
		AcceptedMessage domain.UsageEventResult `json:"acceptedMessage"`
	} `json:"additionalInfo"`
}

// PostUsageEvent emits a metered usage event. A duplicate event is not an
// error, the accepted event is returned with the Duplicate status.
func (c *Client) PostUsageEvent(ctx context.Context, event domain.UsageEvent) (*domain.UsageEventResult, error) {
	var result domain.UsageEventResult

	req := c.request(ctx).SetBody(event).SetResult(&result)

	resp, err := c.executeRaw("usageEvent", req, http.MethodPost, usageEventPath)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == http.StatusConflict {
		var duplicate duplicateUsageEvent
		if err := json.Unmarshal(resp.Body(), &duplicate); err != nil {
			return nil, checkResponse("usageEvent", resp)
		}

		accepted := duplicate.AdditionalInfo.AcceptedMessage
		accepted.Status = domain.UsageEventStatusDuplicate

		return &accepted, nil
	}

	if err := checkResponse("usageEvent", resp); err != nil {
		return nil, err
	}

	return &result, nil
}
