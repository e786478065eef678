package notification

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/domain"
	"github.com/doitintl/hello/commandcenter/metrics"
	"github.com/doitintl/hello/commandcenter/notification/iface"
)

// Target is a named notification sink.
type Target struct {
	Name    string
	Handler iface.Handler
}

// MultiHandler delivers every notification to all its targets. A failing
// target does not stop the others, the failures are returned together.
type MultiHandler struct {
	loggerProvider logger.Provider
	targets        []Target
}

func NewMultiHandler(log logger.Provider, targets ...Target) *MultiHandler {
	return &MultiHandler{
		loggerProvider: log,
		targets:        targets,
	}
}

func (m *MultiHandler) Targets() []string {
	names := make([]string, len(m.targets))
	for i, t := range m.targets {
		names[i] = t.Name
	}

	return names
}

func (m *MultiHandler) ProcessNewSubscription(ctx context.Context, model *domain.ProvisionModel) error {
	return m.fanOut(ctx, EventNewSubscription, func(h iface.Handler) error {
		return h.ProcessNewSubscription(ctx, model)
	})
}

func (m *MultiHandler) ProcessChangePlan(ctx context.Context, model *domain.ProvisionModel) error {
	return m.fanOut(ctx, EventUpdateSubscription, func(h iface.Handler) error {
		return h.ProcessChangePlan(ctx, model)
	})
}

func (m *MultiHandler) ProcessOperationFailOrConflict(ctx context.Context, payload *domain.WebhookPayload) error {
	return m.fanOut(ctx, EventOperationFailure, func(h iface.Handler) error {
		return h.ProcessOperationFailOrConflict(ctx, payload)
	})
}

func (m *MultiHandler) NotifyChangePlan(ctx context.Context, payload *domain.WebhookPayload) error {
	return m.fanOut(ctx, EventPlanChanged, func(h iface.Handler) error {
		return h.NotifyChangePlan(ctx, payload)
	})
}

func (m *MultiHandler) NotifyChangeQuantity(ctx context.Context, payload *domain.WebhookPayload) error {
	return m.fanOut(ctx, EventQuantityChanged, func(h iface.Handler) error {
		return h.NotifyChangeQuantity(ctx, payload)
	})
}

func (m *MultiHandler) NotifyReinstated(ctx context.Context, payload *domain.WebhookPayload) error {
	return m.fanOut(ctx, EventReinstated, func(h iface.Handler) error {
		return h.NotifyReinstated(ctx, payload)
	})
}

func (m *MultiHandler) NotifySuspended(ctx context.Context, payload *domain.WebhookPayload) error {
	return m.fanOut(ctx, EventSuspended, func(h iface.Handler) error {
		return h.NotifySuspended(ctx, payload)
	})
}

func (m *MultiHandler) NotifyUnsubscribed(ctx context.Context, payload *domain.WebhookPayload) error {
	return m.fanOut(ctx, EventUnsubscribed, func(h iface.Handler) error {
		return h.NotifyUnsubscribed(ctx, payload)
	})
}

func (m *MultiHandler) fanOut(ctx context.Context, event Event, notify func(h iface.Handler) error) error {
	var result *multierror.Error

	for _, t := range m.targets {
		err := notify(t.Handler)
		metrics.Notifications.WithLabelValues(t.Name, string(event), metrics.Result(err)).Inc()

		if err != nil {
			m.loggerProvider(ctx).Errorf("%s notification %s failed: %s", t.Name, event, err)
			result = multierror.Append(result, fmt.Errorf("%s: %w", t.Name, err))
		}
	}

	return result.ErrorOrNil()
}
