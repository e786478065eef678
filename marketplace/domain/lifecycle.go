package domain

import "github.com/qmuntal/stateless"

// portal actions in display order
var lifecycleActions = []SubscriptionAction{
	SubscriptionActionActivate,
	SubscriptionActionUpdate,
	SubscriptionActionUnsubscribe,
}

func newLifecycle(status SubscriptionStatus) *stateless.StateMachine {
	machine := stateless.NewStateMachine(status)

	machine.Configure(SubscriptionStatusNotStarted)

	machine.Configure(SubscriptionStatusPendingFulfillmentStart).
		Permit(SubscriptionActionActivate, SubscriptionStatusSubscribed)

	machine.Configure(SubscriptionStatusSubscribed).
		PermitReentry(SubscriptionActionUpdate).
		Permit(SubscriptionActionUnsubscribe, SubscriptionStatusUnsubscribed)

	machine.Configure(SubscriptionStatusSuspended)

	machine.Configure(SubscriptionStatusUnsubscribed)

	return machine
}

// NextActions returns the portal actions available for a subscription status.
func NextActions(status SubscriptionStatus) []SubscriptionAction {
	machine := newLifecycle(status)
	actions := make([]SubscriptionAction, 0, len(lifecycleActions))

	for _, action := range lifecycleActions {
		if ok, err := machine.CanFire(action); err == nil && ok {
			actions = append(actions, action)
		}
	}

	return actions
}

// CanPerform reports whether the portal action is allowed in the given status.
// Ack never changes the subscription and is always allowed.
func CanPerform(status SubscriptionStatus, action SubscriptionAction) bool {
	if action == SubscriptionActionAck {
		return true
	}

	ok, err := newLifecycle(status).CanFire(action)

	return err == nil && ok
}
