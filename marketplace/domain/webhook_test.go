package domain

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testSubscriptionID = uuid.MustParse("37f9dea2-4345-438f-b0bd-03d40d28c7e0")
	testOperationID    = uuid.MustParse("74dfb4db-c193-4891-827d-eb05fbdc64b0")
)

func loadWebhookPayload(t *testing.T) WebhookPayload {
	data, err := os.ReadFile("testdata/webhook_change_plan.json")
	require.NoError(t, err)

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal(data, &payload))

	return payload
}

func TestWebhookPayloadUnmarshal(t *testing.T) {
	payload := loadWebhookPayload(t)

	assert.Equal(t, testOperationID, payload.OperationID)
	assert.Equal(t, testSubscriptionID, payload.SubscriptionID)
	assert.Equal(t, WebhookActionChangePlan, payload.Action)
	assert.Equal(t, OperationStatusSucceeded, payload.Status)
	assert.Equal(t, 5, payload.Quantity)
	assert.Equal(t, 2023, payload.TimeStamp.Year())
	require.NotNil(t, payload.Subscription)
	assert.Equal(t, SubscriptionStatusSubscribed, payload.Subscription.SaasSubscriptionStatus)
	assert.Equal(t, time.March, payload.Subscription.Term.StartDate.Month())
	assert.NoError(t, payload.Validate())
}

func TestWebhookPayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload WebhookPayload
	}{
		{
			name:    "missing operation id",
			payload: WebhookPayload{SubscriptionID: testSubscriptionID, Action: WebhookActionSuspend},
		},
		{
			name:    "missing subscription id",
			payload: WebhookPayload{OperationID: testOperationID, Action: WebhookActionSuspend},
		},
		{
			name:    "missing action",
			payload: WebhookPayload{OperationID: testOperationID, SubscriptionID: testSubscriptionID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.payload.Validate(), ErrInvalidWebhookPayload)
		})
	}
}

func TestWebhookPayloadVerified(t *testing.T) {
	payload := loadWebhookPayload(t)
	payload.Subscription = nil

	op := &Operation{
		ID:             testOperationID,
		SubscriptionID: testSubscriptionID,
		Action:         WebhookActionChangePlan,
		Status:         OperationStatusFailed,
		PlanID:         "gold",
	}

	verified := payload.Verified(op)

	want := payload
	want.Status = OperationStatusFailed
	want.PlanID = "gold"

	if diff := cmp.Diff(want, verified); diff != "" {
		t.Errorf("Verified() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, OperationStatusSucceeded, payload.Status, "original payload must not change")
	assert.Equal(t, payload, payload.Verified(nil))
}

func TestEnumsAreCaseInsensitive(t *testing.T) {
	var op Operation
	require.NoError(t, json.Unmarshal([]byte(`{"action":"REINSTATE","status":"inprogress"}`), &op))

	assert.Equal(t, WebhookActionReinstate, op.Action)
	assert.Equal(t, OperationStatusInProgress, op.Status)
	assert.True(t, op.Action.IsKnown())

	require.NoError(t, json.Unmarshal([]byte(`{"action":"Teleport"}`), &op))
	assert.Equal(t, WebhookAction("Teleport"), op.Action)
	assert.False(t, op.Action.IsKnown())
}

func TestOperationStatusClassification(t *testing.T) {
	assert.True(t, OperationStatusSucceeded.IsTerminal())
	assert.True(t, OperationStatusConflict.IsTerminal())
	assert.False(t, OperationStatusInProgress.IsTerminal())
	assert.True(t, OperationStatusFailed.IsFailure())
	assert.False(t, OperationStatusSucceeded.IsFailure())
}

func TestAnyInProgress(t *testing.T) {
	assert.False(t, AnyInProgress(nil))
	assert.True(t, AnyInProgress([]Operation{{Status: OperationStatusSucceeded}, {Status: OperationStatusInProgress}}))
}
