package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doitintl/hello/commandcenter/common"
	"github.com/doitintl/hello/commandcenter/logger"
	"github.com/doitintl/hello/commandcenter/marketplace/http/mocks"
)

func TestNewHandler(t *testing.T) {
	opts := &common.Options{
		BaseURL: testBaseURL,
		ActiveNotificationHandlers: []common.NotificationHandlerKind{
			common.SlackNotifications,
			common.EmailNotifications,
		},
		Mail:  common.MailOptions{FromEmail: "noreply@contoso.com", OperationsTeamEmail: "ops@contoso.com", APIKey: "key"},
		Slack: common.SlackOptions{WebhookURL: "https://hooks.slack.com/services/T/B/X"},
	}

	h, err := NewHandler(logger.FromContext, Dependencies{Options: opts, Fulfillment: &mocks.FulfillmentClient{}})
	require.NoError(t, err)
	assert.Equal(t, []string{"SlackNotifications", "EmailNotifications"}, h.Targets())
	assert.IsType(t, &SlackHandler{}, h.targets[0].Handler)
	assert.IsType(t, &EmailHandler{}, h.targets[1].Handler)
}

func TestNewHandler_Errors(t *testing.T) {
	tests := []struct {
		name    string
		kinds   []common.NotificationHandlerKind
		wantErr error
	}{
		{name: "none", wantErr: ErrNoNotificationHandler},
		{name: "queue without client", kinds: []common.NotificationHandlerKind{common.AzureQueueNotifications}, wantErr: ErrQueueClientRequired},
		{name: "pubsub without client", kinds: []common.NotificationHandlerKind{common.PubSubNotifications}, wantErr: ErrPubsubClientRequired},
		{name: "unknown", kinds: []common.NotificationHandlerKind{"CarrierPigeon"}, wantErr: ErrUnknownNotificationHandler},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &common.Options{BaseURL: testBaseURL, ActiveNotificationHandlers: tt.kinds}

			_, err := NewHandler(logger.FromContext, Dependencies{Options: opts})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
