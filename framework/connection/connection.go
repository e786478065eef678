package connection

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"

	"github.com/doitintl/hello/commandcenter/common"
	"github.com/doitintl/hello/commandcenter/logger"
)

type Connection struct {
	*TablesClient
	*PubsubClient
	*QueueClient
}

// NewConnection initializes the storage and messaging clients the configured features need.
func NewConnection(ctx context.Context, log *logger.Logging, opts *common.Options) (*Connection, error) {
	tables, err := NewTablesClient(ctx, log, opts.OperationsStoreConnectionString)
	if err != nil {
		return nil, err
	}

	conn := &Connection{TablesClient: tables}

	if opts.HasNotificationHandler(common.PubSubNotifications) {
		projectID := opts.PubSub.ProjectID
		if projectID == "" {
			projectID = common.ProjectID
		}

		if conn.PubsubClient, err = NewPubsubClient(ctx, log, projectID); err != nil {
			return nil, err
		}
	}

	if opts.HasNotificationHandler(common.AzureQueueNotifications) {
		if conn.QueueClient, err = NewQueueClient(ctx, log, opts.AzureQueue.StorageConnectionString, opts.AzureQueue.QueueName); err != nil {
			return nil, err
		}
	}

	return conn, nil
}

// Tables returns the table service of the ledgers.
func (c *Connection) Tables() *aztables.ServiceClient {
	return c.tables
}

// Pubsub returns the pubsub client, nil when pubsub notifications are off.
func (c *Connection) Pubsub() *pubsub.Client {
	if c.PubsubClient == nil {
		return nil
	}

	return c.pubsub
}

// Queue returns the notification queue, nil when queue notifications are off.
func (c *Connection) Queue() *azqueue.QueueClient {
	if c.QueueClient == nil {
		return nil
	}

	return c.queue
}

// Close releases the clients holding connections.
func (c *Connection) Close() error {
	if c.PubsubClient != nil {
		return c.pubsub.Close()
	}

	return nil
}
