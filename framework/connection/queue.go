package connection

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"

	"github.com/doitintl/hello/commandcenter/logger"
)

var (
	ErrQueueInitialization = errors.New("storage queue initialization error")
)

type QueueClient struct {
	queue *azqueue.QueueClient
}

func NewQueueClient(ctx context.Context, log *logger.Logging, connectionString, queueName string) (*QueueClient, error) {
	logger := log.Logger(ctx)

	queue, err := azqueue.NewQueueClientFromConnectionString(connectionString, queueName, nil)
	if err != nil {
		logger.Errorf("%s: %s", ErrQueueInitialization, err)
		return nil, ErrQueueInitialization
	}

	return &QueueClient{
		queue,
	}, nil
}
