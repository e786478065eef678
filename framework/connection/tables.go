package connection

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/doitintl/hello/commandcenter/logger"
)

var (
	ErrTablesInitialization = errors.New("table storage initialization error")
)

type TablesClient struct {
	tables *aztables.ServiceClient
}

func NewTablesClient(ctx context.Context, log *logger.Logging, connectionString string) (*TablesClient, error) {
	logger := log.Logger(ctx)

	tables, err := aztables.NewServiceClientFromConnectionString(connectionString, nil)
	if err != nil {
		logger.Errorf("%s: %s", ErrTablesInitialization, err)
		return nil, ErrTablesInitialization
	}

	return &TablesClient{
		tables,
	}, nil
}
