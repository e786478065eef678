//go:generate mockery --output=../mocks --all
package iface

import (
	"context"

	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

type IOperationsTableDAL interface {
	Record(ctx context.Context, record domain.OperationRecord) error
	Get(ctx context.Context, subscriptionID, operationID uuid.UUID) (*domain.OperationRecord, error)
	GetAll(ctx context.Context, subscriptionID uuid.UUID) ([]*domain.OperationRecord, error)
}

type IDimensionUsageTableDAL interface {
	Record(ctx context.Context, subscriptionID uuid.UUID, result domain.UsageEventResult) error
	GetAll(ctx context.Context, subscriptionID uuid.UUID) ([]*domain.DimensionUsageRecord, error)
}
