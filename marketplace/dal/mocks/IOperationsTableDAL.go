package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

type IOperationsTableDAL struct {
	mock.Mock
}

func (m *IOperationsTableDAL) Record(ctx context.Context, record domain.OperationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *IOperationsTableDAL) Get(ctx context.Context, subscriptionID, operationID uuid.UUID) (*domain.OperationRecord, error) {
	args := m.Called(ctx, subscriptionID, operationID)

	record, _ := args.Get(0).(*domain.OperationRecord)

	return record, args.Error(1)
}

func (m *IOperationsTableDAL) GetAll(ctx context.Context, subscriptionID uuid.UUID) ([]*domain.OperationRecord, error) {
	args := m.Called(ctx, subscriptionID)

	records, _ := args.Get(0).([]*domain.OperationRecord)

	return records, args.Error(1)
}
