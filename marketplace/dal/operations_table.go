package dal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

const OperationsTable = "marketplaceoperations"

type OperationsTableDAL struct {
	table *ledgerTable
}

type operationRow struct {
	PartitionKey string
	RowKey       string
	Action       string
	Status       string
	PlanID       string `json:"PlanId"`
	Quantity     int
	Source       string
	Processed    bool
	RecordedAt   time.Time
}

func NewOperationsTableDAL(serviceClient *aztables.ServiceClient) *OperationsTableDAL {
	return NewOperationsTableDALWithClient(serviceClient.NewClient(OperationsTable))
}

func NewOperationsTableDALWithClient(client TableAPI) *OperationsTableDAL {
	return &OperationsTableDAL{
		table: &ledgerTable{client: client},
	}
}

// Record inserts or merges the ledger row of an operation.
func (d *OperationsTableDAL) Record(ctx context.Context, record domain.OperationRecord) error {
	recordedAt := record.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	return d.table.upsert(ctx, aztables.EDMEntity{
		Entity: aztables.Entity{
			PartitionKey: record.SubscriptionID.String(),
			RowKey:       record.OperationID.String(),
		},
		Properties: map[string]interface{}{
			"Action":     string(record.Action),
			"Status":     string(record.Status),
			"PlanId":     record.PlanID,
			"Quantity":   int32(record.Quantity),
			"Source":     string(record.Source),
			"Processed":  record.Processed,
			"RecordedAt": aztables.EDMDateTime(recordedAt.UTC()),
		},
	})
}

func (d *OperationsTableDAL) Get(ctx context.Context, subscriptionID, operationID uuid.UUID) (*domain.OperationRecord, error) {
	var row operationRow
	if err := d.table.get(ctx, subscriptionID.String(), operationID.String(), &row); err != nil {
		return nil, err
	}

	return row.toRecord()
}

// GetAll returns the ledger rows of a subscription.
func (d *OperationsTableDAL) GetAll(ctx context.Context, subscriptionID uuid.UUID) ([]*domain.OperationRecord, error) {
	records := make([]*domain.OperationRecord, 0)

	err := d.table.list(ctx, subscriptionID.String(), func(data []byte) error {
		var row operationRow
		if err := json.Unmarshal(data, &row); err != nil {
			return err
		}

		record, err := row.toRecord()
		if err != nil {
			return err
		}

		records = append(records, record)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r operationRow) toRecord() (*domain.OperationRecord, error) {
	subscriptionID, err := uuid.Parse(r.PartitionKey)
	if err != nil {
		return nil, err
	}

	operationID, err := uuid.Parse(r.RowKey)
	if err != nil {
		return nil, err
	}

	return &domain.OperationRecord{
		SubscriptionID: subscriptionID,
		OperationID:    operationID,
		Action:         domain.WebhookAction(r.Action),
		Status:         domain.OperationStatus(r.Status),
		PlanID:         r.PlanID,
		Quantity:       r.Quantity,
		Source:         domain.OperationSource(r.Source),
		Processed:      r.Processed,
		RecordedAt:     r.RecordedAt,
	}, nil
}
