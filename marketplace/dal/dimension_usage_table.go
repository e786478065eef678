package dal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/google/uuid"

	"github.com/doitintl/hello/commandcenter/marketplace/domain"
)

const DimensionUsageTable = "marketplacedimensions"

type DimensionUsageTableDAL struct {
	table *ledgerTable
	now   func() time.Time
}

type dimensionUsageRow struct {
	PartitionKey       string
	RowKey             string
	UsageEventID       string `json:"UsageEventId"`
	Status             string
	Quantity           int64 `json:",string"`
	Dimension          string
	EffectiveStartTime time.Time
	PlanID             string `json:"PlanId"`
}

func NewDimensionUsageTableDAL(serviceClient *aztables.ServiceClient) *DimensionUsageTableDAL {
	return NewDimensionUsageTableDALWithClient(serviceClient.NewClient(DimensionUsageTable))
}

func NewDimensionUsageTableDALWithClient(client TableAPI) *DimensionUsageTableDAL {
	return &DimensionUsageTableDAL{
		table: &ledgerTable{client: client},
		now:   time.Now,
	}
}

// Record appends the metering result of a usage event, keyed by the time it was sent.
func (d *DimensionUsageTableDAL) Record(ctx context.Context, subscriptionID uuid.UUID, result domain.UsageEventResult) error {
	sentAt := d.now().UTC()

	return d.table.upsert(ctx, aztables.EDMEntity{
		Entity: aztables.Entity{
			PartitionKey: subscriptionID.String(),
			RowKey:       sentAt.Format(time.RFC3339Nano),
		},
		Properties: map[string]interface{}{
			"UsageEventId":       result.UsageEventID,
			"Status":             string(result.Status),
			"Quantity":           aztables.EDMInt64(result.Quantity),
			"Dimension":          result.Dimension,
			"EffectiveStartTime": aztables.EDMDateTime(result.EffectiveStartTime.UTC()),
			"PlanId":             result.PlanID,
		},
	})
}

func (d *DimensionUsageTableDAL) GetAll(ctx context.Context, subscriptionID uuid.UUID) ([]*domain.DimensionUsageRecord, error) {
	records := make([]*domain.DimensionUsageRecord, 0)

	err := d.table.list(ctx, subscriptionID.String(), func(data []byte) error {
		var row dimensionUsageRow
		if err := json.Unmarshal(data, &row); err != nil {
			return err
		}

		sentAt, err := time.Parse(time.RFC3339Nano, row.RowKey)
		if err != nil {
			return err
		}

		records = append(records, &domain.DimensionUsageRecord{
			SubscriptionID:     subscriptionID,
			SentAt:             sentAt,
			UsageEventID:       row.UsageEventID,
			Status:             domain.UsageEventStatus(row.Status),
			Quantity:           row.Quantity,
			Dimension:          row.Dimension,
			EffectiveStartTime: row.EffectiveStartTime,
			PlanID:             row.PlanID,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}
