package dal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
)

var ErrRecordNotFound = errors.New("ledger record not found")

// TableAPI is the part of aztables.Client used by the ledgers.
type TableAPI interface {
	CreateTable(ctx context.Context, options *aztables.CreateTableOptions) (aztables.CreateTableResponse, error)
	UpsertEntity(ctx context.Context, entity []byte, options *aztables.UpsertEntityOptions) (aztables.UpsertEntityResponse, error)
	GetEntity(ctx context.Context, partitionKey string, rowKey string, options *aztables.GetEntityOptions) (aztables.GetEntityResponse, error)
	NewListEntitiesPager(options *aztables.ListEntitiesOptions) *runtime.Pager[aztables.ListEntitiesResponse]
}

// ledgerTable creates its table on the first write and remembers success.
type ledgerTable struct {
	client TableAPI

	mu      sync.Mutex
	created bool
}

func (t *ledgerTable) ensureCreated(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.created {
		return nil
	}

	if _, err := t.client.CreateTable(ctx, nil); err != nil && !hasStatus(err, http.StatusConflict) {
		return fmt.Errorf("create table: %w", err)
	}

	t.created = true

	return nil
}

func (t *ledgerTable) upsert(ctx context.Context, entity aztables.EDMEntity) error {
	if err := t.ensureCreated(ctx); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return err
	}

	_, err = t.client.UpsertEntity(ctx, data, &aztables.UpsertEntityOptions{
		UpdateMode: aztables.UpdateModeMerge,
	})

	return err
}

func (t *ledgerTable) get(ctx context.Context, partitionKey, rowKey string, v interface{}) error {
	resp, err := t.client.GetEntity(ctx, partitionKey, rowKey, nil)
	if err != nil {
		if hasStatus(err, http.StatusNotFound) {
			return ErrRecordNotFound
		}

		return err
	}

	return json.Unmarshal(resp.Value, v)
}

// list walks every entity of a partition. A missing table is an empty partition.
func (t *ledgerTable) list(ctx context.Context, partitionKey string, each func(data []byte) error) error {
	filter := fmt.Sprintf("PartitionKey eq '%s'", strings.ReplaceAll(partitionKey, "'", "''"))

	pager := t.client.NewListEntitiesPager(&aztables.ListEntitiesOptions{
		Filter: &filter,
	})

	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if hasStatus(err, http.StatusNotFound) {
				return nil
			}

			return err
		}

		for _, data := range page.Entities {
			if err := each(data); err != nil {
				return err
			}
		}
	}

	return nil
}

func hasStatus(err error, status int) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == status
}
