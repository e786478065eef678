package dal

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
)

// fakeTable keeps entities in memory and merges upserts the way the table service does.
type fakeTable struct {
	mu sync.Mutex

	entities map[string]map[string]map[string]interface{}

	createCalls int
	createErr   error
	upsertErr   error
	getErr      error
	listErr     error
	filters     []string
	upsertModes []aztables.UpdateMode
}

func newFakeTable() *fakeTable {
	return &fakeTable{entities: map[string]map[string]map[string]interface{}{}}
}

func responseError(status int, code string) error {
	req, _ := http.NewRequest(http.MethodGet, "https://account.table.core.windows.net/ledger", nil)

	return &azcore.ResponseError{
		ErrorCode:  code,
		StatusCode: status,
		RawResponse: &http.Response{
			StatusCode: status,
			Header:     http.Header{},
			Body:       http.NoBody,
			Request:    req,
		},
	}
}

func (f *fakeTable) CreateTable(_ context.Context, _ *aztables.CreateTableOptions) (aztables.CreateTableResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++

	return aztables.CreateTableResponse{}, f.createErr
}

func (f *fakeTable) UpsertEntity(_ context.Context, entity []byte, options *aztables.UpsertEntityOptions) (aztables.UpsertEntityResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.upsertErr != nil {
		return aztables.UpsertEntityResponse{}, f.upsertErr
	}

	f.upsertModes = append(f.upsertModes, options.UpdateMode)

	var values map[string]interface{}
	if err := json.Unmarshal(entity, &values); err != nil {
		return aztables.UpsertEntityResponse{}, err
	}

	pk, _ := values["PartitionKey"].(string)
	rk, _ := values["RowKey"].(string)

	partition, ok := f.entities[pk]
	if !ok {
		partition = map[string]map[string]interface{}{}
		f.entities[pk] = partition
	}

	row, ok := partition[rk]
	if !ok {
		row = map[string]interface{}{}
		partition[rk] = row
	}

	for k, v := range values {
		row[k] = v
	}

	return aztables.UpsertEntityResponse{}, nil
}

func (f *fakeTable) GetEntity(_ context.Context, partitionKey string, rowKey string, _ *aztables.GetEntityOptions) (aztables.GetEntityResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return aztables.GetEntityResponse{}, f.getErr
	}

	row, ok := f.entities[partitionKey][rowKey]
	if !ok {
		return aztables.GetEntityResponse{}, responseError(http.StatusNotFound, "ResourceNotFound")
	}

	data, err := json.Marshal(row)
	if err != nil {
		return aztables.GetEntityResponse{}, err
	}

	return aztables.GetEntityResponse{Value: data}, nil
}

// NewListEntitiesPager serves one entity per page.
func (f *fakeTable) NewListEntitiesPager(options *aztables.ListEntitiesOptions) *runtime.Pager[aztables.ListEntitiesResponse] {
	f.mu.Lock()
	defer f.mu.Unlock()

	filter := *options.Filter
	f.filters = append(f.filters, filter)

	pk := strings.TrimSuffix(strings.TrimPrefix(filter, "PartitionKey eq '"), "'")

	rowKeys := make([]string, 0, len(f.entities[pk]))
	for rk := range f.entities[pk] {
		rowKeys = append(rowKeys, rk)
	}

	sort.Strings(rowKeys)

	pages := make([][]byte, 0, len(rowKeys))

	for _, rk := range rowKeys {
		data, _ := json.Marshal(f.entities[pk][rk])
		pages = append(pages, data)
	}

	listErr := f.listErr
	next := 0

	return runtime.NewPager(runtime.PagingHandler[aztables.ListEntitiesResponse]{
		More: func(aztables.ListEntitiesResponse) bool {
			return next < len(pages)
		},
		Fetcher: func(context.Context, *aztables.ListEntitiesResponse) (aztables.ListEntitiesResponse, error) {
			if listErr != nil {
				return aztables.ListEntitiesResponse{}, listErr
			}

			if next >= len(pages) {
				return aztables.ListEntitiesResponse{}, nil
			}

			page := aztables.ListEntitiesResponse{Entities: [][]byte{pages[next]}}
			next++

			return page, nil
		},
	})
}
