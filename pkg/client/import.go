package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/straye-as/calltracker-api/internal/domain"
)

// ImportBatchSize is the number of rows sent per import request
const ImportBatchSize = 100

// ErrNoRows is returned when an import is started with no rows
var ErrNoRows = errors.New("no rows to import")

// ImportClients uploads rows in batches of ImportBatchSize. When a batch fails
// the import stops and the totals of the batches already accepted are
// returned together with the error.
func (c *Client) ImportClients(ctx context.Context, rows []ClientImportRecord) (*ImportResult, error) {
	return importBatches(ctx, rows, func(ctx context.Context, batch []ClientImportRecord) (*ImportResult, error) {
		var result ImportResult
		err := c.send(ctx, http.MethodPost, "/api/clients/import", domain.ImportClientsRequest{Data: batch}, &result)
		return &result, err
	})
}

// ImportCalls uploads call rows the same way as ImportClients
func (c *Client) ImportCalls(ctx context.Context, rows []CallImportRecord) (*ImportResult, error) {
	return importBatches(ctx, rows, func(ctx context.Context, batch []CallImportRecord) (*ImportResult, error) {
		var result ImportResult
		err := c.send(ctx, http.MethodPost, "/api/calls/import", domain.ImportCallsRequest{Data: batch}, &result)
		return &result, err
	})
}

func importBatches[T any](
	ctx context.Context,
	rows []T,
	send func(context.Context, []T) (*ImportResult, error),
) (*ImportResult, error) {
	total := &ImportResult{}
	if len(rows) == 0 {
		return total, ErrNoRows
	}

	batches := (len(rows) + ImportBatchSize - 1) / ImportBatchSize
	for i := 0; i < batches; i++ {
		start := i * ImportBatchSize
		end := min(start+ImportBatchSize, len(rows))

		result, err := send(ctx, rows[start:end])
		if err != nil {
			return total, fmt.Errorf("batch %d of %d (rows %d-%d): %w", i+1, batches, start+1, end, err)
		}
		total.Add(*result)
	}
	return total, nil
}
