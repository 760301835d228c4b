package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/goodnatureofminers/blockindexer/internal/model"
)

type bulkAction struct {
	Index bulkTarget `json:"index"`
}

type bulkTarget struct {
	Index string `json:"_index"`
	ID    string `json:"_id"`
}

type bulkResponse struct {
	Errors bool                         `json:"errors"`
	Items  []map[string]bulkItemOutcome `json:"items"`
}

type bulkItemOutcome struct {
	ID     string `json:"_id"`
	Status int    `json:"status"`
	Error  *struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error,omitempty"`
}

// BulkUpsert indexes docs by block number in one _bulk call and reports an outcome per item.
// A returned error means the call itself failed.
func (r *Repository) BulkUpsert(ctx context.Context, docs []model.IndexedBlock) ([]model.BulkOutcome, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("bulk_upsert", err, start)
	}()

	if len(docs) == 0 {
		return nil, nil
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for _, doc := range docs {
		if err = enc.Encode(bulkAction{Index: bulkTarget{Index: r.blocksIndex, ID: doc.DocumentID()}}); err != nil {
			return nil, fmt.Errorf("encode bulk action: %w", err)
		}
		if err = enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode block %d: %w", doc.Number, err)
		}
	}

	res, err := r.client.Bulk(&body,
		r.client.Bulk.WithContext(ctx),
		r.client.Bulk.WithIndex(r.blocksIndex),
	)
	if err != nil {
		return nil, fmt.Errorf("bulk request: %w", err)
	}
	defer closeBody(res)

	if res.IsError() {
		err = fmt.Errorf("bulk request: %w", responseError(res))
		return nil, err
	}

	var parsed bulkResponse
	if err = json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode bulk response: %w", err)
	}

	outcomes := make([]model.BulkOutcome, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		for action, result := range item {
			number, parseErr := strconv.ParseUint(result.ID, 10, 64)
			if parseErr != nil {
				err = fmt.Errorf("bulk response item id %q: %w", result.ID, parseErr)
				return nil, err
			}
			outcomes = append(outcomes, model.BulkOutcome{Number: number, Err: itemError(action, result)})
		}
	}
	return outcomes, nil
}

func itemError(action string, item bulkItemOutcome) error {
	if item.Status >= 200 && item.Status < 300 {
		return nil
	}
	if item.Error != nil {
		return fmt.Errorf("%s block %s: status %d: %s: %s", action, item.ID, item.Status, item.Error.Type, item.Error.Reason)
	}
	return fmt.Errorf("%s block %s: status %d", action, item.ID, item.Status)
}
