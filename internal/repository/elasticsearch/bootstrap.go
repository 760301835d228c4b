package elasticsearch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esutil"
)

var (
	unsignedLong = map[string]any{"type": "unsigned_long"}
	keyword      = map[string]any{"type": "keyword"}
)

func blocksMapping() map[string]any {
	return map[string]any{
		"settings": map[string]any{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]any{
			"properties": map[string]any{
				"number":            unsignedLong,
				"hash":              keyword,
				"parent_hash":       keyword,
				"timestamp":         unsignedLong,
				"miner":             keyword,
				"gas_used":          unsignedLong,
				"gas_limit":         unsignedLong,
				"difficulty":        keyword,
				"total_difficulty":  keyword,
				"size":              unsignedLong,
				"uncles":            keyword,
				"transaction_count": unsignedLong,
				"indexed_at":        map[string]any{"type": "date"},
				"transactions": map[string]any{
					"type": "nested",
					"properties": map[string]any{
						"hash":              keyword,
						"from":              keyword,
						"to":                keyword,
						"value":             keyword,
						"gas":               unsignedLong,
						"gas_price":         keyword,
						"nonce":             unsignedLong,
						"transaction_index": unsignedLong,
						"position":          unsignedLong,
						"input":             map[string]any{"type": "keyword", "ignore_above": 256},
					},
				},
			},
		},
	}
}

func metaMapping() map[string]any {
	return map[string]any{
		"settings": map[string]any{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]any{
			"properties": map[string]any{
				"last_indexed_block": unsignedLong,
				"updated_at":         map[string]any{"type": "date"},
			},
		},
	}
}

// Bootstrap creates the blocks and meta indices when they do not exist.
func (r *Repository) Bootstrap(ctx context.Context) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("bootstrap", err, start)
	}()

	if err = r.ensureIndex(ctx, r.blocksIndex, blocksMapping()); err != nil {
		return err
	}
	err = r.ensureIndex(ctx, r.metaIndex, metaMapping())
	return err
}

func (r *Repository) ensureIndex(ctx context.Context, name string, body map[string]any) error {
	res, err := r.client.Indices.Exists([]string{name}, r.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", name, err)
	}
	closeBody(res)
	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("check index %s: unexpected status %d", name, res.StatusCode)
	}

	res, err = r.client.Indices.Create(name,
		r.client.Indices.Create.WithContext(ctx),
		r.client.Indices.Create.WithBody(esutil.NewJSONReader(body)),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	defer closeBody(res)

	if res.IsError() {
		createErr := responseError(res)
		if strings.Contains(createErr.Error(), "resource_already_exists_exception") {
			return nil
		}
		return fmt.Errorf("create index %s: %w", name, createErr)
	}
	return nil
}
