// Package elasticsearch is the Destination Store backed by an Elasticsearch cluster.
package elasticsearch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Config describes the cluster connection and index naming.
type Config struct {
	URL         string
	Username    string
	Password    string
	CACert      []byte
	BlocksIndex string
	MetaIndex   string
	// Transport overrides the HTTP transport, mainly for tests.
	Transport http.RoundTripper
}

// Repository stores block documents and the checkpoint record.
type Repository struct {
	client      *elasticsearch.Client
	blocksIndex string
	metaIndex   string
	metrics     Metrics

	mu      sync.Mutex
	version checkpointVersion
}

// NewRepository builds a Repository. It does not contact the cluster; call Bootstrap.
func NewRepository(cfg Config, metrics Metrics) (*Repository, error) {
	if cfg.URL == "" {
		return nil, errors.New("elasticsearch url is required")
	}
	if cfg.BlocksIndex == "" || cfg.MetaIndex == "" {
		return nil, errors.New("elasticsearch index names are required")
	}
	if metrics == nil {
		return nil, errors.New("repository metrics is required")
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    []string{cfg.URL},
		Username:     cfg.Username,
		Password:     cfg.Password,
		CACert:       cfg.CACert,
		Transport:    cfg.Transport,
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	return &Repository{
		client:      client,
		blocksIndex: cfg.BlocksIndex,
		metaIndex:   cfg.MetaIndex,
		metrics:     metrics,
	}, nil
}

func closeBody(res *esapi.Response) {
	if res == nil || res.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}

// responseError turns an error response into an error carrying status, type and reason.
func responseError(res *esapi.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))

	var payload struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Error) > 0 {
		var detail struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		}
		if err := json.Unmarshal(payload.Error, &detail); err == nil && detail.Type != "" {
			return fmt.Errorf("status %d: %s: %s", res.StatusCode, detail.Type, detail.Reason)
		}
		return fmt.Errorf("status %d: %s", res.StatusCode, strings.Trim(string(payload.Error), `"`))
	}
	return fmt.Errorf("status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
}
