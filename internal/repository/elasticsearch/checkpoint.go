package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/goodnatureofminers/blockindexer/internal/model"
	"github.com/goodnatureofminers/blockindexer/pkg/safe"
)

const refreshWaitFor = "wait_for"

// checkpointVersion is the last observed state of the checkpoint document, used for
// compare-and-set writes.
type checkpointVersion struct {
	known       bool
	exists      bool
	seqNo       int64
	primaryTerm int64
}

type getCheckpointResponse struct {
	Found       bool             `json:"found"`
	SeqNo       int64            `json:"_seq_no"`
	PrimaryTerm int64            `json:"_primary_term"`
	Source      model.Checkpoint `json:"_source"`
}

type writeResponse struct {
	SeqNo       int64 `json:"_seq_no"`
	PrimaryTerm int64 `json:"_primary_term"`
}

// GetCheckpoint reads the checkpoint document and remembers its version.
func (r *Repository) GetCheckpoint(ctx context.Context) (model.Checkpoint, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("get_checkpoint", err, start)
	}()

	res, err := r.client.Get(r.metaIndex, model.CheckpointID, r.client.Get.WithContext(ctx))
	if err != nil {
		return model.Checkpoint{}, false, fmt.Errorf("get checkpoint: %w", err)
	}
	defer closeBody(res)

	if res.StatusCode == http.StatusNotFound {
		r.setVersion(checkpointVersion{known: true})
		return model.Checkpoint{}, false, nil
	}
	if res.IsError() {
		err = fmt.Errorf("get checkpoint: %w", responseError(res))
		return model.Checkpoint{}, false, err
	}

	var parsed getCheckpointResponse
	if err = json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return model.Checkpoint{}, false, fmt.Errorf("decode checkpoint: %w", err)
	}
	if !parsed.Found {
		r.setVersion(checkpointVersion{known: true})
		return model.Checkpoint{}, false, nil
	}

	r.setVersion(checkpointVersion{known: true, exists: true, seqNo: parsed.SeqNo, primaryTerm: parsed.PrimaryTerm})
	return parsed.Source, true, nil
}

// PutCheckpoint replaces the checkpoint document if it is unchanged since the last read or
// write. A concurrent change yields model.ErrCheckpointConflict.
func (r *Repository) PutCheckpoint(ctx context.Context, cp model.Checkpoint) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("put_checkpoint", err, start)
	}()

	version := r.currentVersion()
	if !version.known {
		if _, _, err = r.GetCheckpoint(ctx); err != nil {
			return err
		}
		version = r.currentVersion()
	}

	opts := []func(*esapi.IndexRequest){
		r.client.Index.WithContext(ctx),
		r.client.Index.WithDocumentID(model.CheckpointID),
		r.client.Index.WithRefresh(refreshWaitFor),
	}
	if version.exists {
		seqNo, convErr := safe.Int(version.seqNo)
		if convErr != nil {
			err = fmt.Errorf("checkpoint seq_no: %w", convErr)
			return err
		}
		primaryTerm, convErr := safe.Int(version.primaryTerm)
		if convErr != nil {
			err = fmt.Errorf("checkpoint primary_term: %w", convErr)
			return err
		}
		opts = append(opts, r.client.Index.WithIfSeqNo(seqNo), r.client.Index.WithIfPrimaryTerm(primaryTerm))
	} else {
		opts = append(opts, r.client.Index.WithOpType("create"))
	}

	res, err := r.client.Index(r.metaIndex, esutil.NewJSONReader(cp), opts...)
	if err != nil {
		return fmt.Errorf("put checkpoint: %w", err)
	}
	defer closeBody(res)

	if res.StatusCode == http.StatusConflict {
		r.setVersion(checkpointVersion{})
		err = fmt.Errorf("put checkpoint %d: %w", cp.LastIndexedBlock, model.ErrCheckpointConflict)
		return err
	}
	if res.IsError() {
		err = fmt.Errorf("put checkpoint: %w", responseError(res))
		return err
	}

	var parsed writeResponse
	if err = json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		r.setVersion(checkpointVersion{})
		return fmt.Errorf("decode checkpoint write: %w", err)
	}
	r.setVersion(checkpointVersion{known: true, exists: true, seqNo: parsed.SeqNo, primaryTerm: parsed.PrimaryTerm})
	return nil
}

// DeleteCheckpoint removes the checkpoint document. A missing document is not an error.
func (r *Repository) DeleteCheckpoint(ctx context.Context) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("delete_checkpoint", err, start)
	}()

	res, err := r.client.Delete(r.metaIndex, model.CheckpointID,
		r.client.Delete.WithContext(ctx),
		r.client.Delete.WithRefresh(refreshWaitFor),
	)
	if err != nil {
		return fmt.Errorf("delete checkpoint: %w", err)
	}
	defer closeBody(res)

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		err = fmt.Errorf("delete checkpoint: %w", responseError(res))
		return err
	}
	r.setVersion(checkpointVersion{known: true})
	return nil
}

func (r *Repository) currentVersion() checkpointVersion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

func (r *Repository) setVersion(v checkpointVersion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.version = v
}
