package elasticsearch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

type storedDoc struct {
	source      json.RawMessage
	seqNo       int64
	primaryTerm int64
}

// fakeCluster is a minimal in-memory Elasticsearch speaking the endpoints the repository uses.
type fakeCluster struct {
	mu        sync.Mutex
	indices   map[string]bool
	docs      map[string]map[string]storedDoc
	seqNo     int64
	reject    map[string]string
	bulkFail  int
	requests  []string
	bulkLines [][]byte
}

func newFakeCluster(t *testing.T) (*fakeCluster, *httptest.Server) {
	t.Helper()
	c := &fakeCluster{
		indices: make(map[string]bool),
		docs:    make(map[string]map[string]storedDoc),
		reject:  make(map[string]string),
	}
	srv := httptest.NewServer(http.HandlerFunc(c.serve))
	t.Cleanup(srv.Close)
	return c, srv
}

func (c *fakeCluster) serve(w http.ResponseWriter, req *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	c.requests = append(c.requests, req.Method+" "+req.URL.RequestURI())

	parts := strings.Split(strings.Trim(req.URL.Path, "/"), "/")
	switch {
	case req.URL.Path == "/":
		writeJSON(w, http.StatusOK, map[string]any{"version": map[string]any{"number": "8.17.0"}, "tagline": "You Know, for Search"})
	case len(parts) >= 1 && parts[len(parts)-1] == "_bulk":
		c.bulk(w, req)
	case len(parts) == 1 && req.Method == http.MethodHead:
		if c.indices[parts[0]] {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case len(parts) == 1 && req.Method == http.MethodPut:
		if c.indices[parts[0]] {
			writeJSON(w, http.StatusBadRequest, esError("resource_already_exists_exception", "index already exists"))
			return
		}
		c.indices[parts[0]] = true
		writeJSON(w, http.StatusOK, map[string]any{"acknowledged": true, "index": parts[0]})
	case len(parts) == 3 && parts[1] == "_doc":
		c.document(w, req, parts[0], parts[2])
	default:
		writeJSON(w, http.StatusBadRequest, esError("illegal_argument_exception", "unexpected "+req.Method+" "+req.URL.Path))
	}
}

func (c *fakeCluster) bulk(w http.ResponseWriter, req *http.Request) {
	if c.bulkFail > 0 {
		c.bulkFail--
		writeJSON(w, http.StatusServiceUnavailable, esError("cluster_block_exception", "blocked"))
		return
	}

	scanner := bufio.NewScanner(req.Body)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	var (
		items  []map[string]any
		errors bool
	)
	for scanner.Scan() {
		var action map[string]struct {
			Index string `json:"_index"`
			ID    string `json:"_id"`
		}
		line := append([]byte(nil), scanner.Bytes()...)
		c.bulkLines = append(c.bulkLines, line)
		if err := json.Unmarshal(line, &action); err != nil {
			writeJSON(w, http.StatusBadRequest, esError("parse_exception", err.Error()))
			return
		}
		if !scanner.Scan() {
			writeJSON(w, http.StatusBadRequest, esError("parse_exception", "missing source line"))
			return
		}
		source := append([]byte(nil), scanner.Bytes()...)
		c.bulkLines = append(c.bulkLines, source)

		target := action["index"]
		if reason, ok := c.reject[target.ID]; ok {
			errors = true
			items = append(items, map[string]any{"index": map[string]any{
				"_index": target.Index, "_id": target.ID, "status": http.StatusTooManyRequests,
				"error": map[string]any{"type": "es_rejected_execution_exception", "reason": reason},
			}})
			continue
		}
		status := c.put(target.Index, target.ID, source)
		items = append(items, map[string]any{"index": map[string]any{"_index": target.Index, "_id": target.ID, "status": status}})
	}
	writeJSON(w, http.StatusOK, map[string]any{"took": 1, "errors": errors, "items": items})
}

func (c *fakeCluster) document(w http.ResponseWriter, req *http.Request, index, id string) {
	current, exists := c.docs[index][id]
	switch req.Method {
	case http.MethodGet:
		if !exists {
			writeJSON(w, http.StatusNotFound, map[string]any{"_index": index, "_id": id, "found": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"_index": index, "_id": id, "found": true,
			"_seq_no": current.seqNo, "_primary_term": current.primaryTerm, "_source": current.source,
		})
	case http.MethodPut, http.MethodPost:
		q := req.URL.Query()
		if q.Get("op_type") == "create" && exists {
			writeJSON(w, http.StatusConflict, esError("version_conflict_engine_exception", "document already exists"))
			return
		}
		if raw := q.Get("if_seq_no"); raw != "" {
			seqNo, _ := strconv.ParseInt(raw, 10, 64)
			term, _ := strconv.ParseInt(q.Get("if_primary_term"), 10, 64)
			if !exists || current.seqNo != seqNo || current.primaryTerm != term {
				writeJSON(w, http.StatusConflict, esError("version_conflict_engine_exception", "required seqNo mismatch"))
				return
			}
		}
		body, _ := io.ReadAll(req.Body)
		status := c.put(index, id, body)
		doc := c.docs[index][id]
		writeJSON(w, status, map[string]any{"_index": index, "_id": id, "_seq_no": doc.seqNo, "_primary_term": doc.primaryTerm})
	case http.MethodDelete:
		if !exists {
			writeJSON(w, http.StatusNotFound, map[string]any{"result": "not_found"})
			return
		}
		delete(c.docs[index], id)
		writeJSON(w, http.StatusOK, map[string]any{"result": "deleted"})
	}
}

func (c *fakeCluster) put(index, id string, source []byte) int {
	if c.docs[index] == nil {
		c.docs[index] = make(map[string]storedDoc)
	}
	_, existed := c.docs[index][id]
	c.seqNo++
	c.docs[index][id] = storedDoc{source: source, seqNo: c.seqNo, primaryTerm: 1}
	if existed {
		return http.StatusOK
	}
	return http.StatusCreated
}

func (c *fakeCluster) count(index string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs[index])
}

func (c *fakeCluster) source(index, id string) json.RawMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.docs[index][id].source
}

func (c *fakeCluster) lastRequest(prefix string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.requests) - 1; i >= 0; i-- {
		if strings.HasPrefix(c.requests[i], prefix) {
			return c.requests[i]
		}
	}
	return ""
}

func esError(typ, reason string) map[string]any {
	return map[string]any{"error": map[string]any{"type": typ, "reason": reason}, "status": 0}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(fmt.Sprintf("encode fake response: %v", err))
	}
}
