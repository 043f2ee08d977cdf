package audit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/Radpid/radGPT/pkg/common/logger"
	"github.com/gorilla/mux"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type fakeLister struct {
	entries   []Entry
	err       error
	lastLimit int
}

func (f *fakeLister) List(ctx context.Context, limit int) ([]Entry, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.entries) {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func newAuditRouter(store EntryLister) *mux.Router {
	r := mux.NewRouter()
	NewHandler(store).Register(r.PathPrefix("/audit").Subrouter())
	return r
}

func TestAuditListEndpoint(t *testing.T) {
	store := &fakeLister{entries: []Entry{
		{ID: 2, EventID: "b", EventType: "chat_patient", Source: "chat-service", OccurredAt: time.Now()},
		{ID: 1, EventID: "a", EventType: "history_cleared", Source: "chat-service", OccurredAt: time.Now()},
	}}
	router := newAuditRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var entries []Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(entries) != 2 || entries[0].EventID != "b" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if store.lastLimit != 100 {
		t.Fatalf("expected default limit 100, got %d", store.lastLimit)
	}
}

func TestAuditListEndpointLimit(t *testing.T) {
	store := &fakeLister{entries: []Entry{{ID: 1, EventID: "a"}, {ID: 2, EventID: "b"}}}
	router := newAuditRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit?limit=1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var entries []Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestAuditListEndpointFailure(t *testing.T) {
	router := newAuditRouter(&fakeLister{err: errors.New("db down")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
