package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	posv2 "github.com/NetRider88/POSV2"
	"github.com/NetRider88/POSV2/history"
	"github.com/NetRider88/POSV2/history/memory"
	"github.com/NetRider88/POSV2/httpapi"
	"github.com/NetRider88/POSV2/observability"
	"github.com/NetRider88/POSV2/result"
)

func newTestServer(t *testing.T, store history.Store) *httptest.Server {
	return newTestServerWithMetrics(t, store, nil)
}

func newTestServerWithMetrics(t *testing.T, store history.Store, metrics *observability.Metrics) *httptest.Server {
	t.Helper()

	v, err := posv2.New()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	r := mux.NewRouter()
	httpapi.NewService(v, store, metrics, nil).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

const orderBody = `{"orderId":"o1","customerDetails":{"name":"A","phone":"1"},"items":[{"id":"i1","quantity":1,"price":10}],"totalAmount":10,"currency":"AED"}`

func postValidate(t *testing.T, srv *httptest.Server, path, body string) result.ValidationResult {
	t.Helper()

	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	var res result.ValidationResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res
}

func TestValidateEndpointValidOrder(t *testing.T) {
	srv := newTestServer(t, memory.New())

	res := postValidate(t, srv, "/api/validate", orderBody)

	if !res.IsValid {
		t.Fatalf("expected valid, got errors: %v", res.Errors)
	}
	if res.RequestType != "Order Payload" {
		t.Fatalf("unexpected request type %q", res.RequestType)
	}
}

func TestValidateEndpointInvalidPayloadStill200(t *testing.T) {
	srv := newTestServer(t, memory.New())

	res := postValidate(t, srv, "/api/validate", `{"items":{}}`)

	if res.IsValid {
		t.Fatal("expected invalid")
	}
	if res.RequestType != "Unknown" {
		t.Fatalf("unexpected request type %q", res.RequestType)
	}
}

func TestValidateEndpointUnknownPreset(t *testing.T) {
	srv := newTestServer(t, memory.New())

	resp, err := http.Post(srv.URL+"/api/validate?images=true&criteria=gigantic", "application/json", strings.NewReader(orderBody))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestValidateEndpointRecordsHistory(t *testing.T) {
	store := memory.New()
	srv := newTestServer(t, store)

	postValidate(t, srv, "/api/validate", orderBody)
	postValidate(t, srv, "/api/validate", `{"items":{}}`)

	resp, err := http.Get(srv.URL + "/api/history")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	defer resp.Body.Close()

	var page struct {
		Entries []history.Entry `json:"entries"`
		Total   int             `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if page.Total != 2 || len(page.Entries) != 2 {
		t.Fatalf("expected 2 entries, got total=%d len=%d", page.Total, len(page.Entries))
	}
	// Newest first: the Unknown payload was posted last.
	if page.Entries[0].RequestType != "Unknown" {
		t.Fatalf("expected newest entry first, got %q", page.Entries[0].RequestType)
	}
}

func TestHistoryFilterInvalid(t *testing.T) {
	store := memory.New()
	srv := newTestServer(t, store)

	postValidate(t, srv, "/api/validate", orderBody)
	postValidate(t, srv, "/api/validate", `{"items":{}}`)

	resp, err := http.Get(srv.URL + "/api/history?invalid=true")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	defer resp.Body.Close()

	var page struct {
		Entries []history.Entry `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(page.Entries) != 1 || page.Entries[0].IsValid {
		t.Fatalf("expected one invalid entry, got %+v", page.Entries)
	}
}

func TestClearHistory(t *testing.T) {
	store := memory.New()
	srv := newTestServer(t, store)

	postValidate(t, srv, "/api/validate", orderBody)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/history", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	n, err := store.Count(req.Context())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty history, got %d entries", n)
	}
}

func TestValidateEndpointIssuesSessionID(t *testing.T) {
	store := memory.New()
	srv := newTestServer(t, store)

	resp, err := http.Post(srv.URL+"/api/validate", "application/json", strings.NewReader(orderBody))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()

	sid := resp.Header.Get("X-Session-ID")
	if !strings.HasPrefix(sid, "sess_") {
		t.Fatalf("expected a minted session ID, got %q", sid)
	}

	// A follow-up request carrying the header joins the same session.
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/validate", strings.NewReader(orderBody))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-Session-ID", sid)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp2.Body.Close()
	if got := resp2.Header.Get("X-Session-ID"); got != sid {
		t.Fatalf("expected session %q echoed, got %q", sid, got)
	}

	entries, err := store.List(req.Context(), history.ListOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].SessionID.String() != sid || entries[1].SessionID.String() != sid {
		t.Fatalf("entries should share session %q, got %q and %q",
			sid, entries[0].SessionID.String(), entries[1].SessionID.String())
	}
}

func TestHistoryEntriesGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	srv := newTestServerWithMetrics(t, memory.New(), metrics)

	postValidate(t, srv, "/api/validate", orderBody)
	postValidate(t, srv, "/api/validate", `{"items":{}}`)

	if got := gaugeValue(t, reg, "posv2_history_entries"); got != 2 {
		t.Fatalf("expected gauge 2 after two appends, got %v", got)
	}

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/history", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()

	if got := gaugeValue(t, reg, "posv2_history_entries"); got != 0 {
		t.Fatalf("expected gauge 0 after clear, got %v", got)
	}
}

func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() == name {
			return f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestHistoryDisabled(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/history")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, memory.New())

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
