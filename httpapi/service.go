// Package httpapi exposes the validation engine over HTTP: a webhook
// simulator endpoint plus a browsable history of recorded outcomes.
package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	posv2 "github.com/NetRider88/POSV2"
	"github.com/NetRider88/POSV2/history"
	"github.com/NetRider88/POSV2/id"
	"github.com/NetRider88/POSV2/observability"
	"github.com/NetRider88/POSV2/payload"
	"github.com/NetRider88/POSV2/result"
)

// maxBodyBytes caps accepted request bodies at 5MB. Catalog pushes are
// large but bounded; anything bigger is rejected before validation.
const maxBodyBytes = 5 << 20

// Service wires the validator and history store into HTTP handlers.
type Service struct {
	validator *posv2.Validator
	store     history.Store
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewService creates the HTTP service. The store and metrics are
// optional; without a store no history is recorded.
func NewService(v *posv2.Validator, store history.Store, metrics *observability.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		validator: v,
		store:     store,
		metrics:   metrics,
		logger:    logger,
	}
}

// RegisterRoutes wires the simulator and history routes.
func (s *Service) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/validate", s.validateHandler).Methods("POST")
	r.HandleFunc("/api/history", s.listHistoryHandler).Methods("GET")
	r.HandleFunc("/api/history", s.clearHistoryHandler).Methods("DELETE")
	r.HandleFunc("/health", s.healthHandler).Methods("GET")
}

// validateHandler runs the validation pipeline over the posted body.
//
// Query parameters:
//   - images: "true" to run the image dimension pass
//   - criteria: preset name for the image pass (default "standard")
//
// The handler never rejects a payload for being invalid; invalidity is
// the response body's job. Only transport problems (unreadable body,
// unknown preset) produce non-200 statuses.
func (s *Service) validateHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "unreadable request body", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	res := s.runValidation(w, r, string(body))
	if res == nil {
		return // error already written
	}

	if s.metrics != nil {
		s.metrics.RecordValidation(string(res.RequestType), res.IsValid)
	}

	if s.store != nil {
		entry := history.New(res, json.RawMessage(body))
		entry.SessionID = s.sessionID(r)
		if appendErr := s.store.Append(ctx, entry); appendErr != nil {
			s.logger.ErrorContext(ctx, "history append failed", "error", appendErr)
		} else if s.metrics != nil {
			if n, countErr := s.store.Count(ctx); countErr == nil {
				s.metrics.SetHistoryEntries(n)
			}
		}
		// Echo the session so clients can thread follow-up requests.
		w.Header().Set("X-Session-ID", entry.SessionID.String())
	}

	writeJSON(w, http.StatusOK, res)
}

// runValidation picks the pipeline variant from the query parameters.
// A nil return means an error response was already written.
func (s *Service) runValidation(w http.ResponseWriter, r *http.Request, body string) *result.ValidationResult {
	q := r.URL.Query()
	if q.Get("images") != "true" {
		return s.validator.ValidateRequest(body)
	}

	preset := q.Get("criteria")
	if preset == "" {
		preset = "standard"
	}
	res, err := s.validator.ValidateWithPreset(r.Context(), body, preset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}
	return res
}

func (s *Service) listHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "history is not enabled", http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	opts := history.ListOpts{
		RequestType: payload.RequestType(q.Get("type")),
		OnlyInvalid: q.Get("invalid") == "true",
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		opts.Offset = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		opts.Limit = v
	}

	entries, err := s.store.List(r.Context(), opts)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "history list failed", "error", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	total, err := s.store.Count(r.Context())
	if err != nil {
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"total":   total,
	})
}

func (s *Service) clearHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "history is not enabled", http.StatusNotFound)
		return
	}
	if err := s.store.Clear(r.Context()); err != nil {
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	if s.metrics != nil {
		s.metrics.SetHistoryEntries(0)
	}
	w.WriteHeader(http.StatusNoContent)
}

// sessionID resolves the simulator session for a request: a valid
// X-Session-ID header is honored, anything else gets a freshly minted
// session.
func (s *Service) sessionID(r *http.Request) id.ID {
	if sid, err := id.ParseSessionID(r.Header.Get("X-Session-ID")); err == nil && !sid.IsNil() {
		return sid
	}
	return id.NewSessionID()
}

func (s *Service) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
