package posv2

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/NetRider88/POSV2/imagecheck"
	"github.com/NetRider88/POSV2/observability"
	"github.com/NetRider88/POSV2/schema"
)

// Validator is the root payload validation engine. It is safe for
// concurrent use: every validation call operates on its own payload and
// produces its own result, and the configuration is immutable after New.
type Validator struct {
	config  Config
	overlay *schema.Overlay
	checker *imagecheck.Checker
	metrics *observability.Metrics
	tracer  *observability.Tracer
	logger  *slog.Logger
}

// Option configures a Validator instance.
type Option func(*Validator) error

// New creates a new Validator with the given options.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		config:  DefaultConfig(),
		overlay: schema.NewOverlay(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	v.checker = imagecheck.NewChecker(imagecheck.Config{
		RequestTimeout: v.config.RequestTimeout,
		UserAgent:      v.config.UserAgent,
		Metrics:        v.metrics,
		Tracer:         v.tracer,
	}, v.logger)
	return v, nil
}

// WithLogger sets the structured logger for the Validator instance.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) error {
		v.logger = logger
		return nil
	}
}

// WithRequestTimeout sets the HTTP timeout per image fetch.
func WithRequestTimeout(d time.Duration) Option {
	return func(v *Validator) error {
		v.config.RequestTimeout = d
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent on image fetches.
func WithUserAgent(ua string) Option {
	return func(v *Validator) error {
		v.config.UserAgent = ua
		return nil
	}
}

// WithMetrics sets the Prometheus metrics recorded by the Validator.
func WithMetrics(m *observability.Metrics) Option {
	return func(v *Validator) error {
		v.metrics = m
		return nil
	}
}

// WithTracer sets the tracer used to span image fetch operations.
func WithTracer(t *observability.Tracer) Option {
	return func(v *Validator) error {
		v.tracer = t
		return nil
	}
}

// WithOverlaySchema registers a JSON Schema overlay for a catalog item
// type. Overlay violations are appended after the built-in structural
// checks on every catalog push validation.
func WithOverlaySchema(t schema.ItemType, doc any) Option {
	return func(v *Validator) error {
		if err := v.overlay.Register(t, doc); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidOverlaySchema, err.Error())
		}
		return nil
	}
}

// Overlay returns the overlay schema registry, allowing schemas to be
// registered or replaced after construction.
func (v *Validator) Overlay() *schema.Overlay {
	return v.overlay
}
