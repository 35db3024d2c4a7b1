package imagecheck

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	// Registered decoders for dimension measurement.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go.opentelemetry.io/otel/trace"

	"github.com/NetRider88/POSV2/observability"
)

// Dimensions holds measured pixel dimensions.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Result is the outcome of fetching and measuring one image URL.
// Failures are data, never faults: network errors, non-2xx responses,
// non-image bodies, and constraint violations all land in Errors with
// IsValid false.
type Result struct {
	IsValid    bool        `json:"isValid"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
	FileSize   int64       `json:"fileSize,omitempty"`
	Errors     []string    `json:"errors"`

	// FetchFailed distinguishes transport and measurement failures
	// from constraint violations.
	FetchFailed bool `json:"-"`
}

// Config holds checker configuration.
type Config struct {
	// RequestTimeout is the HTTP timeout per image fetch.
	RequestTimeout time.Duration

	// UserAgent is sent on every fetch.
	UserAgent string

	// Metrics, when set, records fetch counts and latency.
	Metrics *observability.Metrics

	// Tracer, when set, opens one span per fetch-and-measure operation.
	Tracer *observability.Tracer
}

// Checker fetches image URLs and checks them against criteria.
type Checker struct {
	client *http.Client
	config Config
	logger *slog.Logger
}

// NewChecker creates a checker with the given configuration.
func NewChecker(cfg Config, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "POSV2/1.0"
	}
	return &Checker{
		client: &http.Client{Timeout: cfg.RequestTimeout},
		config: cfg,
		logger: logger,
	}
}

// Check fetches one image URL, verifies it is image content, measures
// byte size and pixel dimensions, and evaluates every configured
// constraint. All failures for the URL are collected, not just the
// first.
func (c *Checker) Check(ctx context.Context, url string, crit Criteria) Result {
	var span trace.Span
	if c.config.Tracer != nil {
		ctx, span = c.config.Tracer.StartImageCheckSpan(ctx, url)
	}

	start := time.Now()
	res := c.fetchAndMeasure(ctx, url, crit)
	latency := time.Since(start).Seconds()

	if c.config.Metrics != nil {
		outcome := "ok"
		switch {
		case res.FetchFailed:
			outcome = "fetch_failed"
		case !res.IsValid:
			outcome = "constraint_failed"
		}
		c.config.Metrics.RecordImageFetch(outcome, latency)
	}

	if span != nil {
		w, h := 0, 0
		if res.Dimensions != nil {
			w, h = res.Dimensions.Width, res.Dimensions.Height
		}
		c.config.Tracer.EndImageCheckSpan(span, res.IsValid, w, h, len(res.Errors))
	}
	return res
}

func (c *Checker) fetchAndMeasure(ctx context.Context, url string, crit Criteria) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{
			FetchFailed: true,
			Errors:      []string{fmt.Sprintf("Error validating image: %v", err)},
		}
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "image fetch failed", "url", url, "error", err)
		return Result{
			FetchFailed: true,
			Errors:      []string{fmt.Sprintf("Error validating image: %v", err)},
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{
			FetchFailed: true,
			Errors:      []string{fmt.Sprintf("Failed to fetch image: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))},
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return Result{
			FetchFailed: true,
			Errors:      []string{fmt.Sprintf("URL does not point to an image. Content-Type: %s", contentType)},
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUploadBytes+1))
	if err != nil {
		return Result{
			FetchFailed: true,
			Errors:      []string{fmt.Sprintf("Error validating image: %v", err)},
		}
	}

	fileSize := resp.ContentLength
	if fileSize < 0 {
		fileSize = int64(len(body))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		return Result{
			FetchFailed: true,
			FileSize:    fileSize,
			Errors:      []string{fmt.Sprintf("Unable to measure image dimensions: %v", err)},
		}
	}

	dims := &Dimensions{Width: cfg.Width, Height: cfg.Height}
	errs := checkConstraints(dims, fileSize, crit)

	return Result{
		IsValid:    len(errs) == 0,
		Dimensions: dims,
		FileSize:   fileSize,
		Errors:     errs,
	}
}

// checkConstraints evaluates every configured constraint against the
// measured dimensions and byte size.
func checkConstraints(dims *Dimensions, fileSize int64, crit Criteria) []string {
	var errs []string

	if crit.MaxFileSize > 0 && fileSize > crit.MaxFileSize {
		errs = append(errs, fmt.Sprintf(
			"Image file size (%.2fMB) exceeds maximum allowed (%.2fMB)",
			float64(fileSize)/1024/1024, float64(crit.MaxFileSize)/1024/1024))
	}

	if crit.MinWidth > 0 && dims.Width < crit.MinWidth {
		errs = append(errs, fmt.Sprintf(
			"Image width (%dpx) is less than minimum required (%dpx)", dims.Width, crit.MinWidth))
	}
	if crit.MaxWidth > 0 && dims.Width > crit.MaxWidth {
		errs = append(errs, fmt.Sprintf(
			"Image width (%dpx) exceeds maximum allowed (%dpx)", dims.Width, crit.MaxWidth))
	}
	if crit.MinHeight > 0 && dims.Height < crit.MinHeight {
		errs = append(errs, fmt.Sprintf(
			"Image height (%dpx) is less than minimum required (%dpx)", dims.Height, crit.MinHeight))
	}
	if crit.MaxHeight > 0 && dims.Height > crit.MaxHeight {
		errs = append(errs, fmt.Sprintf(
			"Image height (%dpx) exceeds maximum allowed (%dpx)", dims.Height, crit.MaxHeight))
	}

	if crit.MaxAreaMpx > 0 {
		areaMpx := float64(dims.Width) * float64(dims.Height) / 1_000_000
		if areaMpx > crit.MaxAreaMpx {
			errs = append(errs, fmt.Sprintf(
				"Image area (%.2fMpx² from %dx%dpx) exceeds maximum allowed (%.2fMpx²)",
				areaMpx, dims.Width, dims.Height, crit.MaxAreaMpx))
		}
	}

	if crit.AspectRatio > 0 && dims.Height > 0 {
		tolerance := crit.AspectRatioTolerance
		if tolerance == 0 {
			tolerance = defaultAspectTolerance
		}
		actual := float64(dims.Width) / float64(dims.Height)
		diff := actual - crit.AspectRatio
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			errs = append(errs, fmt.Sprintf(
				"Image aspect ratio (%.2f) does not match required ratio (%.2f)",
				actual, crit.AspectRatio))
		}
	}

	return errs
}

// CheckAll validates multiple image URLs concurrently and returns a map
// keyed by URL, so result identity is unambiguous regardless of
// completion order. All fetches are launched together and the call
// waits for every one to settle; a failing fetch never cancels its
// siblings.
func (c *Checker) CheckAll(ctx context.Context, urls []string, crit Criteria) map[string]Result {
	results := make(map[string]Result, len(urls))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, url := range urls {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			res := c.Check(ctx, u, crit)

			mu.Lock()
			results[u] = res
			mu.Unlock()
		}(url)
	}
	wg.Wait()

	return results
}
