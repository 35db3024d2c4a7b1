// Package posv2 provides a validation engine for POS webhook payloads.
//
// POSV2 is a library — not a service. Import it into your application to
// classify incoming payloads (catalog pushes vs. order payloads),
// validate them structurally against the vendor schemas, enrich every
// violation with stable error codes and fix suggestions, and optionally
// run an asynchronous image dimension pass over catalog image URLs.
//
// Key features:
//   - Heuristic payload classification (Menu Push / Order Payload / Unknown)
//   - Discriminated-union catalog item validation with complete violation lists
//   - Stable error code vocabulary with wildcard path lookup
//   - Generated fix suggestions and expected-value descriptions
//   - Concurrent image dimension checks with named criteria presets
//   - Caller-registered JSON Schema overlays per catalog item type
//
// Quick start:
//
//	v, err := posv2.New(
//	    posv2.WithRequestTimeout(10 * time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res := v.ValidateRequest(rawBody)
//	if !res.IsValid {
//	    for _, e := range res.DetailedErrors {
//	        fmt.Printf("[%s] %s: %s\n", e.ErrorCode, e.Path, e.FixSuggestion)
//	    }
//	}
package posv2
