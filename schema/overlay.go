package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Overlay validates catalog items against caller-registered JSON Schema
// documents, layered on top of the built-in structural checks. Overlays
// are purely additive: with none registered, Check reports nothing.
type Overlay struct {
	mu     sync.RWMutex
	cache  map[string]*jsonschema.Schema // keyed by schema JSON content
	byType map[ItemType]*jsonschema.Schema
}

// NewOverlay creates an empty overlay registry.
func NewOverlay() *Overlay {
	return &Overlay{
		cache:  make(map[string]*jsonschema.Schema),
		byType: make(map[ItemType]*jsonschema.Schema),
	}
}

// Register compiles a JSON Schema document and attaches it to a catalog
// item type. Registering again replaces the previous schema.
func (o *Overlay) Register(t ItemType, schema any) error {
	if !knownItemType(string(t)) {
		return fmt.Errorf("schema: unknown item type %q", t)
	}

	compiled, err := o.compile(schema)
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.byType[t] = compiled
	o.mu.Unlock()
	return nil
}

// CheckMenuPush runs every registered overlay schema against the matching
// items of a catalog push, collecting one violation per failing item.
// Item IDs are walked in sorted order for deterministic output.
func (o *Overlay) CheckMenuPush(obj map[string]any) []Violation {
	o.mu.RLock()
	registered := len(o.byType)
	o.mu.RUnlock()
	if registered == 0 {
		return nil
	}

	items, ok := obj["items"].(map[string]any)
	if !ok {
		return nil
	}

	ids := make([]string, 0, len(items))
	for itemID := range items {
		ids = append(ids, itemID)
	}
	sort.Strings(ids)

	var out []Violation
	for _, itemID := range ids {
		item, isObject := items[itemID].(map[string]any)
		if !isObject {
			continue
		}
		tag, _ := item["type"].(string)

		o.mu.RLock()
		compiled := o.byType[ItemType(tag)]
		o.mu.RUnlock()
		if compiled == nil {
			continue
		}

		if err := compiled.Validate(item); err != nil {
			out = append(out, Violation{
				Path:     Path{"items", itemID},
				Message:  fmt.Sprintf("Item does not satisfy the registered %s schema: %v", tag, err),
				Received: item,
				Expected: "conformance with the registered " + tag + " schema",
			})
		}
	}
	return out
}

// compile returns a compiled schema, using the cache for previously-seen
// schema documents.
func (o *Overlay) compile(schema any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("schema: marshal overlay: %w", err)
	}
	key := string(raw)

	o.mu.RLock()
	if cached, ok := o.cache[key]; ok {
		o.mu.RUnlock()
		return cached, nil
	}
	o.mu.RUnlock()

	// Parse the schema JSON into an any value for the compiler.
	var doc any
	if unmarshalErr := json.Unmarshal(raw, &doc); unmarshalErr != nil {
		return nil, fmt.Errorf("schema: unmarshal overlay: %w", unmarshalErr)
	}

	// Use a unique URL as the schema resource identifier.
	url := "posv2://schema/" + sanitizeKey(key)

	c := jsonschema.NewCompiler()
	if addErr := c.AddResource(url, doc); addErr != nil {
		return nil, fmt.Errorf("schema: add overlay resource: %w", addErr)
	}

	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema: compile overlay: %w", err)
	}

	o.mu.Lock()
	o.cache[key] = compiled
	o.mu.Unlock()

	return compiled, nil
}

// sanitizeKey creates a safe URL path segment from a schema key.
func sanitizeKey(key string) string {
	r := strings.NewReplacer(
		`"`, "",
		`{`, "",
		`}`, "",
		` `, "_",
		`:`, "",
	)
	s := r.Replace(key)
	if len(s) > 64 {
		s = s[:64]
	}
	return s
}
