package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator validates caller-supplied payloads against named JSON Schema
// documents. Schemas are compiled once and reused.
type Validator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewValidator creates a Validator preloaded with the built-in request
// schemas.
func NewValidator() *Validator {
	v := &Validator{compiled: make(map[string]*jsonschema.Schema)}
	for name, doc := range builtinSchemas {
		if err := v.Register(name, json.RawMessage(doc)); err != nil {
			// Built-in schemas are compile-time constants; a failure here
			// is a programming error.
			panic(fmt.Sprintf("builtin schema %q: %v", name, err))
		}
	}
	return v
}

// Register compiles doc and stores it under name, replacing any previous
// schema with that name.
func (v *Validator) Register(name string, doc json.RawMessage) error {
	var schemaMap any
	if err := json.Unmarshal(doc, &schemaMap); err != nil {
		return fmt.Errorf("failed to unmarshal schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	resource := name + ".json"
	if err := c.AddResource(resource, schemaMap); err != nil {
		return fmt.Errorf("failed to add resource for %q: %w", name, err)
	}
	compiled, err := c.Compile(resource)
	if err != nil {
		return fmt.Errorf("failed to compile schema %q: %w", name, err)
	}

	v.mu.Lock()
	v.compiled[name] = compiled
	v.mu.Unlock()
	return nil
}

// Validate checks payload against the schema registered under name.
// Returns nil if valid, or an error describing the violations. Validating
// against an unregistered name is an error.
func (v *Validator) Validate(name string, payload any) error {
	v.mu.RLock()
	compiled, ok := v.compiled[name]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no schema registered under %q", name)
	}

	return compiled.Validate(payload)
}
