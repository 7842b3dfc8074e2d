// Package catalog maintains the property-metadata catalog for the
// capacity scheduler configuration.
//
// The catalog holds definitions of all known queue properties with their
// full-key placeholder patterns, display names, types, and defaults. It is
// consumed read-only by the key codec and the view formatter; nothing in
// this package interprets property values.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Definition describes a single known queue property.
type Definition struct {
	// Key is the property's local name, relative to a queue path
	// (e.g. "capacity", "leaf-queue-template.capacity").
	Key string

	// Placeholder is the full-key pattern with a %s slot for the queue
	// path (e.g. "yarn.scheduler.capacity.%s.capacity").
	Placeholder string

	// DisplayName is the human-readable label.
	DisplayName string

	// Type is the property's value type.
	Type ValueType

	// DefaultValue is the value assumed when the property is absent.
	DefaultValue string

	// Multi marks keys whose local name spans more than one dot segment.
	// These need longest-match handling when splitting a full key.
	Multi bool
}

// ValueType is the coarse value type of a property.
type ValueType uint8

const (
	// TypeString is a free-form string value.
	TypeString ValueType = iota
	// TypeNumber is an integer or float value.
	TypeNumber
	// TypeBool is "true" or "false".
	TypeBool
	// TypeCapacity is a capacity expression (percentage, weight, or
	// bracketed resource vector).
	TypeCapacity
	// TypeACL is an access-control list expression.
	TypeACL
	// TypeEnum is one of a fixed set of values.
	TypeEnum
)

// String returns the type name.
func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "bool"
	case TypeCapacity:
		return "capacity"
	case TypeACL:
		return "acl"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Catalog is a registry of property definitions keyed by local name.
type Catalog struct {
	mu   sync.RWMutex
	defs map[string]*Definition

	// multi caches the multi-segment local names, longest first.
	multi []string
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		defs: make(map[string]*Definition),
	}
}

// NewWithDefaults creates a catalog pre-populated with the built-in
// capacity-scheduler property set.
func NewWithDefaults() *Catalog {
	c := New()
	c.registerDefaults()
	return c
}

// Register adds a definition to the catalog.
// Returns an error if the key is empty or already registered.
func (c *Catalog) Register(def Definition) error {
	if def.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidDefinition)
	}
	if def.Placeholder == "" {
		def.Placeholder = "yarn.scheduler.capacity.%s." + def.Key
	}
	if strings.Contains(def.Key, ".") {
		def.Multi = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.defs[def.Key]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, def.Key)
	}

	d := &def
	c.defs[def.Key] = d
	if d.Multi {
		c.multi = append(c.multi, d.Key)
		sort.Slice(c.multi, func(i, j int) bool {
			return len(c.multi[i]) > len(c.multi[j])
		})
	}
	return nil
}

// MustRegister registers a definition and panics on error.
// Useful for registering built-in definitions at construction time.
func (c *Catalog) MustRegister(def Definition) {
	if err := c.Register(def); err != nil {
		panic(err)
	}
}

// Lookup returns the definition for a local property name.
// Returns nil if the name is not registered.
func (c *Catalog) Lookup(key string) *Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defs[key]
}

// Has checks whether a local property name is registered.
func (c *Catalog) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.defs[key]
	return exists
}

// DisplayName returns the display name for a local property name,
// falling back to the name itself when unregistered.
func (c *Catalog) DisplayName(key string) string {
	if def := c.Lookup(key); def != nil && def.DisplayName != "" {
		return def.DisplayName
	}
	return key
}

// MultiSegmentKeys returns the registered local names that span more
// than one dot segment, longest first.
func (c *Catalog) MultiSegmentKeys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.multi))
	copy(out, c.multi)
	return out
}

// All returns all definitions sorted by key.
func (c *Catalog) All() []*Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Definition, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Len returns the number of registered definitions.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.defs)
}
