package view

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode is a queue's capacity mode. It governs how the raw capacity value
// is interpreted and displayed.
type Mode string

const (
	// ModePercentage is a percentage of the parent's capacity.
	ModePercentage Mode = "percentage"
	// ModeWeight is a relative weight ("4w").
	ModeWeight Mode = "weight"
	// ModeAbsolute is a bracketed absolute resource specification.
	ModeAbsolute Mode = "absolute"
	// ModeVector is a bracketed mixed resource vector. Only a display
	// hint selects it; from the raw string alone it is indistinguishable
	// from absolute.
	ModeVector Mode = "vector"
)

// Defaults substituted when a value is missing or unparsable.
const (
	DefaultPercentage = "0%"
	DefaultWeight     = "1.0w"
	DefaultAbsolute   = "[memory=1024,vcores=1]"
	DefaultMaximum    = "100.0%"
)

// DetectMode determines a queue's capacity mode. A staged display hint
// takes priority; otherwise the raw capacity string decides: a trailing
// "w" means weight, brackets mean absolute, anything else percentage.
func DetectMode(rawCapacity, hint string) Mode {
	switch Mode(hint) {
	case ModePercentage, ModeWeight, ModeAbsolute, ModeVector:
		return Mode(hint)
	}
	value := strings.TrimSpace(rawCapacity)
	switch {
	case strings.HasSuffix(value, "w"):
		return ModeWeight
	case strings.HasPrefix(value, "["):
		return ModeAbsolute
	default:
		return ModePercentage
	}
}

// EnsureCapacityFormat normalizes a raw capacity value into the
// canonical display string for the given mode: one-decimal "%" for
// percentage, one-decimal "w" for weight, bracket-wrapped for
// absolute/vector (brackets are synthesized around an unbracketed value
// rather than rejecting it). Missing or unparsable values fall back to
// the mode's default.
func EnsureCapacityFormat(raw string, mode Mode) string {
	value := strings.TrimSpace(raw)
	switch mode {
	case ModeWeight:
		if value == "" {
			return DefaultWeight
		}
		n, err := strconv.ParseFloat(strings.TrimSuffix(value, "w"), 64)
		if err != nil {
			return DefaultWeight
		}
		return fmt.Sprintf("%.1fw", n)

	case ModeAbsolute, ModeVector:
		if value == "" {
			return DefaultAbsolute
		}
		if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
			return value
		}
		return "[" + strings.Trim(value, "[]") + "]"

	default:
		if value == "" {
			return DefaultPercentage
		}
		n, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		if err != nil {
			return DefaultPercentage
		}
		return fmt.Sprintf("%.1f%%", n)
	}
}

// EnsureMaxCapacityFormat normalizes a maximum-capacity value. Unlike
// capacity it is mode-independent: bracketed strings pass through
// unchanged and everything else coerces to a percentage, defaulting to
// "100.0%".
func EnsureMaxCapacityFormat(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return DefaultMaximum
	}
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		return value
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
	if err != nil {
		return DefaultMaximum
	}
	return fmt.Sprintf("%.1f%%", n)
}

// Resource is one entry of a parsed resource vector.
type Resource struct {
	// Key is the resource name (e.g. "memory", "vcores").
	Key string `json:"key"`

	// Value is the leading numeric portion of the entry's value.
	Value string `json:"value"`

	// Unit is the trailing unit portion ("" when none, "Mi", "Gi", ...).
	Unit string `json:"unit"`
}

// ParseResourceVector parses "[k1=v1,k2=v2]" into an ordered resource
// list, splitting each value into leading numeric portion and trailing
// unit. Malformed entries (missing "=", empty key) are dropped, not
// fatal. Returns nil for values with no parsable entries.
func ParseResourceVector(raw string) []Resource {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "[")
	value = strings.TrimSuffix(value, "]")
	if value == "" {
		return nil
	}

	var out []Resource
	for _, entry := range strings.Split(value, ",") {
		key, val, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		num, unit := splitNumericUnit(strings.TrimSpace(val))
		out = append(out, Resource{Key: key, Value: num, Unit: unit})
	}
	return out
}

// splitNumericUnit separates a value like "4096Mi" into "4096" and "Mi".
func splitNumericUnit(v string) (string, string) {
	i := 0
	for i < len(v) {
		c := v[i]
		if (c >= '0' && c <= '9') || c == '.' || (i == 0 && (c == '-' || c == '+')) {
			i++
			continue
		}
		break
	}
	return v[:i], v[i:]
}
