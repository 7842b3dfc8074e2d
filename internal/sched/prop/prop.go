// Package prop provides the property key codec for capacity-scheduler
// configuration keys.
//
// A full key such as "yarn.scheduler.capacity.root.default.capacity" maps
// to a queue path ("root.default") and a local property name ("capacity").
// The split is not purely positional: some local names span more than one
// dot segment (the auto-queue-creation family), so splitting consults the
// property catalog for a longest-match before falling back to stripping
// the last segment.
package prop

import (
	"fmt"
	"strings"

	"github.com/dshills/queuestage/internal/sched/catalog"
)

// Prefix is the fixed key prefix for all capacity-scheduler properties.
const Prefix = "yarn.scheduler.capacity."

// RootPath is the path of the hierarchy root queue.
const RootPath = "root"

// Property is a single flat configuration entry.
type Property struct {
	Name  string
	Value string
}

// ToFullKey builds the full configuration key for a queue-scoped property.
// The local name is looked up in the catalog for its canonical placeholder
// pattern; unregistered names fall back to "<prefix><path>.<name>".
// ToFullKey never fails.
func ToFullKey(cat *catalog.Catalog, queuePath, simpleKey string) string {
	if cat != nil {
		if def := cat.Lookup(simpleKey); def != nil && def.Placeholder != "" {
			return fmt.Sprintf(def.Placeholder, queuePath)
		}
	}
	return Prefix + queuePath + "." + simpleKey
}

// ExtractQueuePath returns the queue-path portion of a full key.
// Known multi-segment local names are matched before the last-segment
// fallback. Returns false for keys outside the queue prefix, for global
// keys, and for keys with no property segment.
func ExtractQueuePath(cat *catalog.Catalog, fullKey string) (string, bool) {
	path, _, ok := Split(cat, fullKey)
	return path, ok
}

// Split separates a full key into queue path and local property name.
// Returns false under the same conditions as ExtractQueuePath.
func Split(cat *catalog.Catalog, fullKey string) (path, simpleKey string, ok bool) {
	rest, ok := trimPrefix(fullKey)
	if !ok || !UnderRoot(rest) {
		return "", "", false
	}

	// Longest-match against known multi-segment names first. A naive
	// last-segment split would break "root.a.auto-queue-creation-v2.enabled"
	// into path "root.a.auto-queue-creation-v2".
	if cat != nil {
		for _, name := range cat.MultiSegmentKeys() {
			if suffix := "." + name; strings.HasSuffix(rest, suffix) {
				return rest[:len(rest)-len(suffix)], name, true
			}
		}
	}

	idx := strings.LastIndex(rest, ".")
	if idx < 0 {
		// Bare "root" with no property segment.
		return "", "", false
	}
	return rest[:idx], rest[idx+1:], true
}

// IsGlobalProperty reports whether a key is under the scheduler prefix
// but not scoped to a queue (its remainder does not start with "root").
func IsGlobalProperty(fullKey string) bool {
	rest, ok := trimPrefix(fullKey)
	if !ok {
		return false
	}
	return !UnderRoot(rest)
}

// IsQueueProperty reports whether a key is under the scheduler prefix
// and scoped to the queue hierarchy.
func IsQueueProperty(fullKey string) bool {
	rest, ok := trimPrefix(fullKey)
	if !ok {
		return false
	}
	return UnderRoot(rest)
}

// UnderRoot reports whether a prefix-stripped key remainder addresses the
// queue hierarchy: exactly "root" or starting with "root.".
func UnderRoot(rest string) bool {
	return rest == RootPath || strings.HasPrefix(rest, RootPath+".")
}

// trimPrefix strips the scheduler prefix, reporting whether it was present.
func trimPrefix(fullKey string) (string, bool) {
	if !strings.HasPrefix(fullKey, Prefix) {
		return "", false
	}
	rest := fullKey[len(Prefix):]
	if rest == "" {
		return "", false
	}
	return rest, true
}

// Level returns the depth of a queue path: the number of path segments
// minus one, so "root" is level 0.
func Level(path string) int {
	if path == "" {
		return 0
	}
	return strings.Count(path, ".")
}

// LastSegment returns the final segment of a queue path, which is the
// queue's own name.
func LastSegment(path string) string {
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// ParentPath returns the path of a queue's parent, or "" for root.
func ParentPath(path string) string {
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		return path[:idx]
	}
	return ""
}
