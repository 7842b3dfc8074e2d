package staging

import (
	"sort"
	"strings"

	"github.com/dshills/queuestage/internal/sched/prop"
)

// AddPayload is one staged addition shaped for the commit API.
type AddPayload struct {
	// QueueName is the new queue's full path.
	QueueName string `json:"queueName"`

	// Params maps full property keys to initial values.
	Params map[string]string `json:"params"`
}

// UpdatePayload is one staged update shaped for the commit API.
type UpdatePayload struct {
	// QueueName is the updated queue's full path.
	QueueName string `json:"queueName"`

	// Params maps full property keys to new values. UI-only hint
	// entries are stripped.
	Params map[string]string `json:"params"`
}

// Additions shapes every pending Add for the commit API, sorted by path.
// Blueprint properties are expanded to full keys via the catalog.
func (s *Store) Additions() []AddPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []AddPayload
	for path, c := range s.changes {
		if c.op != OpAdd {
			continue
		}
		params := make(map[string]string, len(c.blueprint.Properties))
		for local, value := range c.blueprint.Properties {
			params[prop.ToFullKey(s.catalog, path, local)] = value
		}
		out = append(out, AddPayload{QueueName: path, Params: params})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QueueName < out[j].QueueName })
	return out
}

// Updates shapes every pending Update for the commit API, sorted by
// path. UI hint entries are stripped, and updates left with no real
// parameter changes are omitted.
func (s *Store) Updates() []UpdatePayload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []UpdatePayload
	for path, c := range s.changes {
		if c.op != OpUpdate {
			continue
		}
		params := make(map[string]string, len(c.mods))
		for k, v := range c.mods {
			if strings.HasPrefix(k, "_ui_") {
				continue
			}
			params[k] = v
		}
		if len(params) == 0 {
			continue
		}
		out = append(out, UpdatePayload{QueueName: path, Params: params})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QueueName < out[j].QueueName })
	return out
}

// Deletions returns the paths staged for deletion, sorted.
func (s *Store) Deletions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for path, c := range s.changes {
		if c.op == OpDelete {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}
