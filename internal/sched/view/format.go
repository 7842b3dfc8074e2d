package view

import (
	"sort"

	"github.com/dshills/queuestage/internal/sched/catalog"
	"github.com/dshills/queuestage/internal/sched/prop"
	"github.com/dshills/queuestage/internal/sched/staging"
)

// Queue is one queue's effective, display-ready state.
type Queue struct {
	// Path is the queue's absolute path.
	Path string `json:"path"`

	// Name is the queue's local segment name.
	Name string `json:"name"`

	// ParentPath is the absolute path of the parent ("" for root).
	ParentPath string `json:"parentPath,omitempty"`

	// Level is the queue's depth (root is 0).
	Level int `json:"level"`

	// Status is the change-status projection at format time.
	Status staging.Status `json:"changeStatus"`

	// Mode is the detected capacity mode.
	Mode Mode `json:"capacityMode"`

	// Capacity is the normalized capacity display string.
	Capacity string `json:"capacity"`

	// MaxCapacity is the normalized maximum-capacity display string.
	MaxCapacity string `json:"maxCapacity"`

	// Resources is the parsed resource breakdown for absolute/vector
	// modes, nil otherwise.
	Resources []Resource `json:"resources,omitempty"`

	// State is the queue's operational state property.
	State string `json:"state"`

	// Properties is the resolved raw property map, keyed by local name.
	Properties map[string]string `json:"properties"`

	// Labels lists the resolved properties with display names, sorted
	// by local name.
	Labels []Label `json:"labels,omitempty"`

	// Deletable describes whether and how the queue can be deleted.
	Deletable Deletability `json:"deletable"`

	// QueueType is "parent" or "leaf", decided from active children
	// after pending additions are grafted.
	QueueType string `json:"queueType"`

	// Children maps child segment names to recursively formatted
	// queues. Populated only by Hierarchy/Subtree.
	Children map[string]*Queue `json:"children,omitempty"`
}

// Label pairs a property with its catalog display name.
type Label struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Value       string `json:"value"`
}

// Deletability is the outcome of a deletability check.
type Deletability struct {
	// CanDelete reports whether the delete (or undo) action is enabled.
	CanDelete bool `json:"canDelete"`

	// Action is the action label: "Delete", or "Undo Delete" for a
	// queue already staged for deletion.
	Action string `json:"action"`
}

// Queue type values.
const (
	QueueTypeParent = "parent"
	QueueTypeLeaf   = "leaf"
)

// Formatter resolves display-ready queue state from a staging store.
// It holds no state of its own beyond its collaborators; every result is
// a fresh projection.
type Formatter struct {
	store   *staging.Store
	catalog *catalog.Catalog
}

// New creates a formatter over a store and catalog.
func New(store *staging.Store, cat *catalog.Catalog) *Formatter {
	return &Formatter{store: store, catalog: cat}
}

// FormatQueue resolves one queue's effective display state without
// children. Returns nil for unknown paths.
func (f *Formatter) FormatQueue(path string) *Queue {
	q := f.store.Queue(path)
	if q == nil {
		return nil
	}

	hint := f.store.CapacityModeHint(path)
	mode := DetectMode(q.Properties["capacity"], hint)

	out := &Queue{
		Path:        q.Path,
		Name:        q.Name,
		ParentPath:  q.ParentPath,
		Level:       q.Level,
		Status:      q.Status,
		Mode:        mode,
		Capacity:    EnsureCapacityFormat(q.Properties["capacity"], mode),
		MaxCapacity: EnsureMaxCapacityFormat(q.Properties["maximum-capacity"]),
		State:       stateOf(q.Properties),
		Properties:  q.Properties,
		Labels:      f.labels(q.Properties),
		Deletable:   f.CheckDeletability(path),
		QueueType:   QueueTypeLeaf,
	}
	if mode == ModeAbsolute || mode == ModeVector {
		out.Resources = ParseResourceVector(out.Capacity)
	}
	return out
}

// Hierarchy assembles the full effective hierarchy from root.
func (f *Formatter) Hierarchy() *Queue {
	return f.Subtree(prop.RootPath)
}

// Subtree recursively formats the queue at path and everything under it.
// Committed children are formatted first, then pending additions whose
// parent is this queue are grafted — unless a committed child already
// owns the name. The queue type is decided only after grafting: a queue
// whose only children are staged additions is still a parent.
func (f *Formatter) Subtree(path string) *Queue {
	q := f.FormatQueue(path)
	if q == nil {
		return nil
	}

	children := make(map[string]*Queue)
	for _, name := range f.store.TrieChildren(path) {
		if child := f.Subtree(path + "." + name); child != nil {
			children[name] = child
		}
	}
	for _, addPath := range f.store.StagedAddsUnder(path) {
		name := prop.LastSegment(addPath)
		if _, exists := children[name]; exists {
			continue
		}
		if child := f.Subtree(addPath); child != nil {
			children[name] = child
		}
	}

	active := 0
	for _, child := range children {
		if child.Status != staging.StatusDelete {
			active++
		}
	}
	if active > 0 {
		q.QueueType = QueueTypeParent
	}
	if len(children) > 0 {
		q.Children = children
	}
	return q
}

// CheckDeletability decides whether a queue may be deleted: never root,
// and only with zero active children, where active means committed
// children not staged for deletion plus staged additions under this
// queue. A queue already staged for deletion reports CanDelete with an
// undo action instead.
func (f *Formatter) CheckDeletability(path string) Deletability {
	if path == prop.RootPath {
		return Deletability{CanDelete: false, Action: "Delete"}
	}
	if f.store.IsStagedDelete(path) {
		return Deletability{CanDelete: true, Action: "Undo Delete"}
	}

	active := 0
	for _, name := range f.store.TrieChildren(path) {
		if !f.store.IsStagedDelete(path + "." + name) {
			active++
		}
	}
	// Staged additions are always active: deleting one removes it from
	// the store outright, so none can be in a deleted state.
	active += len(f.store.StagedAddsUnder(path))

	return Deletability{CanDelete: active == 0, Action: "Delete"}
}

// labels pairs every resolved property with its display name, sorted by
// local name.
func (f *Formatter) labels(props map[string]string) []Label {
	if len(props) == 0 {
		return nil
	}
	out := make([]Label, 0, len(props))
	for key, value := range props {
		out = append(out, Label{
			Key:         key,
			DisplayName: f.catalog.DisplayName(key),
			Value:       value,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// stateOf reads the queue state property, defaulting to RUNNING.
func stateOf(props map[string]string) string {
	if s, ok := props["state"]; ok && s != "" {
		return s
	}
	return "RUNNING"
}
