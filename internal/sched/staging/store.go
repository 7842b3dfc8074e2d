package staging

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/queuestage/internal/sched/catalog"
	"github.com/dshills/queuestage/internal/sched/prop"
	"github.com/dshills/queuestage/internal/sched/trie"
)

// Queue is a queue resolved against the current snapshot plus staged
// edits. It is computed fresh on every read and never retained by the
// store; mutating a returned Queue has no effect on store state.
type Queue struct {
	// Path is the queue's absolute path.
	Path string

	// Name is the queue's local segment name.
	Name string

	// ParentPath is the absolute path of the parent ("" for root).
	ParentPath string

	// Level is the queue's depth: path segment count minus one.
	Level int

	// Properties is the resolved property map, keyed by local name.
	Properties map[string]string

	// Status is the change-status projection for this read.
	Status Status
}

// Store holds the staged changes of one edit session and resolves queues
// by overlaying them on the committed trie.
type Store struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	trie    *trie.Trie
	changes map[string]*change
}

// NewStore creates an empty store. A trie must be attached with SetTrie
// before any resolution method is used.
func NewStore(cat *catalog.Catalog) *Store {
	return &Store{
		catalog: cat,
		changes: make(map[string]*change),
	}
}

// SetTrie attaches the committed snapshot the store resolves against.
// It does not touch staged entries; see Reconcile for reload handling.
func (s *Store) SetTrie(t *trie.Trie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trie = t
}

// DoAdd stages a new queue from a blueprint. Any prior staged entry at
// the path is replaced.
func (s *Store) DoAdd(path string, bp Blueprint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bp.Path == "" {
		bp.Path = path
	}
	if bp.Name == "" {
		bp.Name = prop.LastSegment(path)
	}
	if bp.ParentPath == "" {
		bp.ParentPath = prop.ParentPath(path)
	}
	bp.Properties = cloneProps(bp.Properties)
	s.changes[path] = &change{op: OpAdd, path: path, blueprint: &bp}
}

// DoUpdate stages the cumulative set of pending modifications for a
// queue, keyed by full property key. The map always replaces the prior
// one; it is never merged incrementally. An empty map clears any pending
// update. If an Add is pending at the path, the modifications fold into
// its blueprint and the entry stays an Add.
func (s *Store) DoUpdate(path string, mods map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.changes[path]; ok && existing.op == OpAdd {
		s.foldIntoBlueprint(existing.blueprint, mods)
		return
	}
	if len(mods) == 0 {
		if existing, ok := s.changes[path]; ok && existing.op == OpUpdate {
			delete(s.changes, path)
		}
		return
	}
	s.changes[path] = &change{op: OpUpdate, path: path, mods: cloneProps(mods)}
}

// DoDelete stages removal of a queue. A pending Add at the path is
// removed outright — a never-committed queue vanishes without leaving a
// tombstone. Otherwise the Delete supersedes any pending Update.
func (s *Store) DoDelete(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.changes[path]; ok && existing.op == OpAdd {
		delete(s.changes, path)
		return
	}
	s.changes[path] = &change{op: OpDelete, path: path}
}

// DeleteChange clears any staged entry at the path, reverting the queue
// to its committed state.
func (s *Store) DeleteChange(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.changes, path)
}

// Reset drops every staged entry.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes = make(map[string]*change)
}

// Status returns the change-status projection for a path.
func (s *Store) Status(path string) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statusLocked(path)
}

func (s *Store) statusLocked(path string) Status {
	c, ok := s.changes[path]
	if !ok {
		return StatusUnchanged
	}
	switch c.op {
	case OpAdd:
		return StatusAdd
	case OpUpdate:
		return StatusUpdate
	case OpDelete:
		return StatusDelete
	}
	return StatusUnchanged
}

// IsStagedAdd reports whether an Add is pending at the path.
func (s *Store) IsStagedAdd(path string) bool { return s.Status(path) == StatusAdd }

// IsStagedUpdate reports whether an Update is pending at the path.
func (s *Store) IsStagedUpdate(path string) bool { return s.Status(path) == StatusUpdate }

// IsStagedDelete reports whether a Delete is pending at the path.
func (s *Store) IsStagedDelete(path string) bool { return s.Status(path) == StatusDelete }

// HasChanges reports whether any edit is staged.
func (s *Store) HasChanges() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.changes) > 0
}

// Queue resolves one queue against the snapshot plus staged edits.
// Resolution order: a pending Add wins outright; otherwise the committed
// properties are cloned and any pending Update's modifications overwrite
// them key by key (keys not mentioned keep their committed value); a
// pending Delete only marks the status — a deleted queue still carries
// its last-known values. Returns nil for paths that neither the trie nor
// a pending Add knows.
func (s *Store) Queue(path string) *Queue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queueLocked(path)
}

func (s *Store) queueLocked(path string) *Queue {
	s.mustHaveTrie()

	if c, ok := s.changes[path]; ok && c.op == OpAdd {
		bp := c.blueprint
		return &Queue{
			Path:       path,
			Name:       bp.Name,
			ParentPath: bp.ParentPath,
			Level:      prop.Level(path),
			Properties: cloneProps(bp.Properties),
			Status:     StatusAdd,
		}
	}

	node := s.trie.QueueNode(path)
	if node == nil {
		return nil
	}

	q := &Queue{
		Path:       path,
		Name:       node.Segment,
		ParentPath: prop.ParentPath(path),
		Level:      prop.Level(path),
		Properties: cloneProps(node.Properties),
		Status:     StatusUnchanged,
	}

	c, ok := s.changes[path]
	if !ok {
		return q
	}
	switch c.op {
	case OpUpdate:
		q.Status = StatusUpdate
		for fullKey, value := range c.mods {
			if strings.HasPrefix(fullKey, "_ui_") {
				continue
			}
			if local, ok := s.localName(path, fullKey); ok {
				q.Properties[local] = value
			}
		}
	case OpDelete:
		q.Status = StatusDelete
	}
	return q
}

// AllQueues resolves the union of every trie-reachable path and every
// pending-Add path, sorted by path.
func (s *Store) AllQueues() []*Queue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustHaveTrie()

	paths := s.trie.Paths()
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		seen[p] = true
	}
	for p, c := range s.changes {
		if c.op == OpAdd && !seen[p] {
			paths = append(paths, p)
			seen[p] = true
		}
	}
	sort.Strings(paths)

	out := make([]*Queue, 0, len(paths))
	for _, p := range paths {
		if q := s.queueLocked(p); q != nil {
			out = append(out, q)
		}
	}
	return out
}

// TrieChildren returns the committed child segment names of a queue,
// sorted. Staged deletions do not remove entries here; callers decide
// how to present deleted children.
func (s *Store) TrieChildren(path string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustHaveTrie()

	node := s.trie.QueueNode(path)
	if node == nil {
		return nil
	}
	out := make([]string, 0, len(node.Children))
	for name := range node.Children {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// StagedAddsUnder returns the paths of pending Adds whose parent is the
// given queue, sorted.
func (s *Store) StagedAddsUnder(parentPath string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for p, c := range s.changes {
		if c.op == OpAdd && c.blueprint.ParentPath == parentPath {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// CapacityModeHint returns the capacity-mode display hint staged for a
// path, from a pending Update's UI-hint entry or a pending Add's
// blueprint. Empty when none is staged.
func (s *Store) CapacityModeHint(path string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.changes[path]
	if !ok {
		return ""
	}
	switch c.op {
	case OpAdd:
		return c.blueprint.CapacityModeHint
	case OpUpdate:
		return c.mods[UIHintKey]
	}
	return ""
}

// Reconcile re-points the store at a rebuilt trie and drops staged
// entries that no longer resolve: Updates and Deletes whose path the new
// snapshot lost, and Adds whose parent is neither in the snapshot nor a
// surviving staged Add. Returns the dropped paths, sorted.
func (s *Store) Reconcile(t *trie.Trie) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trie = t
	var dropped []string

	for path, c := range s.changes {
		if c.op == OpUpdate || c.op == OpDelete {
			if t.QueueNode(path) == nil {
				delete(s.changes, path)
				dropped = append(dropped, path)
			}
		}
	}

	// Adds can chain (a staged queue under a staged queue), so drop
	// orphans until a pass removes nothing.
	for {
		removed := false
		for path, c := range s.changes {
			if c.op != OpAdd {
				continue
			}
			parent := c.blueprint.ParentPath
			if t.QueueNode(parent) != nil {
				continue
			}
			if pc, ok := s.changes[parent]; ok && pc.op == OpAdd {
				continue
			}
			delete(s.changes, path)
			dropped = append(dropped, path)
			removed = true
		}
		if !removed {
			break
		}
	}

	sort.Strings(dropped)
	return dropped
}

// foldIntoBlueprint merges an update's modification map into a pending
// Add's blueprint, translating full keys back to local names. The UI
// hint entry updates the blueprint hint instead of becoming a property.
func (s *Store) foldIntoBlueprint(bp *Blueprint, mods map[string]string) {
	for fullKey, value := range mods {
		if fullKey == UIHintKey {
			bp.CapacityModeHint = value
			continue
		}
		if strings.HasPrefix(fullKey, "_ui_") {
			continue
		}
		if local, ok := s.localName(bp.Path, fullKey); ok {
			bp.Properties[local] = value
		}
	}
}

// localName translates a full property key into a local name relative to
// the given queue path. Keys scoped to a different path are rejected.
func (s *Store) localName(path, fullKey string) (string, bool) {
	if local, ok := strings.CutPrefix(fullKey, prop.Prefix+path+"."); ok && local != "" {
		return local, true
	}
	// Fall back to catalog-aware splitting for keys whose path portion
	// needs multi-segment matching.
	keyPath, local, ok := prop.Split(s.catalog, fullKey)
	if !ok || keyPath != path {
		return "", false
	}
	return local, true
}

// mustHaveTrie guards resolution methods against use before a snapshot
// is attached. This is a programmer error, not a runtime condition.
func (s *Store) mustHaveTrie() {
	if s.trie == nil {
		panic("staging: store used before a snapshot was attached")
	}
}
