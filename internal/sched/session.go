// Package sched ties the snapshot trie, the staged-change store, and the
// view formatter into one edit session.
//
// A Session is the unit a host embeds: one session is one logical actor
// editing one configuration snapshot. Hosts serving several concurrent
// editors create one session each; sessions share nothing.
package sched

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/queuestage/internal/sched/catalog"
	"github.com/dshills/queuestage/internal/sched/prop"
	"github.com/dshills/queuestage/internal/sched/staging"
	"github.com/dshills/queuestage/internal/sched/trie"
	"github.com/dshills/queuestage/internal/sched/view"
)

// Session is one edit session over a configuration snapshot.
type Session struct {
	id        uuid.UUID
	catalog   *catalog.Catalog
	store     *staging.Store
	formatter *view.Formatter
	notifier  *notifier
	loaded    bool
}

// Exports bundles the staged changes shaped for the commit API.
type Exports struct {
	Additions []staging.AddPayload    `json:"additions"`
	Updates   []staging.UpdatePayload `json:"updates"`
	Deletions []string                `json:"deletions"`
}

// NewSession creates a session over the given catalog. A snapshot must
// be loaded before queues can be resolved.
func NewSession(cat *catalog.Catalog) *Session {
	store := staging.NewStore(cat)
	return &Session{
		id:        uuid.New(),
		catalog:   cat,
		store:     store,
		formatter: view.New(store, cat),
		notifier:  newNotifier(),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Catalog returns the session's property catalog.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// LoadSnapshot builds the trie from a flat property snapshot and points
// the store at it. On first load staged changes are untouched (there are
// none); on subsequent loads staged entries that no longer resolve
// against the new trie are dropped, each reported as a warning event.
// Build warnings from malformed snapshot entries are also reported.
func (s *Session) LoadSnapshot(props []prop.Property) {
	t, warnings := trie.Build(props)

	var dropped []string
	if s.loaded {
		dropped = s.store.Reconcile(t)
	} else {
		s.store.SetTrie(t)
		s.loaded = true
	}

	for _, w := range warnings {
		s.notifier.publish(Event{
			Type:    EventWarning,
			Message: w.String(),
		})
	}
	for _, path := range dropped {
		s.notifier.publish(Event{
			Type:    EventWarning,
			Path:    path,
			Message: "staged change dropped: path no longer resolves after reload",
		})
	}
	s.notifier.publish(Event{Type: EventReload, Message: fmt.Sprintf("snapshot loaded (%d properties)", len(props))})
}

// Loaded reports whether a snapshot has been loaded.
func (s *Session) Loaded() bool {
	return s.loaded
}

// Add stages a new queue from a blueprint.
func (s *Session) Add(path string, bp staging.Blueprint) {
	s.store.DoAdd(path, bp)
	s.notifier.publish(Event{Type: EventStage, Path: path, Message: "queue addition staged"})
}

// Update stages the cumulative modification set for a queue.
func (s *Session) Update(path string, mods map[string]string) {
	s.store.DoUpdate(path, mods)
	s.notifier.publish(Event{Type: EventStage, Path: path, Message: "queue update staged"})
}

// Delete stages removal of a queue.
func (s *Session) Delete(path string) {
	s.store.DoDelete(path)
	s.notifier.publish(Event{Type: EventStage, Path: path, Message: "queue deletion staged"})
}

// Revert clears any staged entry at the path.
func (s *Session) Revert(path string) {
	s.store.DeleteChange(path)
	s.notifier.publish(Event{Type: EventStage, Path: path, Message: "staged change reverted"})
}

// Discard clears every staged entry.
func (s *Session) Discard() {
	s.store.Reset()
	s.notifier.publish(Event{Type: EventStage, Message: "all staged changes discarded"})
}

// Store exposes the session's staged-change store for direct queries.
func (s *Session) Store() *staging.Store {
	return s.store
}

// Queue resolves one queue's display state. Returns nil for unknown
// paths.
func (s *Session) Queue(path string) *view.Queue {
	return s.formatter.FormatQueue(path)
}

// Hierarchy assembles the full effective hierarchy from root.
func (s *Session) Hierarchy() *view.Queue {
	return s.formatter.Hierarchy()
}

// Exports shapes the staged changes for the commit API.
func (s *Session) Exports() Exports {
	return Exports{
		Additions: s.store.Additions(),
		Updates:   s.store.Updates(),
		Deletions: s.store.Deletions(),
	}
}

// Subscribe registers an observer for session events.
func (s *Session) Subscribe(observer Observer) *Subscription {
	return s.notifier.subscribe(observer)
}
