package sched

import "sync"

// EventType classifies a session event.
type EventType int

const (
	// EventReload indicates a snapshot was loaded or reloaded.
	EventReload EventType = iota

	// EventStage indicates a staged change was added, replaced, or
	// reverted.
	EventStage

	// EventWarning indicates a non-fatal problem: a malformed snapshot
	// entry or a staged change dropped during reconciliation.
	EventWarning
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventReload:
		return "reload"
	case EventStage:
		return "stage"
	case EventWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Event describes a session state change.
type Event struct {
	// Type is the kind of event.
	Type EventType

	// Path is the queue path concerned, when one applies.
	Path string

	// Message is a human-readable description.
	Message string
}

// Observer is called when a session event occurs. Observers run
// synchronously on the mutating goroutine and must not call back into
// the session.
type Observer func(event Event)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// notifier manages session event subscriptions.
type notifier struct {
	mu        sync.RWMutex
	observers map[uint64]Observer
	nextID    uint64
}

func newNotifier() *notifier {
	return &notifier{observers: make(map[uint64]Observer)}
}

func (n *notifier) subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = observer
	return &Subscription{id: id, notifier: n}
}

func (n *notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}

func (n *notifier) publish(event Event) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.observers))
	for _, o := range n.observers {
		observers = append(observers, o)
	}
	n.mu.RUnlock()

	for _, o := range observers {
		o(event)
	}
}
