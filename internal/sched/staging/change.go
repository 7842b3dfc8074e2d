package staging

// Op is the kind of a staged change.
type Op uint8

const (
	// OpAdd stages a brand-new queue.
	OpAdd Op = iota

	// OpUpdate stages property modifications on an existing queue.
	OpUpdate

	// OpDelete stages removal of an existing queue.
	OpDelete
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Status is the change status a resolved queue reports. It is a pure
// projection of the store's current state, re-derived on every read.
type Status string

const (
	// StatusUnchanged means no staged change exists for the queue.
	StatusUnchanged Status = "UNCHANGED"
	// StatusAdd means the queue exists only as a staged addition.
	StatusAdd Status = "ADD"
	// StatusUpdate means the queue has pending property modifications.
	StatusUpdate Status = "UPDATE"
	// StatusDelete means the queue is staged for deletion.
	StatusDelete Status = "DELETE"
)

// UIHintKey is the out-of-band modification-map key carrying the capacity
// mode selected in the editing surface. It is display guidance only and
// is stripped from export payloads.
const UIHintKey = "_ui_capacityMode"

// Blueprint describes a not-yet-committed new queue.
type Blueprint struct {
	// Name is the queue's local segment name.
	Name string

	// Path is the queue's absolute path.
	Path string

	// ParentPath is the absolute path of the parent the queue is staged
	// under. The caller ensures it resolves to an existing or staged
	// queue.
	ParentPath string

	// Properties is the initial property map, keyed by local name.
	Properties map[string]string

	// CapacityModeHint is the optional capacity-mode display hint.
	CapacityModeHint string
}

// change is a single staged entry. Exactly one of blueprint (OpAdd) or
// mods (OpUpdate) is populated; OpDelete carries only the path.
type change struct {
	op        Op
	path      string
	blueprint *Blueprint
	mods      map[string]string // full property key -> new value
}

// cloneProps copies a property map.
func cloneProps(src map[string]string) map[string]string {
	if src == nil {
		return make(map[string]string)
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
