// Package trie builds the committed queue hierarchy from a flat
// capacity-scheduler property snapshot.
//
// The trie is a path-segment tree, not a character trie. A queue exists
// in the hierarchy if and only if some ancestor's ".queues" property
// names it; properties alone under a path never create a queue. The trie
// is immutable once built; staging overlays it without touching it.
package trie

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/queuestage/internal/sched/prop"
)

// Node is a single queue in the committed hierarchy.
// Nodes are owned by the Trie; callers must not modify them.
type Node struct {
	// Segment is the node's local name.
	Segment string

	// FullPath is the dot-joined path from "root".
	FullPath string

	// IsQueue marks segments confirmed by an ancestor's .queues value.
	// Every node the builder creates is confirmed; the flag is kept for
	// clarity at lookup boundaries.
	IsQueue bool

	// Properties maps local property names to raw values, scoped to
	// this node only.
	Properties map[string]string

	// Children maps child segment names to child nodes.
	Children map[string]*Node
}

// Warning describes a non-fatal problem found while building the trie.
type Warning struct {
	// Key is the offending property key (full form).
	Key string

	// Message describes the problem.
	Message string
}

// String returns the warning as a single line.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Key, w.Message)
}

// Trie is the committed configuration snapshot as a queue tree plus the
// global (non-queue) properties.
type Trie struct {
	root   *Node
	global map[string]string
}

// Build constructs a trie from a flat property snapshot. Keys without the
// scheduler prefix are ignored. Malformed .queues entries are skipped and
// reported as warnings; the build never fails.
//
// The construction is two-pass and independent of input order: the
// .queues entries define the skeleton first, then every remaining
// property attaches to the deepest confirmed queue whose path prefixes
// it, the unconsumed remainder becoming the property's local name.
func Build(props []prop.Property) (*Trie, []Warning) {
	var warnings []Warning

	global := make(map[string]string)
	queueLists := make(map[string]string) // parent path -> csv of child names
	var remaining []prop.Property         // prefix-stripped queue properties

	for _, p := range props {
		if !strings.HasPrefix(p.Name, prop.Prefix) {
			continue
		}
		rest := p.Name[len(prop.Prefix):]
		if rest == "" {
			continue
		}
		if !prop.UnderRoot(rest) {
			global[rest] = p.Value
			continue
		}
		if parent, ok := strings.CutSuffix(rest, ".queues"); ok {
			if parent == "" || !prop.UnderRoot(parent) || hasEmptySegment(parent) {
				warnings = append(warnings, Warning{
					Key:     p.Name,
					Message: fmt.Sprintf("malformed .queues entry: parent path %q is not rooted at %q", parent, prop.RootPath),
				})
				continue
			}
			queueLists[parent] = p.Value
			continue
		}
		remaining = append(remaining, prop.Property{Name: rest, Value: p.Value})
	}

	root := newNode(prop.RootPath, prop.RootPath)
	t := &Trie{root: root, global: global}

	// Pass two: grow the skeleton top-down from root. Entries whose
	// parent is never reached contribute nothing, which is exactly the
	// "queues exist iff an ancestor names them" rule.
	warnings = append(warnings, growSkeleton(root, queueLists)...)

	// Pass three: attach properties at the deepest confirmed queue.
	for _, p := range remaining {
		attachProperty(root, p.Name, p.Value)
	}

	return t, warnings
}

// Root returns the root queue node.
func (t *Trie) Root() *Node {
	return t.root
}

// QueueNode returns the node for a queue path, walking segment by
// segment from root. Returns nil when any segment is missing or not a
// confirmed queue.
func (t *Trie) QueueNode(path string) *Node {
	if path == "" {
		return nil
	}
	segs := strings.Split(path, ".")
	if segs[0] != prop.RootPath {
		return nil
	}
	node := t.root
	for _, seg := range segs[1:] {
		child, ok := node.Children[seg]
		if !ok || !child.IsQueue {
			return nil
		}
		node = child
	}
	return node
}

// Paths returns every queue path in the trie, sorted.
func (t *Trie) Paths() []string {
	var out []string
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n.FullPath)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.root)
	sort.Strings(out)
	return out
}

// GlobalProperties returns a copy of the non-queue properties, keyed by
// their prefix-stripped names.
func (t *Trie) GlobalProperties() map[string]string {
	out := make(map[string]string, len(t.global))
	for k, v := range t.global {
		out[k] = v
	}
	return out
}

// growSkeleton creates one confirmed child per name listed in the
// parent's .queues value, recursively.
func growSkeleton(n *Node, queueLists map[string]string) []Warning {
	var warnings []Warning

	list, ok := queueLists[n.FullPath]
	if !ok {
		return nil
	}
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.Contains(name, ".") {
			warnings = append(warnings, Warning{
				Key:     prop.Prefix + n.FullPath + ".queues",
				Message: fmt.Sprintf("child name %q contains a path separator", name),
			})
			continue
		}
		if _, exists := n.Children[name]; exists {
			continue
		}
		child := newNode(name, n.FullPath+"."+name)
		n.Children[name] = child
		warnings = append(warnings, growSkeleton(child, queueLists)...)
	}
	return warnings
}

// attachProperty walks the prefix-stripped key against the skeleton and
// stores the value at the deepest confirmed queue reached. The segments
// left unconsumed, rejoined with dots, become the local property name.
// This correctly routes properties whose local name itself contains dots.
func attachProperty(root *Node, rest, value string) {
	segs := strings.Split(rest, ".")
	node := root
	i := 1 // segs[0] is "root"
	for i < len(segs) {
		child, ok := node.Children[segs[i]]
		if !ok || !child.IsQueue {
			break
		}
		node = child
		i++
	}
	local := strings.Join(segs[i:], ".")
	if local == "" {
		// The key addressed a queue with no property segment.
		return
	}
	node.Properties[local] = value
}

func newNode(segment, fullPath string) *Node {
	return &Node{
		Segment:    segment,
		FullPath:   fullPath,
		IsQueue:    true,
		Properties: make(map[string]string),
		Children:   make(map[string]*Node),
	}
}

func hasEmptySegment(path string) bool {
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return true
		}
	}
	return false
}
