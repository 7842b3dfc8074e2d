// Package render prints effective queue hierarchies as styled text for
// the CLI.
package render

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dshills/queuestage/internal/sched/staging"
	"github.com/dshills/queuestage/internal/sched/view"
)

// Styles holds the lipgloss styles used for hierarchy output.
type Styles struct {
	QueueName lipgloss.Style
	Capacity  lipgloss.Style
	Muted     lipgloss.Style
	Add       lipgloss.Style
	Update    lipgloss.Style
	Delete    lipgloss.Style
}

// DefaultStyles returns the standard color scheme.
func DefaultStyles() Styles {
	return Styles{
		QueueName: lipgloss.NewStyle().Bold(true),
		Capacity:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Add:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		Update:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Delete:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true).Strikethrough(true),
	}
}

// PlainStyles returns styles with no color or emphasis, for non-TTY
// output.
func PlainStyles() Styles {
	return Styles{
		QueueName: lipgloss.NewStyle(),
		Capacity:  lipgloss.NewStyle(),
		Muted:     lipgloss.NewStyle(),
		Add:       lipgloss.NewStyle(),
		Update:    lipgloss.NewStyle(),
		Delete:    lipgloss.NewStyle(),
	}
}

// AutoStyles picks DefaultStyles when stdout is a terminal and
// PlainStyles otherwise.
func AutoStyles() Styles {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return DefaultStyles()
	}
	return PlainStyles()
}

// Renderer renders queue hierarchies.
type Renderer struct {
	styles Styles
}

// New creates a renderer with the given styles.
func New(styles Styles) *Renderer {
	return &Renderer{styles: styles}
}

// Tree renders the hierarchy rooted at q as an indented tree, one queue
// per line with capacity, mode, and change-status badge.
func (r *Renderer) Tree(q *view.Queue) string {
	if q == nil {
		return ""
	}
	var b strings.Builder
	r.writeQueue(&b, q, 0)
	return b.String()
}

func (r *Renderer) writeQueue(b *strings.Builder, q *view.Queue, depth int) {
	indent := strings.Repeat("  ", depth)

	name := r.styles.QueueName.Render(q.Name)
	switch q.Status {
	case staging.StatusAdd:
		name = r.styles.Add.Render(q.Name)
	case staging.StatusUpdate:
		name = r.styles.Update.Render(q.Name)
	case staging.StatusDelete:
		name = r.styles.Delete.Render(q.Name)
	}

	line := fmt.Sprintf("%s%s %s %s",
		indent,
		name,
		r.styles.Capacity.Render(q.Capacity),
		r.styles.Muted.Render(fmt.Sprintf("(max %s, %s)", q.MaxCapacity, q.Mode)),
	)
	if badge := statusBadge(q.Status); badge != "" {
		line += " " + r.badgeStyle(q.Status).Render(badge)
	}
	b.WriteString(line)
	b.WriteByte('\n')

	for _, name := range sortedChildNames(q) {
		r.writeQueue(b, q.Children[name], depth+1)
	}
}

func (r *Renderer) badgeStyle(status staging.Status) lipgloss.Style {
	switch status {
	case staging.StatusAdd:
		return r.styles.Add
	case staging.StatusUpdate:
		return r.styles.Update
	case staging.StatusDelete:
		return r.styles.Delete
	default:
		return r.styles.Muted
	}
}

func statusBadge(status staging.Status) string {
	switch status {
	case staging.StatusAdd:
		return "[ADD]"
	case staging.StatusUpdate:
		return "[UPDATE]"
	case staging.StatusDelete:
		return "[DELETE]"
	default:
		return ""
	}
}

func sortedChildNames(q *view.Queue) []string {
	names := make([]string, 0, len(q.Children))
	for name := range q.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
