package prop

import (
	"testing"

	"github.com/dshills/queuestage/internal/sched/catalog"
)

func TestToFullKey_Registered(t *testing.T) {
	cat := catalog.NewWithDefaults()

	got := ToFullKey(cat, "root.default", "capacity")
	want := "yarn.scheduler.capacity.root.default.capacity"
	if got != want {
		t.Errorf("ToFullKey() = %q, want %q", got, want)
	}
}

func TestToFullKey_UnregisteredFallsBack(t *testing.T) {
	cat := catalog.NewWithDefaults()

	got := ToFullKey(cat, "root.a", "my-custom-setting")
	want := "yarn.scheduler.capacity.root.a.my-custom-setting"
	if got != want {
		t.Errorf("ToFullKey() = %q, want %q", got, want)
	}
}

func TestToFullKey_NilCatalog(t *testing.T) {
	got := ToFullKey(nil, "root", "capacity")
	want := "yarn.scheduler.capacity.root.capacity"
	if got != want {
		t.Errorf("ToFullKey() = %q, want %q", got, want)
	}
}

func TestExtractQueuePath(t *testing.T) {
	cat := catalog.NewWithDefaults()

	tests := []struct {
		name     string
		key      string
		wantPath string
		wantOK   bool
	}{
		{
			name:     "simple property",
			key:      "yarn.scheduler.capacity.root.default.capacity",
			wantPath: "root.default",
			wantOK:   true,
		},
		{
			name:     "nested queue",
			key:      "yarn.scheduler.capacity.root.a.b.state",
			wantPath: "root.a.b",
			wantOK:   true,
		},
		{
			name: "multi-segment property name",
			key:  "yarn.scheduler.capacity.root.a.auto-queue-creation-v2.enabled",
			// Naive last-segment splitting would give "root.a.auto-queue-creation-v2".
			wantPath: "root.a",
			wantOK:   true,
		},
		{
			name:     "template property name",
			key:      "yarn.scheduler.capacity.root.a.leaf-queue-template.capacity",
			wantPath: "root.a",
			wantOK:   true,
		},
		{
			name:   "global property",
			key:    "yarn.scheduler.capacity.maximum-applications",
			wantOK: false,
		},
		{
			name:   "outside prefix",
			key:    "yarn.nodemanager.resource.memory-mb",
			wantOK: false,
		},
		{
			name:   "bare root",
			key:    "yarn.scheduler.capacity.root",
			wantOK: false,
		},
		{
			name:   "root lookalike",
			key:    "yarn.scheduler.capacity.rootless.capacity",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := ExtractQueuePath(cat, tt.key)
			if ok != tt.wantOK {
				t.Fatalf("ExtractQueuePath(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			}
			if ok && path != tt.wantPath {
				t.Errorf("ExtractQueuePath(%q) = %q, want %q", tt.key, path, tt.wantPath)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	cat := catalog.NewWithDefaults()

	path, simple, ok := Split(cat, "yarn.scheduler.capacity.root.a.auto-create-child-queue.enabled")
	if !ok {
		t.Fatal("Split should succeed")
	}
	if path != "root.a" {
		t.Errorf("path = %q, want %q", path, "root.a")
	}
	if simple != "auto-create-child-queue.enabled" {
		t.Errorf("simpleKey = %q, want %q", simple, "auto-create-child-queue.enabled")
	}
}

func TestIsGlobalProperty(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"yarn.scheduler.capacity.maximum-applications", true},
		{"yarn.scheduler.capacity.node-locality-delay", true},
		{"yarn.scheduler.capacity.root.capacity", false},
		{"yarn.scheduler.capacity.root", false},
		{"yarn.resourcemanager.hostname", false},
	}
	for _, tt := range tests {
		if got := IsGlobalProperty(tt.key); got != tt.want {
			t.Errorf("IsGlobalProperty(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"root", 0},
		{"root.a", 1},
		{"root.a.b", 2},
	}
	for _, tt := range tests {
		if got := Level(tt.path); got != tt.want {
			t.Errorf("Level(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}

func TestPathHelpers(t *testing.T) {
	if got := LastSegment("root.a.b"); got != "b" {
		t.Errorf("LastSegment = %q, want %q", got, "b")
	}
	if got := LastSegment("root"); got != "root" {
		t.Errorf("LastSegment = %q, want %q", got, "root")
	}
	if got := ParentPath("root.a.b"); got != "root.a" {
		t.Errorf("ParentPath = %q, want %q", got, "root.a")
	}
	if got := ParentPath("root"); got != "" {
		t.Errorf("ParentPath(root) = %q, want empty", got)
	}
}
