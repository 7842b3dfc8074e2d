package staging

import (
	"testing"

	"github.com/dshills/queuestage/internal/sched/catalog"
	"github.com/dshills/queuestage/internal/sched/prop"
	"github.com/dshills/queuestage/internal/sched/trie"
)

func newTestStore(t *testing.T, pairs ...string) *Store {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("pairs must be name/value")
	}
	props := make([]prop.Property, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		props = append(props, prop.Property{Name: pairs[i], Value: pairs[i+1]})
	}
	tr, warnings := trie.Build(props)
	if len(warnings) != 0 {
		t.Fatalf("unexpected build warnings: %v", warnings)
	}
	s := NewStore(catalog.NewWithDefaults())
	s.SetTrie(tr)
	return s
}

func baseStore(t *testing.T) *Store {
	t.Helper()
	return newTestStore(t,
		"yarn.scheduler.capacity.root.queues", "a,b",
		"yarn.scheduler.capacity.root.a.capacity", "40%",
		"yarn.scheduler.capacity.root.a.state", "RUNNING",
		"yarn.scheduler.capacity.root.b.capacity", "60%",
	)
}

func TestQueue_Unchanged(t *testing.T) {
	s := baseStore(t)

	q := s.Queue("root.a")
	if q == nil {
		t.Fatal("root.a should resolve")
	}
	if q.Status != StatusUnchanged {
		t.Errorf("Status = %v, want UNCHANGED", q.Status)
	}
	if q.Properties["capacity"] != "40%" {
		t.Errorf("capacity = %q, want 40%%", q.Properties["capacity"])
	}
	if q.Name != "a" || q.ParentPath != "root" || q.Level != 1 {
		t.Errorf("identity fields wrong: %+v", q)
	}
}

func TestQueue_Missing(t *testing.T) {
	s := baseStore(t)
	if s.Queue("root.nope") != nil {
		t.Error("unknown path should resolve to nil")
	}
}

func TestQueue_UsedBeforeTriePanics(t *testing.T) {
	s := NewStore(catalog.NewWithDefaults())
	defer func() {
		if recover() == nil {
			t.Error("resolution before SetTrie should panic")
		}
	}()
	s.Queue("root")
}

func TestDoAdd_ResolvesAsAdd(t *testing.T) {
	s := baseStore(t)
	s.DoAdd("root.newq", Blueprint{
		Properties: map[string]string{"capacity": "10"},
	})

	q := s.Queue("root.newq")
	if q == nil {
		t.Fatal("staged add should resolve")
	}
	if q.Status != StatusAdd {
		t.Errorf("Status = %v, want ADD", q.Status)
	}
	if q.Name != "newq" || q.ParentPath != "root" || q.Level != 1 {
		t.Errorf("blueprint defaults not filled: %+v", q)
	}
	if q.Properties["capacity"] != "10" {
		t.Errorf("capacity = %q, want 10", q.Properties["capacity"])
	}
}

func TestDoDelete_OnAddRemovesOutright(t *testing.T) {
	s := baseStore(t)
	s.DoAdd("root.newq", Blueprint{})
	s.DoDelete("root.newq")

	if s.Queue("root.newq") != nil {
		t.Error("deleted pending add should vanish entirely")
	}
	if s.Status("root.newq") != StatusUnchanged {
		t.Error("no tombstone should remain for a never-committed queue")
	}
	if len(s.Deletions()) != 0 {
		t.Errorf("Deletions() = %v, want empty", s.Deletions())
	}
}

func TestDoUpdate_OverlaysBaseline(t *testing.T) {
	s := baseStore(t)
	s.DoUpdate("root.a", map[string]string{
		"yarn.scheduler.capacity.root.a.capacity": "55",
	})

	q := s.Queue("root.a")
	if q.Status != StatusUpdate {
		t.Errorf("Status = %v, want UPDATE", q.Status)
	}
	if q.Properties["capacity"] != "55" {
		t.Errorf("capacity = %q, want 55", q.Properties["capacity"])
	}
	// Keys not mentioned keep their committed value.
	if q.Properties["state"] != "RUNNING" {
		t.Errorf("state = %q, unmentioned keys must stay", q.Properties["state"])
	}
}

func TestDoUpdate_CumulativeReplacesNotMerges(t *testing.T) {
	s := baseStore(t)
	s.DoUpdate("root.a", map[string]string{
		"yarn.scheduler.capacity.root.a.capacity": "55",
	})
	// The second call carries the complete current set; the capacity
	// modification is gone from it, so it reverts.
	s.DoUpdate("root.a", map[string]string{
		"yarn.scheduler.capacity.root.a.state": "STOPPED",
	})

	q := s.Queue("root.a")
	if q.Properties["capacity"] != "40%" {
		t.Errorf("capacity = %q, want committed 40%%", q.Properties["capacity"])
	}
	if q.Properties["state"] != "STOPPED" {
		t.Errorf("state = %q, want STOPPED", q.Properties["state"])
	}
}

func TestDoUpdate_EmptyClearsPending(t *testing.T) {
	s := baseStore(t)
	s.DoUpdate("root.a", map[string]string{
		"yarn.scheduler.capacity.root.a.capacity": "55",
	})
	if !s.IsStagedUpdate("root.a") {
		t.Fatal("update should be staged")
	}
	s.DoUpdate("root.a", map[string]string{})
	if s.IsStagedUpdate("root.a") {
		t.Error("empty cumulative update should clear the pending update")
	}
	if s.Queue("root.a").Status != StatusUnchanged {
		t.Error("queue should be back to UNCHANGED")
	}
}

func TestDoUpdate_FoldsIntoPendingAdd(t *testing.T) {
	s := baseStore(t)
	s.DoAdd("root.newq", Blueprint{
		Properties: map[string]string{"capacity": "10"},
	})
	s.DoUpdate("root.newq", map[string]string{
		"yarn.scheduler.capacity.root.newq.capacity": "20",
		UIHintKey: "weight",
	})

	q := s.Queue("root.newq")
	if q.Status != StatusAdd {
		t.Errorf("Status = %v, folding an update must keep ADD", q.Status)
	}
	if q.Properties["capacity"] != "20" {
		t.Errorf("capacity = %q, want 20", q.Properties["capacity"])
	}
	if got := s.CapacityModeHint("root.newq"); got != "weight" {
		t.Errorf("CapacityModeHint = %q, want weight", got)
	}
}

func TestDoDelete_KeepsLastKnownValues(t *testing.T) {
	s := baseStore(t)
	s.DoDelete("root.b")

	q := s.Queue("root.b")
	if q.Status != StatusDelete {
		t.Errorf("Status = %v, want DELETE", q.Status)
	}
	if q.Properties["capacity"] != "60%" {
		t.Errorf("deleted queue still renders last-known values, got %q", q.Properties["capacity"])
	}
}

func TestDoDelete_SupersedesUpdate(t *testing.T) {
	s := baseStore(t)
	s.DoUpdate("root.b", map[string]string{
		"yarn.scheduler.capacity.root.b.capacity": "70",
	})
	s.DoDelete("root.b")

	q := s.Queue("root.b")
	if q.Status != StatusDelete {
		t.Errorf("Status = %v, want DELETE", q.Status)
	}
	if q.Properties["capacity"] != "60%" {
		t.Errorf("superseded update must not apply, got %q", q.Properties["capacity"])
	}
	if len(s.Updates()) != 0 {
		t.Errorf("Updates() = %v, want empty", s.Updates())
	}
}

func TestDeleteChange_RevertsToBaseline(t *testing.T) {
	s := baseStore(t)
	s.DoDelete("root.b")
	s.DeleteChange("root.b")

	if s.Queue("root.b").Status != StatusUnchanged {
		t.Error("reverted queue should be UNCHANGED")
	}
}

func TestQueue_ReturnsIndependentCopies(t *testing.T) {
	s := baseStore(t)

	q1 := s.Queue("root.a")
	q1.Properties["capacity"] = "tampered"

	q2 := s.Queue("root.a")
	if q2.Properties["capacity"] != "40%" {
		t.Error("mutating a resolved queue leaked into store state")
	}
}

func TestBlueprintIsolation(t *testing.T) {
	s := baseStore(t)
	bp := Blueprint{Properties: map[string]string{"capacity": "10"}}
	s.DoAdd("root.newq", bp)

	// Mutating the caller's map after staging must not affect the store.
	bp.Properties["capacity"] = "tampered"
	if got := s.Queue("root.newq").Properties["capacity"]; got != "10" {
		t.Errorf("capacity = %q, blueprint not cloned on DoAdd", got)
	}
}

func TestAllQueues_UnionWithAdds(t *testing.T) {
	s := baseStore(t)
	s.DoAdd("root.c", Blueprint{})
	s.DoDelete("root.b")

	all := s.AllQueues()
	paths := make([]string, len(all))
	for i, q := range all {
		paths[i] = q.Path
	}
	want := []string{"root", "root.a", "root.b", "root.c"}
	if len(paths) != len(want) {
		t.Fatalf("AllQueues paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("AllQueues paths = %v, want %v", paths, want)
		}
	}
}

func TestStagedAddsUnder(t *testing.T) {
	s := baseStore(t)
	s.DoAdd("root.a.x", Blueprint{ParentPath: "root.a"})
	s.DoAdd("root.a.y", Blueprint{ParentPath: "root.a"})
	s.DoAdd("root.z", Blueprint{})

	got := s.StagedAddsUnder("root.a")
	if len(got) != 2 || got[0] != "root.a.x" || got[1] != "root.a.y" {
		t.Errorf("StagedAddsUnder = %v", got)
	}
}

func TestReconcile_DropsUnresolvable(t *testing.T) {
	s := baseStore(t)
	s.DoUpdate("root.a", map[string]string{
		"yarn.scheduler.capacity.root.a.capacity": "55",
	})
	s.DoDelete("root.b")
	s.DoAdd("root.b.sub", Blueprint{ParentPath: "root.b"})
	s.DoAdd("root.b.sub.deep", Blueprint{ParentPath: "root.b.sub"})

	// The new snapshot keeps only root.a.
	newTrie, _ := trie.Build([]prop.Property{
		{Name: "yarn.scheduler.capacity.root.queues", Value: "a"},
	})
	dropped := s.Reconcile(newTrie)

	want := []string{"root.b", "root.b.sub", "root.b.sub.deep"}
	if len(dropped) != len(want) {
		t.Fatalf("dropped = %v, want %v", dropped, want)
	}
	for i := range want {
		if dropped[i] != want[i] {
			t.Fatalf("dropped = %v, want %v", dropped, want)
		}
	}
	if !s.IsStagedUpdate("root.a") {
		t.Error("update on a surviving path must be kept")
	}
}

func TestReconcile_KeepsChainedAdds(t *testing.T) {
	s := baseStore(t)
	s.DoAdd("root.a.x", Blueprint{ParentPath: "root.a"})
	s.DoAdd("root.a.x.y", Blueprint{ParentPath: "root.a.x"})

	newTrie, _ := trie.Build([]prop.Property{
		{Name: "yarn.scheduler.capacity.root.queues", Value: "a"},
	})
	dropped := s.Reconcile(newTrie)
	if len(dropped) != 0 {
		t.Errorf("dropped = %v, chained adds under a surviving parent must be kept", dropped)
	}
	if !s.IsStagedAdd("root.a.x.y") {
		t.Error("root.a.x.y should survive reconciliation")
	}
}
