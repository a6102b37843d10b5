package composer

import (
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/randomhints/internal/itemlist"
	"github.com/verte-zerg/randomhints/internal/model"
)

func writeLists(t *testing.T, dir string, apps, targets, objects, actions []string) model.Paths {
	t.Helper()
	paths := model.Paths{
		Applications: filepath.Join(dir, model.DefaultApplicationsFile),
		Targets:      filepath.Join(dir, model.DefaultTargetsFile),
		Objects:      filepath.Join(dir, model.DefaultObjectsFile),
		Actions:      filepath.Join(dir, model.DefaultActionsFile),
	}
	write := func(path string, items []string) {
		if err := os.WriteFile(path, []byte(strings.Join(items, "\n")+"\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	write(paths.Applications, apps)
	write(paths.Targets, targets)
	write(paths.Objects, objects)
	write(paths.Actions, actions)
	return paths
}

func seeded() *Composer {
	return New(rand.New(rand.NewSource(1)))
}

func TestLoadAllPatternCount(t *testing.T) {
	paths := writeLists(t, t.TempDir(),
		[]string{"a1", "a2"},
		[]string{"t1", "t2", "t3"},
		[]string{"o1", "o2"},
		[]string{"x1"},
	)
	c := seeded()
	if err := c.LoadAll(paths); err != nil {
		t.Fatalf("load all: %v", err)
	}
	if got := c.PatternCount(); got != 12 {
		t.Fatalf("expected 12 patterns, got %d", got)
	}
	want := model.Sizes{Applications: 2, Targets: 3, Objects: 2, Actions: 1}
	if got := c.Sizes(); got != want {
		t.Fatalf("expected sizes %+v, got %+v", want, got)
	}
}

func TestLoadAllRepeatable(t *testing.T) {
	paths := writeLists(t, t.TempDir(),
		[]string{"a", "b", "c"}, []string{"t"}, []string{"o", "p"}, []string{"x", "y"},
	)
	c := seeded()
	for i := 0; i < 3; i++ {
		if err := c.LoadAll(paths); err != nil {
			t.Fatalf("load all #%d: %v", i, err)
		}
		if got := c.PatternCount(); got != 12 {
			t.Fatalf("reload #%d: expected 12 patterns, got %d", i, got)
		}
	}
}

func TestLoadAllFailureKeepsPreviousState(t *testing.T) {
	dir := t.TempDir()
	paths := writeLists(t, dir,
		[]string{"a1", "a2"}, []string{"t1", "t2", "t3"}, []string{"o1", "o2"}, []string{"x1"},
	)
	c := seeded()
	if err := c.LoadAll(paths); err != nil {
		t.Fatalf("load all: %v", err)
	}
	before := c.Generate()
	listsBefore := c.Lists()

	// Change the first list, then break the last one.
	if err := os.WriteFile(paths.Applications, []byte("new\n"), 0o644); err != nil {
		t.Fatalf("rewrite applications: %v", err)
	}
	if err := os.Remove(paths.Actions); err != nil {
		t.Fatalf("remove actions: %v", err)
	}

	err := c.LoadAll(paths)
	if !errors.Is(err, itemlist.ErrFileUnreadable) {
		t.Fatalf("expected ErrFileUnreadable, got %v", err)
	}
	if !strings.Contains(err.Error(), paths.Actions) {
		t.Fatalf("expected error to name %s: %v", paths.Actions, err)
	}
	if got := c.PatternCount(); got != 12 {
		t.Fatalf("expected pattern count to stay 12, got %d", got)
	}
	listsAfter := c.Lists()
	for i := range listsBefore {
		if strings.Join(listsBefore[i], ",") != strings.Join(listsAfter[i], ",") {
			t.Fatalf("list %d changed after failed reload: %q -> %q", i, listsBefore[i], listsAfter[i])
		}
	}
	if c.Current() != before {
		t.Fatalf("expected selection to survive failed reload")
	}
}

func TestLoadAllEmptyListFails(t *testing.T) {
	dir := t.TempDir()
	paths := writeLists(t, dir, []string{"a"}, []string{"t"}, []string{"o"}, []string{"x"})
	if err := os.WriteFile(paths.Objects, []byte("\n  \n"), 0o644); err != nil {
		t.Fatalf("rewrite objects: %v", err)
	}
	c := seeded()
	if err := c.LoadAll(paths); !errors.Is(err, itemlist.ErrEmptyList) {
		t.Fatalf("expected ErrEmptyList, got %v", err)
	}
	if c.Loaded() {
		t.Fatalf("expected composer to stay unloaded")
	}
	if c.PatternCount() != 0 {
		t.Fatalf("expected zero patterns before any successful load")
	}
}

func TestGenerateBeforeLoad(t *testing.T) {
	c := seeded()
	if sel := c.Generate(); !sel.IsZero() {
		t.Fatalf("expected zero selection before load, got %+v", sel)
	}
}

func TestGenerateReturnsListMembers(t *testing.T) {
	apps := []string{"a1", "a2", "a3"}
	targets := []string{"only-target"}
	objects := []string{"o1", "o2"}
	actions := []string{"x1", "x2", "x3", "x4"}
	paths := writeLists(t, t.TempDir(), apps, targets, objects, actions)
	c := seeded()
	if err := c.LoadAll(paths); err != nil {
		t.Fatalf("load all: %v", err)
	}

	seenApps := map[string]bool{}
	seenActions := map[string]bool{}
	for i := 0; i < 500; i++ {
		sel := c.Generate()
		if !contains(apps, sel.Application) || !contains(objects, sel.Object) || !contains(actions, sel.Action) {
			t.Fatalf("selection not drawn from lists: %+v", sel)
		}
		if sel.Target != "only-target" {
			t.Fatalf("expected single target, got %q", sel.Target)
		}
		if sel.Color.R < 0 || sel.Color.R >= 1 || sel.Color.G < 0 || sel.Color.G >= 1 || sel.Color.B < 0 || sel.Color.B >= 1 {
			t.Fatalf("color out of range: %+v", sel.Color)
		}
		if c.Current() != sel {
			t.Fatalf("expected generated selection to become current")
		}
		seenApps[sel.Application] = true
		seenActions[sel.Action] = true
	}
	if len(seenApps) != len(apps) {
		t.Fatalf("expected every application to be chosen, saw %v", seenApps)
	}
	if len(seenActions) != len(actions) {
		t.Fatalf("expected every action to be chosen, saw %v", seenActions)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	paths := writeLists(t, t.TempDir(),
		[]string{"a", "b", "c"}, []string{"t", "u"}, []string{"o", "p"}, []string{"x", "y"},
	)
	first := New(rand.New(rand.NewSource(42)))
	second := New(rand.New(rand.NewSource(42)))
	if err := first.LoadAll(paths); err != nil {
		t.Fatalf("load all: %v", err)
	}
	if err := second.LoadAll(paths); err != nil {
		t.Fatalf("load all: %v", err)
	}
	for i := 0; i < 20; i++ {
		if a, b := first.Generate(), second.Generate(); a != b {
			t.Fatalf("draw %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestReloadKeepsSelection(t *testing.T) {
	paths := writeLists(t, t.TempDir(), []string{"a"}, []string{"t"}, []string{"o"}, []string{"x"})
	c := seeded()
	if err := c.LoadAll(paths); err != nil {
		t.Fatalf("load all: %v", err)
	}
	sel := c.Generate()
	if err := os.WriteFile(paths.Applications, []byte("b\nc\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := c.LoadAll(paths); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if c.Current() != sel {
		t.Fatalf("expected reload to keep the displayed selection")
	}
	if c.PatternCount() != 2 {
		t.Fatalf("expected 2 patterns after reload, got %d", c.PatternCount())
	}
}

func TestProductSaturates(t *testing.T) {
	if got := product(math.MaxInt/2, 3); got != math.MaxInt {
		t.Fatalf("expected saturation, got %d", got)
	}
	if got := product(2, 3, 2, 1); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}
