package report

import (
	"strings"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/verte-zerg/randomhints/internal/model"
)

func TestListSummary(t *testing.T) {
	paths := model.Paths{
		Applications: "applications.txt",
		Targets:      "targets.txt",
		Objects:      "objects.txt",
		Actions:      "actions.txt",
	}
	sizes := model.Sizes{Applications: 2, Targets: 3, Objects: 2, Actions: 1}
	lines := ListSummary(paths, sizes, 12)
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d: %q", len(lines), lines)
	}
	if lines[1] != "applications applications.txt     2" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[6] != "Patterns: 12 (2 x 3 x 2 x 1)" {
		t.Fatalf("unexpected patterns line: %q", lines[6])
	}
}

func TestItemLists(t *testing.T) {
	lines := ItemLists([4][]string{{"b", "a", "b"}, {"t"}, {"o"}, {"x", "y"}})
	want := []string{
		"[applications] 3", "  b", "  a", "  b",
		"",
		"[targets] 1", "  t",
		"",
		"[objects] 1", "  o",
		"",
		"[actions] 2", "  x", "  y",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected item lines:\n%s", strings.Join(lines, "\n"))
	}
}

func TestHistoryTable(t *testing.T) {
	hints := []model.SavedHint{{
		SavedAt: time.Date(2024, 5, 1, 12, 3, 4, 0, time.Local),
		Selection: model.Selection{
			Application: "SNS",
			Target:      "students",
			Object:      "photos",
			Action:      "share",
			Color:       colorful.Color{R: 1, G: 0, B: 0},
		},
		SnapshotPath: "Save/2024-05-01-120304-00.txt",
	}}
	lines := HistoryTable(hints)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, want := range []string{"2024-05-01 12:03:04", "SNS", "students", "photos", "share", "#ff0000", "Save/2024-05-01-120304-00.txt"} {
		if !strings.Contains(lines[1], want) {
			t.Fatalf("expected %q in %q", want, lines[1])
		}
	}
}

func TestHint(t *testing.T) {
	sel := model.Selection{Application: "a", Target: "t", Object: "o", Action: "x"}
	if got := Hint(sel); got != "a | t | o | x" {
		t.Fatalf("unexpected hint %q", got)
	}
}
