package report

import (
	"fmt"
	"strconv"

	"github.com/verte-zerg/randomhints/internal/model"
)

// ListSummary describes each item list and the resulting pattern count.
func ListSummary(paths model.Paths, sizes model.Sizes, patterns int) []string {
	rows := [][]string{
		{"applications", paths.Applications, strconv.Itoa(sizes.Applications)},
		{"targets", paths.Targets, strconv.Itoa(sizes.Targets)},
		{"objects", paths.Objects, strconv.Itoa(sizes.Objects)},
		{"actions", paths.Actions, strconv.Itoa(sizes.Actions)},
	}
	lines := FormatTable([]string{"List", "File", "Items"}, rows, map[int]bool{2: true})
	lines = append(lines, "", fmt.Sprintf("Patterns: %d (%d x %d x %d x %d)",
		patterns, sizes.Applications, sizes.Targets, sizes.Objects, sizes.Actions))
	return lines
}

// ItemLists prints each list under its name, in application, target,
// object, action order.
func ItemLists(lists [4][]string) []string {
	names := [4]string{"applications", "targets", "objects", "actions"}
	var lines []string
	for i, items := range lists {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, fmt.Sprintf("[%s] %d", names[i], len(items)))
		for _, item := range items {
			lines = append(lines, "  "+item)
		}
	}
	return lines
}

// HistoryTable lists saved hints in the order given.
func HistoryTable(hints []model.SavedHint) []string {
	rows := make([][]string, 0, len(hints))
	for _, h := range hints {
		rows = append(rows, []string{
			h.SavedAt.Local().Format("2006-01-02 15:04:05"),
			h.Selection.Application,
			h.Selection.Target,
			h.Selection.Object,
			h.Selection.Action,
			h.Selection.Color.Hex(),
			h.SnapshotPath,
		})
	}
	return FormatTable([]string{"Saved", "Application", "Target", "Object", "Action", "Color", "Snapshot"}, rows, nil)
}

// Hint formats a selection on a single line.
func Hint(sel model.Selection) string {
	return fmt.Sprintf("%s | %s | %s | %s", sel.Application, sel.Target, sel.Object, sel.Action)
}
