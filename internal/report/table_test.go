package report

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"List", "Items", "Note"}
	rows := [][]string{
		{"applications", "12", "ok"},
		{"targets", "3", ""},
	}
	rightAlign := map[int]bool{1: true}

	lines := FormatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "List         Items Note" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "applications    12 ok" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "targets          3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := FormatTable([]string{"Item", "N"}, [][]string{{"ゲーム", "1"}, {"app", "2"}}, nil)
	if lines[1] != "ゲーム 1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "app    2" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := FormatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %q", lines)
	}
}
