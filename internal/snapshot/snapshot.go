// Package snapshot saves the current screen to a timestamped text file.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"

	"github.com/verte-zerg/randomhints/internal/model"
)

const maxNameAttempts = 1000

// HintStore records saved hints.
type HintStore interface {
	InsertHint(ctx context.Context, hint model.SavedHint) error
}

// Saver writes snapshots into Dir and, when Store is set, records them.
type Saver struct {
	Dir   string
	Store HintStore
	Now   func() time.Time
}

// FileName returns the snapshot file name for t, e.g. 2024-05-01-120304-56.txt
// where the last field is hundredths of a second.
func FileName(t time.Time) string {
	return fmt.Sprintf("%s-%02d.txt", t.Format("2006-01-02-150405"), t.Nanosecond()/int(10*time.Millisecond))
}

// Save writes frame without ANSI styling and returns the saved record.
// The file is written even if recording to the store fails.
func (s *Saver) Save(ctx context.Context, frame string, sel model.Selection, patterns int) (model.SavedHint, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	savedAt := now()
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	path, err := writeUnique(filepath.Join(dir, FileName(savedAt)), plain(frame))
	if err != nil {
		return model.SavedHint{}, err
	}

	hint := model.SavedHint{
		ID:           uuid.NewString(),
		SavedAt:      savedAt,
		Selection:    sel,
		Patterns:     patterns,
		SnapshotPath: path,
	}
	if s.Store != nil {
		if err := s.Store.InsertHint(ctx, hint); err != nil {
			return hint, fmt.Errorf("saved %s but failed to record history: %w", path, err)
		}
	}
	return hint, nil
}

func plain(frame string) string {
	lines := strings.Split(ansi.Strip(frame), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	out := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	return out + "\n"
}

// writeUnique writes content to path, or to path with a -1, -2, ... suffix
// when that name is taken. It returns the path actually written.
func writeUnique(path, content string) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create save directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "snapshot-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.WriteString(content); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close snapshot: %w", err)
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 0; i < maxNameAttempts; i++ {
		candidate := path
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
		}
		// Link fails instead of replacing an existing file.
		err := os.Link(tmpPath, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("failed to write snapshot: %w", err)
		}
	}
	return "", fmt.Errorf("failed to write snapshot: too many files named %s", filepath.Base(path))
}
