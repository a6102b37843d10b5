// Package itemlist loads item lists from files.
package itemlist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

const maxLineBytes = 1 << 20

// Load error kinds. Use errors.Is to tell them apart.
var (
	ErrFileUnreadable = errors.New("item list is unreadable")
	ErrEmptyList      = errors.New("item list has no items")
)

// LoadError reports a failed load for a single file.
type LoadError struct {
	Path string
	Kind error
	Err  error
}

func (e *LoadError) Error() string {
	if e.Kind == ErrEmptyList {
		return fmt.Sprintf("item list `%s` has no items", e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("item list `%s` could not be read: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("item list `%s` could not be read", e.Path)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Load reads one item per line from path. Lines are trimmed and blank lines
// skipped; order and duplicates are preserved. The result is never empty.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: ErrFileUnreadable, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only item list.
			_ = cerr
		}
	}()

	var items []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: path, Kind: ErrFileUnreadable, Err: err}
	}
	if len(items) == 0 {
		return nil, &LoadError{Path: path, Kind: ErrEmptyList}
	}
	return items, nil
}
