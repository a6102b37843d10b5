// Package model defines shared data structures.
package model

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Default item list file names.
const (
	DefaultApplicationsFile = "applications.txt"
	DefaultTargetsFile      = "targets.txt"
	DefaultObjectsFile      = "objects.txt"
	DefaultActionsFile      = "actions.txt"
)

// Config defines runtime settings after merging flags and the config file.
type Config struct {
	Dir          string
	Applications string
	Targets      string
	Objects      string
	Actions      string
	SaveDir      string
	History      bool
	Seed         int64
	LogLevel     string
}

// Paths holds the four item list file paths.
type Paths struct {
	Applications string
	Targets      string
	Objects      string
	Actions      string
}

// Sizes holds the number of items in each list.
type Sizes struct {
	Applications int
	Targets      int
	Objects      int
	Actions      int
}

// Selection is one generated hint.
type Selection struct {
	Application string
	Target      string
	Object      string
	Action      string
	Color       colorful.Color
}

// IsZero reports whether nothing has been generated yet.
func (s Selection) IsZero() bool {
	return s.Application == "" && s.Target == "" && s.Object == "" && s.Action == ""
}

// SavedHint is a saved snapshot record.
type SavedHint struct {
	ID           string
	SavedAt      time.Time
	Selection    Selection
	Patterns     int
	SnapshotPath string
}
