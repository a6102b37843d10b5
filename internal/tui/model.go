// Package tui provides the Bubble Tea hint interface.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/randomhints/internal/composer"
	"github.com/verte-zerg/randomhints/internal/model"
)

// Saver persists a snapshot of the current board.
type Saver interface {
	Save(ctx context.Context, frame string, sel model.Selection, patterns int) (model.SavedHint, error)
}

type savedMsg struct {
	hint model.SavedHint
}

type saveFailedMsg struct {
	err error
}

// Model implements the Bubble Tea hint UI.
type Model struct {
	composer *composer.Composer
	paths    model.Paths
	saver    Saver
	logger   zerolog.Logger

	keys keyMap
	help help.Model

	width  int
	height int

	errMsg string
	status string
}

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8CA0B8")).Bold(true)
	appStyle   = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F0F0F0")).
			Align(lipgloss.Center).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true)
	itemStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#D0D0D0")).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	modalStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#FF4D4F")).
			Padding(1, 2)
)

// NewModel constructs the hint UI around an already loaded composer.
func NewModel(c *composer.Composer, paths model.Paths, saver Saver, logger zerolog.Logger) *Model {
	return &Model{
		composer: c,
		paths:    paths,
		saver:    saver,
		logger:   logger,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case savedMsg:
		m.status = "Saved " + msg.hint.SnapshotPath
		m.logger.Info().Str("path", msg.hint.SnapshotPath).Str("id", msg.hint.ID).Msg("snapshot saved")
		return m, nil
	case saveFailedMsg:
		m.errMsg = msg.err.Error()
		m.status = "Save failed"
		m.logger.Error().Err(msg.err).Msg("snapshot failed")
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.errMsg != "" {
		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case key.Matches(msg, m.keys.Dismiss):
			m.errMsg = ""
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Generate):
		m.composer.Generate()
		m.status = ""
	case key.Matches(msg, m.keys.Save):
		return m, m.saveCmd()
	case key.Matches(msg, m.keys.Reload):
		m.reload()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) reload() {
	if err := m.composer.LoadAll(m.paths); err != nil {
		m.errMsg = err.Error()
		m.logger.Warn().Err(err).Msg("reload failed; keeping previous lists")
		return
	}
	sizes := m.composer.Sizes()
	m.status = fmt.Sprintf("Reloaded lists: %d patterns", m.composer.PatternCount())
	m.logger.Debug().
		Int("applications", sizes.Applications).
		Int("targets", sizes.Targets).
		Int("objects", sizes.Objects).
		Int("actions", sizes.Actions).
		Int("patterns", m.composer.PatternCount()).
		Msg("lists reloaded")
}

func (m *Model) saveCmd() tea.Cmd {
	if m.saver == nil {
		m.status = "Saving is disabled"
		return nil
	}
	frame := m.renderBoard()
	sel := m.composer.Current()
	patterns := m.composer.PatternCount()
	saver := m.saver
	m.status = "Saving..."
	return func() tea.Msg {
		hint, err := saver.Save(context.Background(), frame, sel, patterns)
		if err != nil {
			return saveFailedMsg{err: err}
		}
		return savedMsg{hint: hint}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.errMsg != "" {
		return m.renderError()
	}
	footer := m.help.View(m.keys)
	if m.status != "" {
		footer += "\n" + statusStyle.Render(m.status)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, m.renderBoard(), "", footer)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderBoard draws the hint itself; it is also what gets saved.
func (m *Model) renderBoard() string {
	width := m.boardWidth()
	sel := m.composer.Current()
	sizes := m.composer.Sizes()

	app := appStyle.
		BorderForeground(lipgloss.Color(sel.Color.Hex())).
		Width(width - 2).
		Render(sel.Application)
	target := itemStyle.Width(width - 2).Render(sel.Target)
	object := itemStyle.Width(width - 2).Render(sel.Object)
	action := itemStyle.Width(width - 2).Render(sel.Action)

	counts := countStyle.Render(fmt.Sprintf("Applications:%d\nTargets:%d\nObjects:%d\nActions:%d",
		sizes.Applications, sizes.Targets, sizes.Objects, sizes.Actions))
	patterns := countStyle.Render(fmt.Sprintf("\n\nPossible:\n%d patterns", m.composer.PatternCount()))
	stats := lipgloss.JoinHorizontal(lipgloss.Top, counts, "    ", patterns)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("RandomHints"),
		app,
		target,
		object,
		action,
		"",
		stats,
	)
}

func (m *Model) renderError() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Bold(true).Render("Error"),
		"",
		m.errMsg,
		"",
		mutedStyle.Render("esc to dismiss"),
	)
	box := modalStyle.Width(modalWidth(m.width)).Render(body)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) boardWidth() int {
	if m.width == 0 {
		return 60
	}
	return clamp(int(float64(m.width)*0.85), 24, 90)
}

func modalWidth(width int) int {
	if width == 0 {
		return 60
	}
	return clamp(width-4, 30, 80)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
