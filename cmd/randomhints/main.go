// Package main provides the CLI entrypoint for randomhints.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/randomhints/internal/composer"
	"github.com/verte-zerg/randomhints/internal/config"
	"github.com/verte-zerg/randomhints/internal/logging"
	"github.com/verte-zerg/randomhints/internal/model"
	"github.com/verte-zerg/randomhints/internal/report"
	"github.com/verte-zerg/randomhints/internal/snapshot"
	"github.com/verte-zerg/randomhints/internal/store"
	"github.com/verte-zerg/randomhints/internal/tui"
)

const (
	defaultDir      = "."
	defaultSaveDir  = "Save"
	defaultLogLevel = "info"
	defaultCount    = 1
	defaultLimit    = 20
)

var (
	listDir          string
	listApplications string
	listTargets      string
	listObjects      string
	listActions      string
	logLevel         string

	appSaveDir string
	appHistory bool
	appSeed    int64

	generateCount int
	generateSeed  int64

	historyLimit int

	listsItems bool

	initForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "randomhints",
		Short:         "Random app idea generator",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runHintsCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&listDir, "dir", defaultDir, "directory containing the item lists")
	pf.StringVar(&listApplications, "applications", model.DefaultApplicationsFile, "applications list file")
	pf.StringVar(&listTargets, "targets", model.DefaultTargetsFile, "targets list file")
	pf.StringVar(&listObjects, "objects", model.DefaultObjectsFile, "objects list file")
	pf.StringVar(&listActions, "actions", model.DefaultActionsFile, "actions list file")
	pf.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error, off)")

	rootCmd.Flags().StringVar(&appSaveDir, "save-dir", defaultSaveDir, "directory for saved snapshots")
	rootCmd.Flags().BoolVar(&appHistory, "history", true, "record saved hints in the history database")
	rootCmd.Flags().Int64Var(&appSeed, "seed", 0, "random seed (0 uses the current time)")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newListsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runHintsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.NewFile(config.DefaultLogPath(), level)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	paths := resolvePaths(cfg)
	c, err := loadComposer(cfg.Seed, paths, logging.Component(logger, "composer"))
	if err != nil {
		return err
	}
	c.Generate()

	saver := &snapshot.Saver{Dir: cfg.SaveDir}
	if cfg.History {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			// Saving snapshots still works without history.
			logger.Error().Err(err).Msg("failed to open history db")
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logErrf("failed to close db: %v\n", cerr)
				}
			}()
			saver.Store = st
		}
	}

	m := tui.NewModel(c, paths, saver, logging.Component(logger, "tui"))
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print hints without the TUI",
		Args:  cobra.NoArgs,
		RunE:  runGenerateCmd,
	}
	cmd.Flags().IntVar(&generateCount, "count", defaultCount, "number of hints to print")
	cmd.Flags().Int64Var(&generateSeed, "seed", 0, "random seed (0 uses the current time)")
	return cmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if generateCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	logger, err := consoleLogger(cfg)
	if err != nil {
		return err
	}
	c, err := loadComposer(generateSeed, resolvePaths(cfg), logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colored := isTerminal(out)
	for i := 0; i < generateCount; i++ {
		sel := c.Generate()
		line := report.Hint(sel)
		if colored {
			line = lipgloss.NewStyle().Foreground(lipgloss.Color(sel.Color.Hex())).Bold(true).Render(sel.Application) +
				strings.TrimPrefix(line, sel.Application)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newListsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show item list sizes and the pattern count",
		Args:  cobra.NoArgs,
		RunE:  runListsCmd,
	}
	cmd.Flags().BoolVar(&listsItems, "items", false, "also print every loaded item")
	return cmd
}

func runListsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := consoleLogger(cfg)
	if err != nil {
		return err
	}
	paths := resolvePaths(cfg)
	c, err := loadComposer(0, paths, logger)
	if err != nil {
		return err
	}
	lines := report.ListSummary(paths, c.Sizes(), c.PatternCount())
	if listsItems {
		lines = append(lines, "")
		lines = append(lines, report.ItemLists(c.Lists())...)
	}
	return writeLines(cmd.OutOrStdout(), lines)
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved hints",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", defaultLimit, "number of hints to show (0 for all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	hints, err := st.ListHints(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list hints: %w", err)
	}
	if len(hints) == 0 {
		return writeLines(cmd.OutOrStdout(), []string{"No saved hints."})
	}
	return writeLines(cmd.OutOrStdout(), report.HistoryTable(hints))
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write sample item lists",
		Args:  cobra.NoArgs,
		RunE:  runInitCmd,
	}
	cmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	paths := resolvePaths(cfg)
	files := []struct {
		path  string
		items []string
	}{
		{paths.Applications, sampleApplications},
		{paths.Targets, sampleTargets},
		{paths.Objects, sampleObjects},
		{paths.Actions, sampleActions},
	}
	if !initForce {
		for _, f := range files {
			if _, err := os.Stat(f.path); err == nil {
				return fmt.Errorf("item list already exists: %s (use --force to overwrite)", f.path)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("failed to stat item list: %w", err)
			}
		}
	}
	for _, f := range files {
		if err := writeItemList(f.path, f.items); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", f.path); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// loadComposer performs the initial load. Any failure is fatal for the run.
func loadComposer(seed int64, paths model.Paths, logger zerolog.Logger) (*composer.Composer, error) {
	var rnd *rand.Rand
	if seed != 0 {
		rnd = rand.New(rand.NewSource(seed))
	}
	c := composer.New(rnd)
	if err := c.LoadAll(paths); err != nil {
		return nil, err
	}
	sizes := c.Sizes()
	logger.Debug().
		Int("applications", sizes.Applications).
		Int("targets", sizes.Targets).
		Int("objects", sizes.Objects).
		Int("actions", sizes.Actions).
		Int("patterns", c.PatternCount()).
		Msg("lists loaded")
	return c, nil
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dir", &listDir, fileCfg.Lists.Dir)
	applyStringConfig(cmd, "applications", &listApplications, fileCfg.Lists.Applications)
	applyStringConfig(cmd, "targets", &listTargets, fileCfg.Lists.Targets)
	applyStringConfig(cmd, "objects", &listObjects, fileCfg.Lists.Objects)
	applyStringConfig(cmd, "actions", &listActions, fileCfg.Lists.Actions)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.App.LogLevel)
	applyStringConfig(cmd, "save-dir", &appSaveDir, fileCfg.App.SaveDir)
	applyBoolConfig(cmd, "history", &appHistory, fileCfg.App.History)

	cfg := model.Config{
		Dir:          listDir,
		Applications: listApplications,
		Targets:      listTargets,
		Objects:      listObjects,
		Actions:      listActions,
		SaveDir:      appSaveDir,
		History:      appHistory,
		Seed:         appSeed,
		LogLevel:     logLevel,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func resolvePaths(cfg model.Config) model.Paths {
	return model.Paths{
		Applications: resolveListPath(cfg.Dir, cfg.Applications),
		Targets:      resolveListPath(cfg.Dir, cfg.Targets),
		Objects:      resolveListPath(cfg.Dir, cfg.Objects),
		Actions:      resolveListPath(cfg.Dir, cfg.Actions),
	}
}

func resolveListPath(dir, name string) string {
	if filepath.IsAbs(name) || dir == "" || dir == "." {
		return name
	}
	return filepath.Join(dir, name)
}

func validateConfig(cfg model.Config) error {
	names := map[string]string{
		"--applications": cfg.Applications,
		"--targets":      cfg.Targets,
		"--objects":      cfg.Objects,
		"--actions":      cfg.Actions,
	}
	for _, flag := range []string{"--applications", "--targets", "--objects", "--actions"} {
		if strings.TrimSpace(names[flag]) == "" {
			return fmt.Errorf("%s must not be empty", flag)
		}
	}
	if strings.TrimSpace(cfg.SaveDir) == "" {
		return fmt.Errorf("--save-dir must not be empty")
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

func consoleLogger(cfg model.Config) (zerolog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), err
	}
	return logging.Component(logging.NewConsole(level), "cli"), nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func writeItemList(path string, items []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create item list dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "itemlist-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp item list: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, item := range items {
		if _, err := fmt.Fprintln(writer, item); err != nil {
			return fmt.Errorf("failed to write item list: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush item list: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close item list: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write item list: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if flag := cmd.Flags().Lookup(name); flag == nil || flag.Changed {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if flag := cmd.Flags().Lookup(name); flag == nil || flag.Changed {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# randomhints configuration
# Uncomment a value to enable it. CLI flags override config values.

[lists]
# dir = %q                    # Directory containing the item lists
# applications = %q  # One application per line
# targets = %q            # One target per line
# objects = %q            # One object per line
# actions = %q            # One action per line

[app]
# save-dir = %q            # Where snapshots are written
# history = true              # Record saved hints in the history database
# log-level = %q            # debug, info, warn, error, off
`,
		defaultDir,
		model.DefaultApplicationsFile,
		model.DefaultTargetsFile,
		model.DefaultObjectsFile,
		model.DefaultActionsFile,
		defaultSaveDir,
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
