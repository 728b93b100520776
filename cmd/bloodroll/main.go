// Package main provides the CLI entrypoint for bloodroll.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/bloodroll/internal/config"
	"github.com/verte-zerg/bloodroll/internal/logging"
	"github.com/verte-zerg/bloodroll/internal/model"
	"github.com/verte-zerg/bloodroll/internal/printers"
	"github.com/verte-zerg/bloodroll/internal/store"
	"github.com/verte-zerg/bloodroll/internal/tui"
)

var _ tui.Store = (*store.Store)(nil)

var (
	flagDB       string
	flagLogFile  string
	flagLogLevel string

	outputJSON   bool
	entriesLimit int
	addDate      string
	addNote      string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bloodroll",
		Short:         "Blood panel rolodex dashboard",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default $XDG_DATA_HOME/bloodroll/bloodroll.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "log file path, empty disables logging")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newComponentsCmd())
	rootCmd.AddCommand(newEntriesCmd())
	rootCmd.AddCommand(newAddCmd())

	return rootCmd
}

// resolveConfig merges defaults, the config file, the environment and flags.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.Merge(config.Defaults(), fileCfg.Overrides(), config.LoadEnv())
	applyStringFlag(cmd, "db", &cfg.DBPath, flagDB)
	applyStringFlag(cmd, "log-file", &cfg.LogFile, flagLogFile)
	applyStringFlag(cmd, "log-level", &cfg.LogLevel, flagLogLevel)

	if cfg.DBPath == "" {
		return model.Config{}, fmt.Errorf("database path must not be empty")
	}
	if cfg.DBPath, err = config.ExpandPath(cfg.DBPath); err != nil {
		return model.Config{}, err
	}
	if cfg.LogFile != "" {
		if cfg.LogFile, err = config.ExpandPath(cfg.LogFile); err != nil {
			return model.Config{}, err
		}
	}
	return cfg, nil
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

// session holds what every command opens: the log sink and the store.
type session struct {
	cfg   model.Config
	store *store.Store
	logs  io.Closer
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	logs, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		closeLogs(logs)
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return &session{cfg: cfg, store: st, logs: logs}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
	closeLogs(s.logs)
}

func closeLogs(c io.Closer) {
	if err := c.Close(); err != nil {
		logErrf("failed to close log file: %v\n", err)
	}
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("bloodroll needs an interactive terminal; use the components or entries commands for plain output")
	}
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	m, err := tui.NewModel(sess.store)
	if err != nil {
		return fmt.Errorf("failed to load components: %w", err)
	}
	log.Info().Str("db", sess.cfg.DBPath).Msg("dashboard started")
	program := tea.NewProgram(m, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if fm, ok := final.(tui.Model); ok && fm.Err() != nil {
		return fm.Err()
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

func newComponentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "components",
		Short: "List components",
		Args:  cobra.NoArgs,
		RunE:  runComponentsCmd,
	}
	cmd.Flags().BoolVar(&outputJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func runComponentsCmd(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	components, err := sess.store.ListComponents(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list components: %w", err)
	}
	p := printers.New(outputJSON)
	p.Out = cmd.OutOrStdout()
	return p.Components(components)
}

func newEntriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries <component>",
		Short: "List a component's entries, most recent first",
		Args:  cobra.ExactArgs(1),
		RunE:  runEntriesCmd,
	}
	cmd.Flags().IntVar(&entriesLimit, "limit", 0, "show at most N entries (0 = all)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func runEntriesCmd(cmd *cobra.Command, args []string) error {
	if entriesLimit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	comp, err := findComponent(cmd.Context(), sess.store, args[0])
	if err != nil {
		return err
	}
	entries, err := sess.store.ListEntries(cmd.Context(), comp.ID, entriesLimit)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	p := printers.New(outputJSON)
	p.Out = cmd.OutOrStdout()
	return p.Entries(comp, entries)
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <component> <value>",
		Short: "Add an entry without opening the dashboard",
		Args:  cobra.ExactArgs(2),
		RunE:  runAddCmd,
	}
	cmd.Flags().StringVar(&addDate, "date", "", "entry date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&addNote, "note", "", "optional note")
	return cmd
}

func runAddCmd(cmd *cobra.Command, args []string) error {
	e, err := buildEntry(args[1], addDate, addNote, time.Now())
	if err != nil {
		return err
	}
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	comp, err := findComponent(cmd.Context(), sess.store, args[0])
	if err != nil {
		return err
	}
	e.ComponentID = comp.ID
	if _, err := sess.store.AddEntry(cmd.Context(), e); err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Entry added: %s %s %s on %s\n",
		comp.Name, model.FormatValue(e.Value), comp.Unit, e.DateString())
	return err
}

// buildEntry applies the dialog's rules: numeric value, empty date means today.
func buildEntry(value, date, note string, now time.Time) (model.Entry, error) {
	v, err := model.ParseValue(value)
	if err != nil {
		return model.Entry{}, err
	}
	d := model.Day(now)
	if strings.TrimSpace(date) != "" {
		if d, err = model.ParseDate(date); err != nil {
			return model.Entry{}, err
		}
	}
	return model.Entry{Value: v, Date: d, Notes: strings.TrimSpace(note)}, nil
}

func findComponent(ctx context.Context, st *store.Store, name string) (model.Component, error) {
	comp, err := st.FindComponent(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return model.Component{}, fmt.Errorf("unknown component %q (run: bloodroll components)", name)
	}
	if err != nil {
		return model.Component{}, fmt.Errorf("failed to find component: %w", err)
	}
	return comp, nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# bloodroll configuration
# Uncomment a value to enable it. CLI flags and BLOODROLL_* environment
# variables override config values.

[storage]
# path = %q    # SQLite database

[log]
# file = %q    # Log file, "" disables logging
# level = %q                # debug, info, warn or error
`,
		config.DefaultDBPath(),
		config.DefaultLogPath(),
		config.DefaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
