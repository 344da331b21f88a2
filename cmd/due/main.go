// due is the CLI for checklist item due dates.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bborn/duedate/internal/config"
	"github.com/bborn/duedate/internal/db"
	"github.com/bborn/duedate/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version = "dev"

	// Styles for CLI output
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	dbPath string
	debug  bool
	json   bool
}

var opts globalOptions

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fail(err)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "due",
		Short:         "Checklist due dates",
		Long:          "Set, inspect and watch due dates on checklist items.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Database path (default: $DUE_DB_PATH or ~/.local/share/due/due.db)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Output in JSON format")

	rootCmd.AddCommand(
		newStatusCmd(),
		newPresetsCmd(),
		newItemsCmd(),
		newWatchCmd(),
		newConfigCmd(),
		newKeybindingsCmd(),
	)
	return rootCmd
}

// fail prints err and exits.
func fail(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
	os.Exit(1)
}

func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if opts.debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openDB opens the database named by --db or the default path.
func openDB() (*db.DB, error) {
	path := opts.dbPath
	if path == "" {
		path = db.DefaultPath()
	}
	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}

// session bundles what most item commands need.
type session struct {
	db  *db.DB
	cfg *config.Config
}

func openSession() (*session, error) {
	database, err := openDB()
	if err != nil {
		return nil, err
	}
	cfg := config.New(database)
	ui.LoadTheme(cfg.Theme)
	return &session{db: database, cfg: cfg}, nil
}

func (s *session) Close() error { return s.db.Close() }

// now returns the current time in the configured timezone.
func (s *session) now() time.Time {
	return time.Now().In(s.cfg.Location)
}

// isTTY reports whether stdout is an interactive terminal.
func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// isInteractive reports whether prompts can be shown.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && isTTY()
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
