// Package hooks provides a system for executing scripts on due date events.
package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bborn/duedate/internal/db"
	"github.com/bborn/duedate/internal/duedate"
	"github.com/charmbracelet/log"
)

// Event types for hooks
const (
	EventItemDueSoon = "item.due_soon"
	EventItemOverdue = "item.overdue"
)

// Timeout bounds a single hook execution.
const Timeout = 30 * time.Second

// Runner executes hooks for due date events.
type Runner struct {
	hooksDir string
	logger   *log.Logger
	wg       sync.WaitGroup
}

// New creates a new hook runner.
// hooksDir is typically ~/.config/due/hooks/
func New(hooksDir string) *Runner {
	return NewWithLogger(hooksDir, nil)
}

// NewWithLogger creates a hook runner that logs to logger.
// A nil logger falls back to stderr with the "hooks" prefix.
func NewWithLogger(hooksDir string, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "hooks"})
	}
	return &Runner{
		hooksDir: hooksDir,
		logger:   logger,
	}
}

// NewSilent creates a hook runner without logging.
func NewSilent(hooksDir string) *Runner {
	return &Runner{
		hooksDir: hooksDir,
		logger:   log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel}),
	}
}

// Run executes the hook for the given event.
// Hooks are scripts in hooksDir named after the event (e.g., item.overdue).
func (r *Runner) Run(event string, item *db.ChecklistItem, message string) {
	if r.hooksDir == "" {
		return
	}

	hookPath := filepath.Join(r.hooksDir, event)
	if _, err := os.Stat(hookPath); os.IsNotExist(err) {
		return
	}

	status := duedate.StyleNormal
	dueAt := "none"
	if item.Due.IsSet() {
		dueAt = item.Due.String()
	}
	switch event {
	case EventItemDueSoon:
		status = duedate.StyleDueSoon
	case EventItemOverdue:
		status = duedate.StyleOverdue
	}

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	cmd := exec.CommandContext(ctx, hookPath)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("DUE_ITEM_ID=%s", item.ID),
		fmt.Sprintf("DUE_ITEM_TITLE=%s", item.Title),
		fmt.Sprintf("DUE_AT=%s", dueAt),
		fmt.Sprintf("DUE_STATUS=%s", status),
		fmt.Sprintf("DUE_EVENT=%s", event),
		fmt.Sprintf("DUE_MESSAGE=%s", message),
	)

	// Run in background, don't block
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		output, err := cmd.CombinedOutput()
		if err != nil {
			r.logger.Error("Hook failed", "event", event, "item", item.ID, "error", err, "output", strings.TrimSpace(string(output)))
		} else {
			r.logger.Debug("Hook executed", "event", event, "item", item.ID)
		}
	}()
}

// OnStyleChange triggers the hook matching the item's new style.
// Transitions back to normal fire nothing.
func (r *Runner) OnStyleChange(item *db.ChecklistItem, style duedate.Style, message string) {
	switch style {
	case duedate.StyleDueSoon:
		r.Run(EventItemDueSoon, item, message)
	case duedate.StyleOverdue:
		r.Run(EventItemOverdue, item, message)
	}
}

// Wait blocks until all started hooks have finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// EnsureHooksDir creates the hooks directory if it doesn't exist.
func EnsureHooksDir() (string, error) {
	hooksDir := DefaultHooksDir()
	if hooksDir == "" {
		return "", fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return "", err
	}
	return hooksDir, nil
}

// DefaultHooksDir returns the default hooks directory path.
func DefaultHooksDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "due", "hooks")
}
