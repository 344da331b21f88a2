// Package monitor re-evaluates checklist due dates over time and fires hooks
// when items become due soon or overdue.
package monitor

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/bborn/duedate/internal/clock"
	"github.com/bborn/duedate/internal/db"
	"github.com/bborn/duedate/internal/duedate"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultInterval is how often Run rescans without file changes.
const DefaultInterval = 30 * time.Second

// ItemSource lists checklist items.
type ItemSource interface {
	ListItems(opts db.ListItemsOptions) ([]*db.ChecklistItem, error)
}

// HookRunner is notified when an item's style changes.
type HookRunner interface {
	OnStyleChange(item *db.ChecklistItem, style duedate.Style, message string)
}

// Transition records an item moving between styles during a scan.
type Transition struct {
	Item *db.ChecklistItem
	From duedate.Style
	To   duedate.Style
}

// Options configures a Monitor.
type Options struct {
	Interval  time.Duration
	WatchPath string // database file to watch; empty disables fsnotify
	Clock     clock.Clock
	Logger    *log.Logger
}

// Monitor tracks the last known style of each item.
type Monitor struct {
	source    ItemSource
	hooks     HookRunner
	clock     clock.Clock
	logger    *log.Logger
	interval  time.Duration
	watchPath string

	mu   sync.Mutex
	last map[string]duedate.Style
}

// New creates a monitor. hooks may be nil.
func New(source ItemSource, hooks HookRunner, opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "monitor"})
	}
	return &Monitor{
		source:    source,
		hooks:     hooks,
		clock:     opts.Clock,
		logger:    opts.Logger,
		interval:  opts.Interval,
		watchPath: opts.WatchPath,
		last:      make(map[string]duedate.Style),
	}
}

// NewSilent creates a monitor that discards log output.
func NewSilent(source ItemSource, hooks HookRunner, opts Options) *Monitor {
	opts.Logger = log.New(io.Discard)
	return New(source, hooks, opts)
}

// Scan classifies every item with an absolute due date once.
// Items seen for the first time count as coming from StyleNormal, so an item
// that is already overdue fires its hook on the first scan.
func (m *Monitor) Scan(ctx context.Context) ([]Transition, error) {
	items, err := m.source.ListItems(db.ListItemsOptions{OnlyWithDue: true})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool, len(items))
	var transitions []Transition
	for _, item := range items {
		// Duration dues are offsets, not instants.
		if item.DueMode != duedate.ModeDateTime {
			continue
		}
		seen[item.ID] = true

		style := duedate.StyleFor(duedate.Classify(item.Due, now))
		prev, ok := m.last[item.ID]
		if !ok {
			prev = duedate.StyleNormal
		}
		m.last[item.ID] = style
		if style == prev {
			continue
		}

		transitions = append(transitions, Transition{Item: item, From: prev, To: style})
		msg := duedate.ButtonLabel(item.Due, now).Text
		m.logger.Info("Due status changed", "item", item.ID, "from", prev, "to", style, "label", msg)
		if m.hooks != nil {
			m.hooks.OnStyleChange(item, style, msg)
		}
	}

	for id := range m.last {
		if !seen[id] {
			delete(m.last, id)
		}
	}
	return transitions, nil
}

// Run scans immediately, then on every tick and whenever the watched database
// file is written, until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	changed := make(chan struct{}, 1)
	if m.watchPath != "" {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			m.logger.Warn("File watching disabled", "error", err)
		} else {
			defer watcher.Close()
			// Watch both the main database file and the WAL file (SQLite WAL mode)
			watcher.Add(m.watchPath)
			watcher.Add(m.watchPath + "-wal")
			go forwardWrites(ctx, watcher, changed)
		}
	}

	m.scanAndLog(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.scanAndLog(ctx)
		case <-changed:
			m.logger.Debug("Database changed, rescanning")
			m.scanAndLog(ctx)
		}
	}
}

func (m *Monitor) scanAndLog(ctx context.Context) {
	if _, err := m.Scan(ctx); err != nil && ctx.Err() == nil {
		m.logger.Error("Scan failed", "error", err)
	}
}

func forwardWrites(ctx context.Context, watcher *fsnotify.Watcher, changed chan<- struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				// Non-blocking send to debounce rapid changes
				select {
				case changed <- struct{}{}:
				default:
				}
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
