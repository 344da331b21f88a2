package monitor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bborn/duedate/internal/clock"
	"github.com/bborn/duedate/internal/db"
	"github.com/bborn/duedate/internal/duedate"
)

type fakeSource struct {
	items []*db.ChecklistItem
	err   error
}

func (f *fakeSource) ListItems(opts db.ListItemsOptions) ([]*db.ChecklistItem, error) {
	return f.items, f.err
}

// countingSource records how many times it was listed; safe for use from Run.
type countingSource struct {
	mu    sync.Mutex
	items []*db.ChecklistItem
	calls int
}

func (c *countingSource) ListItems(opts db.ListItemsOptions) ([]*db.ChecklistItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.items, nil
}

func (c *countingSource) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type fired struct {
	id    string
	style duedate.Style
	msg   string
}

type fakeHooks struct {
	mu    sync.Mutex
	calls []fired
}

func (f *fakeHooks) OnStyleChange(item *db.ChecklistItem, style duedate.Style, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fired{item.ID, style, message})
}

func (f *fakeHooks) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var start = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func item(id string, due time.Time) *db.ChecklistItem {
	return &db.ChecklistItem{ID: id, Title: id, Due: duedate.FromTime(due), DueMode: duedate.ModeDateTime}
}

func TestScanFiresOnTransitions(t *testing.T) {
	clk := clock.NewMock(start)
	src := &fakeSource{items: []*db.ChecklistItem{
		item("far", start.Add(48*time.Hour)),
		item("soon", start.Add(3*time.Hour)),
	}}
	hooks := &fakeHooks{}
	m := NewSilent(src, hooks, Options{Clock: clk})

	trs, err := m.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(trs) != 1 || trs[0].Item.ID != "soon" || trs[0].To != duedate.StyleDueSoon {
		t.Fatalf("unexpected first transitions: %+v", trs)
	}
	if len(hooks.calls) != 1 || hooks.calls[0].msg != "Due in 3 hours" {
		t.Fatalf("unexpected hook calls: %+v", hooks.calls)
	}

	// Nothing changed: no new hooks.
	trs, _ = m.Scan(context.Background())
	if len(trs) != 0 {
		t.Fatalf("expected no transitions on rescan, got %+v", trs)
	}

	clk.Advance(4 * time.Hour)
	trs, _ = m.Scan(context.Background())
	if len(trs) != 1 || trs[0].From != duedate.StyleDueSoon || trs[0].To != duedate.StyleOverdue {
		t.Fatalf("expected soon to become overdue, got %+v", trs)
	}

	clk.Advance(40 * time.Hour)
	trs, _ = m.Scan(context.Background())
	if len(trs) != 1 || trs[0].Item.ID != "far" || trs[0].To != duedate.StyleDueSoon {
		t.Fatalf("expected far to become due soon, got %+v", trs)
	}
	if hooks.count() != 3 {
		t.Fatalf("expected 3 hook calls, got %d", hooks.count())
	}
}

func TestScanOverdueOnFirstSight(t *testing.T) {
	src := &fakeSource{items: []*db.ChecklistItem{item("late", start.Add(-time.Hour))}}
	hooks := &fakeHooks{}
	m := NewSilent(src, hooks, Options{Clock: clock.NewMock(start)})

	if _, err := m.Scan(context.Background()); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(hooks.calls) != 1 || hooks.calls[0].style != duedate.StyleOverdue {
		t.Fatalf("expected overdue hook, got %+v", hooks.calls)
	}
}

func TestScanSkipsDurationItems(t *testing.T) {
	offset := &db.ChecklistItem{
		ID:      "offset",
		Due:     duedate.FromMillis((2 * time.Hour).Milliseconds()),
		DueMode: duedate.ModeDuration,
	}
	hooks := &fakeHooks{}
	m := NewSilent(&fakeSource{items: []*db.ChecklistItem{offset}}, hooks, Options{Clock: clock.NewMock(start)})

	trs, err := m.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(trs) != 0 || len(hooks.calls) != 0 {
		t.Fatalf("duration items must not be classified, got %+v", trs)
	}
}

func TestScanForgetsRemovedItems(t *testing.T) {
	src := &fakeSource{items: []*db.ChecklistItem{item("soon", start.Add(time.Hour))}}
	hooks := &fakeHooks{}
	m := NewSilent(src, hooks, Options{Clock: clock.NewMock(start)})

	m.Scan(context.Background())
	src.items = nil
	m.Scan(context.Background())
	src.items = []*db.ChecklistItem{item("soon", start.Add(time.Hour))}
	m.Scan(context.Background())

	if hooks.count() != 2 {
		t.Fatalf("expected re-added item to fire again, got %d calls", hooks.count())
	}
}

func TestScanSourceError(t *testing.T) {
	m := NewSilent(&fakeSource{err: errors.New("boom")}, nil, Options{Clock: clock.NewMock(start)})
	if _, err := m.Scan(context.Background()); err == nil {
		t.Fatal("expected source error")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	now := time.Now()
	if err := database.CreateItem(&db.ChecklistItem{Title: "Call back", Due: duedate.FromTime(now.Add(time.Hour))}); err != nil {
		t.Fatalf("create item: %v", err)
	}

	hooks := &fakeHooks{}
	m := NewSilent(database, hooks, Options{
		Interval:  10 * time.Millisecond,
		WatchPath: database.Path(),
		Clock:     clock.NewMock(now),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for hooks.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for initial scan")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	if hooks.count() != 1 {
		t.Fatalf("expected exactly one hook call, got %d", hooks.count())
	}
}

func TestScanCancelledLeavesStateUntouched(t *testing.T) {
	src := &fakeSource{items: []*db.ChecklistItem{item("soon", start.Add(time.Hour))}}
	hooks := &fakeHooks{}
	m := NewSilent(src, hooks, Options{Clock: clock.NewMock(start)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Scan(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if hooks.count() != 0 || len(m.last) != 0 {
		t.Fatalf("cancelled scan must not record state, got %d hooks and %v", hooks.count(), m.last)
	}

	if _, err := m.Scan(context.Background()); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if hooks.count() != 1 {
		t.Fatalf("expected hook after a full scan, got %d", hooks.count())
	}
}

func TestRunRescansOnFileWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.db")
	if err := os.WriteFile(path, []byte("v1"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	clk := clock.NewMock(start)
	src := &countingSource{items: []*db.ChecklistItem{item("soon", start.Add(time.Hour))}}
	hooks := &fakeHooks{}
	m := NewSilent(src, hooks, Options{
		Interval:  time.Hour,
		WatchPath: path,
		Clock:     clk,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for hooks.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for initial scan")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// The ticker is an hour away, so only a file write can trigger this scan.
	clk.Advance(2 * time.Hour)
	for hooks.count() < 2 {
		if err := os.WriteFile(path, []byte("v2"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for rescan after write (scans=%d)", src.count())
		case <-time.After(20 * time.Millisecond):
		}
	}

	hooks.mu.Lock()
	last := hooks.calls[len(hooks.calls)-1]
	hooks.mu.Unlock()
	if last.id != "soon" || last.style != duedate.StyleOverdue {
		t.Fatalf("expected soon to become overdue, got %+v", last)
	}
	if src.count() < 2 {
		t.Fatalf("expected a second scan, got %d", src.count())
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
