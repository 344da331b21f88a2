package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/bborn/duedate/internal/db"
	"github.com/bborn/duedate/internal/duedate"
	"github.com/google/go-cmp/cmp"
)

var cliNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// runCLI executes the command tree against a fresh database and returns it.
func runCLI(t *testing.T, dbPath string, args ...string) error {
	t.Helper()
	opts = globalOptions{}
	root := newRootCmd()
	root.SetArgs(append([]string{"--db", dbPath}, args...))
	return root.Execute()
}

func TestBuildStatus(t *testing.T) {
	tests := []struct {
		name string
		due  duedate.DueDate
		want statusReport
	}{
		{
			name: "absent",
			due:  duedate.None,
			want: statusReport{Due: "none", Style: "normal", Label: "Add due date"},
		},
		{
			name: "due soon",
			due:  duedate.FromTime(cliNow.Add(3 * time.Hour)),
			want: statusReport{
				Due:     "2024-03-10T15:00:00Z",
				DueSoon: true,
				Style:   "due_soon",
				Label:   "Due in 3 hours",
				Tooltip: "Due on Mar 10",
			},
		},
		{
			name: "overdue",
			due:  duedate.FromTime(cliNow.Add(-time.Minute)),
			want: statusReport{
				Due:     "2024-03-10T11:59:00Z",
				Overdue: true,
				Style:   "overdue",
				Label:   "Due 1 minute ago",
				Tooltip: "Due on Mar 10",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, buildStatus(tt.due, cliNow)); diff != "" {
				t.Errorf("buildStatus mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildPresets(t *testing.T) {
	rows := buildPresets(cliNow, duedate.None, duedate.ModeDateTime)
	want := []presetRow{
		{Label: "Today", Secondary: "Sun", Value: "2024-03-10T23:59:59Z", Mode: "datetime"},
		{Label: "Tomorrow", Secondary: "Mon", Value: "2024-03-11T23:59:59Z", Mode: "datetime"},
		{Label: "Next week", Secondary: "Sun, Mar 17", Value: "2024-03-17T23:59:59Z", Mode: "datetime"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("buildPresets mismatch (-want +got):\n%s", diff)
	}

	offset := duedate.FromMillis((90 * time.Minute).Milliseconds())
	rows = buildPresets(cliNow, offset, duedate.ModeDuration)
	if len(rows) != 4 {
		t.Fatalf("expected selected row appended, got %d rows", len(rows))
	}
	last := rows[3]
	if !last.Selected || last.Value != "1h30m0s" || last.Label != "1 hour 30 minutes" || last.Mode != "duration" {
		t.Errorf("unexpected selected row: %+v", last)
	}
}

func TestParseNow(t *testing.T) {
	got, err := parseNow("", cliNow)
	if err != nil || !got.Equal(cliNow) {
		t.Fatalf("empty --now should use current time, got %v (%v)", got, err)
	}

	got, err = parseNow("2024-01-02T03:04:05Z", cliNow)
	if err != nil || !got.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("unexpected --now: %v (%v)", got, err)
	}

	if _, err := parseNow("whenever", cliNow); err == nil {
		t.Fatal("expected error for invalid --now")
	}
}

func TestViewItem(t *testing.T) {
	it := &db.ChecklistItem{
		ID:      "item-1",
		Title:   "Pay rent",
		Due:     duedate.FromTime(cliNow.Add(-48 * time.Hour)),
		DueMode: duedate.ModeDateTime,
	}
	v := viewItem(it, cliNow)
	if v.Style != "overdue" || v.Label != "Due 2 days ago" || v.Due != "2024-03-08T12:00:00Z" {
		t.Errorf("unexpected view: %+v", v)
	}

	it.Due = duedate.FromMillis((2 * time.Hour).Milliseconds())
	it.DueMode = duedate.ModeDuration
	v = viewItem(it, cliNow)
	if v.Style != "normal" || v.Label != "2 hours" || v.Due != "2h0m0s" {
		t.Errorf("unexpected duration view: %+v", v)
	}

	v = viewItem(&db.ChecklistItem{ID: "item-2", Title: "Later"}, cliNow)
	if v.Due != "" || v.Label != "Add due date" {
		t.Errorf("unexpected undated view: %+v", v)
	}
}

func TestCLIItemsLifecycle(t *testing.T) {
	t.Setenv("DUE_PLAN", "professional")
	dbPath := filepath.Join(t.TempDir(), "cli.db")

	if err := runCLI(t, dbPath, "items", "add", "Ship release", "--due", "tomorrow", "--checklist", "launch"); err != nil {
		t.Fatalf("items add: %v", err)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	items, err := database.ListItems(db.ListItemsOptions{})
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one item, got %d (%v)", len(items), err)
	}
	id := items[0].ID
	if !items[0].Due.IsSet() || items[0].Checklist != "launch" {
		t.Fatalf("unexpected item: %+v", items[0])
	}

	if err := runCLI(t, dbPath, "items", "clear", id); err != nil {
		t.Fatalf("items clear: %v", err)
	}
	it, _ := database.GetItem(id)
	if it.Due.IsSet() {
		t.Fatal("expected due date cleared")
	}

	if err := runCLI(t, dbPath, "items", "due", id, "2h", "--mode", "duration"); err != nil {
		t.Fatalf("items due: %v", err)
	}
	it, _ = database.GetItem(id)
	if it.DueMode != duedate.ModeDuration || it.Due.Millis() != (2*time.Hour).Milliseconds() {
		t.Fatalf("unexpected due after set: %v %v", it.Due, it.DueMode)
	}

	if err := runCLI(t, dbPath, "items", "rm", id); err == nil {
		t.Fatal("rm without --yes must fail when not interactive")
	}
	if err := runCLI(t, dbPath, "items", "rm", id, "--yes"); err != nil {
		t.Fatalf("items rm: %v", err)
	}
	if _, err := database.GetItem(id); err == nil {
		t.Fatal("expected item deleted")
	}
}

func TestCLIUnlicensedPlanRejectsDueDates(t *testing.T) {
	t.Setenv("DUE_PLAN", "starter")
	dbPath := filepath.Join(t.TempDir(), "cli.db")

	if err := runCLI(t, dbPath, "items", "add", "No dates here", "--due", "today"); err == nil {
		t.Fatal("expected starter plan to reject due dates")
	}
	if err := runCLI(t, dbPath, "items", "add", "Plain item"); err != nil {
		t.Fatalf("items without dates should still work: %v", err)
	}
}

func TestCLIUnlicensedPlanCannotClearDueDates(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")

	t.Setenv("DUE_PLAN", "professional")
	if err := runCLI(t, dbPath, "items", "add", "Renew passport", "--due", "tomorrow"); err != nil {
		t.Fatalf("items add: %v", err)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()
	items, err := database.ListItems(db.ListItemsOptions{})
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one item, got %d (%v)", len(items), err)
	}
	id := items[0].ID

	t.Setenv("DUE_PLAN", "starter")
	if err := runCLI(t, dbPath, "items", "clear", id); err == nil {
		t.Fatal("expected starter plan to refuse items clear")
	}
	if err := runCLI(t, dbPath, "items", "due", id, "none"); err == nil {
		t.Fatal("expected starter plan to refuse items due none")
	}

	it, err := database.GetItem(id)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if !it.Due.IsSet() {
		t.Fatal("due date must survive on the starter plan")
	}
}

func TestCLIConfigSet(t *testing.T) {
	t.Setenv("DUE_PLAN", "")
	dbPath := filepath.Join(t.TempDir(), "cli.db")

	if err := runCLI(t, dbPath, "config", "set", "timezone", "UTC"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if err := runCLI(t, dbPath, "config", "set", "plan", "platinum"); err == nil {
		t.Fatal("expected invalid plan to fail")
	}
	if err := runCLI(t, dbPath, "config", "get", "colour"); err == nil {
		t.Fatal("expected unknown key to fail")
	}
}
