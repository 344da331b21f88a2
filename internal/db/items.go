package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bborn/duedate/internal/duedate"
	"github.com/google/uuid"
)

// ErrItemNotFound is returned when no checklist item has the requested ID.
var ErrItemNotFound = errors.New("checklist item not found")

// ChecklistItem is one entry of a checklist, optionally carrying a due date.
type ChecklistItem struct {
	ID        string
	Checklist string
	Title     string
	Due       duedate.DueDate
	DueMode   duedate.Mode
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListItemsOptions filters ListItems.
type ListItemsOptions struct {
	Checklist   string
	OnlyWithDue bool
	Limit       int
}

const itemColumns = `id, checklist, title, due_at, due_mode, created_at, updated_at`

// CreateItem inserts a new item, assigning its ID and timestamps.
func (db *DB) CreateItem(it *ChecklistItem) error {
	if strings.TrimSpace(it.Title) == "" {
		return fmt.Errorf("create item: empty title")
	}
	if it.ID == "" {
		it.ID = "item-" + uuid.New().String()[:8]
	}
	now := time.Now()
	it.CreatedAt = now
	it.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO checklist_items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, it.ID, it.Checklist, it.Title, dueValue(it.Due), it.DueMode.String(), now.UnixMilli(), now.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetItem returns the item with id, or ErrItemNotFound.
func (db *DB) GetItem(id string) (*ChecklistItem, error) {
	row := db.QueryRow(`SELECT `+itemColumns+` FROM checklist_items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// ListItems returns items ordered by due date, items without one last.
func (db *DB) ListItems(opts ListItemsOptions) ([]*ChecklistItem, error) {
	query := `SELECT ` + itemColumns + ` FROM checklist_items WHERE 1=1`
	var args []any

	if opts.Checklist != "" {
		query += " AND checklist = ?"
		args = append(args, opts.Checklist)
	}
	if opts.OnlyWithDue {
		query += " AND due_at IS NOT NULL"
	}
	query += " ORDER BY due_at IS NULL, due_at ASC, created_at ASC, id ASC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []*ChecklistItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SetItemDue sets an item's due date and mode.
func (db *DB) SetItemDue(id string, due duedate.DueDate, mode duedate.Mode) error {
	return db.updateItem(id, `UPDATE checklist_items SET due_at = ?, due_mode = ?, updated_at = ? WHERE id = ?`,
		dueValue(due), mode.String(), time.Now().UnixMilli(), id)
}

// ClearItemDue removes an item's due date.
func (db *DB) ClearItemDue(id string) error {
	return db.updateItem(id, `UPDATE checklist_items SET due_at = NULL, updated_at = ? WHERE id = ?`,
		time.Now().UnixMilli(), id)
}

// DeleteItem removes an item.
func (db *DB) DeleteItem(id string) error {
	return db.updateItem(id, `DELETE FROM checklist_items WHERE id = ?`, id)
}

func (db *DB) updateItem(id, query string, args ...any) error {
	res, err := db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(s rowScanner) (*ChecklistItem, error) {
	var (
		it               ChecklistItem
		dueAt            sql.NullInt64
		mode             string
		created, updated int64
	)
	if err := s.Scan(&it.ID, &it.Checklist, &it.Title, &dueAt, &mode, &created, &updated); err != nil {
		return nil, err
	}
	if dueAt.Valid {
		it.Due = duedate.FromMillis(dueAt.Int64)
	}
	m, err := duedate.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	it.DueMode = m
	it.CreatedAt = time.UnixMilli(created)
	it.UpdatedAt = time.UnixMilli(updated)
	return &it, nil
}

func dueValue(d duedate.DueDate) any {
	if !d.IsSet() {
		return nil
	}
	return d.Millis()
}
