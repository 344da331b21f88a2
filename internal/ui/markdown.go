package ui

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bborn/duedate/internal/db"
	"github.com/bborn/duedate/internal/duedate"
	"github.com/charmbracelet/glamour"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style and wrap width. The fixed "dark" style
	// avoids glamour's terminal background query.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// RenderItemsMarkdown lists items as a markdown table with their due labels.
func RenderItemsMarkdown(items []*db.ChecklistItem, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Checklist\n\n")
	if len(items) == 0 {
		b.WriteString("_No items._\n")
		return b.String()
	}

	b.WriteString("| ID | Checklist | Item | Due | Status |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, it := range items {
		due, status := "", ""
		switch {
		case !it.Due.IsSet():
			due = "-"
		case it.DueMode == duedate.ModeDuration:
			due = duedate.OptionFromMillis(it.Due.Millis(), it.DueMode, now.Location()).Label
			status = "offset"
		default:
			due = duedate.ButtonLabel(it.Due, now).Text
			style := duedate.StyleFor(duedate.Classify(it.Due, now))
			if style.Emphasized() {
				status = "**" + style.String() + "**"
			} else if style.Alert() {
				status = style.String()
			}
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s |\n",
			it.ID, escapeCell(it.Checklist), escapeCell(it.Title), due, status)
	}
	return b.String()
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// escapeCell keeps s on one table row.
func escapeCell(s string) string {
	return cellReplacer.Replace(s)
}

// RenderMarkdown renders md for the terminal, falling back to the source on error.
func RenderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}

	const style = "dark"
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
