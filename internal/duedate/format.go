package duedate

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Formatter turns relative times and durations into phrases.
// It is safe for concurrent use.
type Formatter struct {
	p *message.Printer
}

// English is the default formatter.
var English = NewFormatter(language.English)

// NewFormatter returns a formatter for tag. Messages without a translation for
// tag fall back to their English keys.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{p: message.NewPrinter(tag, message.Catalog(messages))}
}

var messages = buildCatalog()

var phraseUnits = []Unit{UnitSecond, UnitMinute, UnitHour, UnitDay, UnitMonth, UnitYear}

func pastKey(u Unit) string   { return "%d " + u.String() + "s ago" }
func futureKey(u Unit) string { return "in %d " + u.String() + "s" }
func countKey(u Unit) string  { return "%d " + u.String() + "s" }

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(key, one string) {
		msg := plural.Selectf(1, "%d", "one", one, "other", key)
		if err := b.Set(language.English, key, msg); err != nil {
			panic(fmt.Sprintf("duedate: catalog entry %q: %v", key, err))
		}
	}
	for _, u := range phraseUnits {
		name := u.String()
		set(pastKey(u), "%d "+name+" ago")
		set(futureKey(u), "in %d "+name)
		set(countKey(u), "%d "+name)
	}
	return b
}

// Relative renders rt as "just now", "3 hours ago" or "in 2 days".
func (f *Formatter) Relative(rt RelativeTime) string {
	if rt.Unit == UnitNow {
		return f.p.Sprintf("just now")
	}
	if rt.Past {
		return f.p.Sprintf(pastKey(rt.Unit), rt.Value)
	}
	return f.p.Sprintf(futureKey(rt.Unit), rt.Value)
}

// Duration renders d with up to two units, coarsest first ("2 days 3 hours").
func (f *Formatter) Duration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	days := int64(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int64(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int64(d / time.Minute)

	parts := make([]string, 0, 2)
	for _, p := range []struct {
		u Unit
		n int64
	}{{UnitDay, days}, {UnitHour, hours}, {UnitMinute, minutes}} {
		if p.n == 0 || len(parts) == 2 {
			continue
		}
		parts = append(parts, f.p.Sprintf(countKey(p.u), p.n))
	}
	if len(parts) == 0 {
		return f.p.Sprintf(countKey(UnitMinute), 0)
	}
	return strings.Join(parts, " ")
}

// Sprintf formats a message key with the formatter's language.
func (f *Formatter) Sprintf(key string, args ...any) string {
	return f.p.Sprintf(key, args...)
}
