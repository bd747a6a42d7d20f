package formatter

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"legislativo/internal/models"
)

// DefaultLocale is the locale the dashboard is published in
const DefaultLocale = "es-CL"

// Ellipsis is appended to truncated text
const Ellipsis = "..."

var shortMonths = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sept", "oct", "nov", "dic",
}

// Formatter turns numbers, dates and field names into display strings
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	loc     *time.Location
}

// New creates a Formatter for the given BCP 47 locale. Dates without an
// explicit zone are read and shown in loc (UTC when nil).
func New(locale string, loc *time.Location) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
		loc:     loc,
	}, nil
}

// Default returns the es-CL formatter in UTC
func Default() *Formatter {
	f, _ := New(DefaultLocale, time.UTC)
	return f
}

// Locale returns the formatter's language tag
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// Location returns the zone dates are rendered in
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// FormatNumber groups digits following the locale convention (1.234.567 in es-CL)
func (f *Formatter) FormatNumber(n int) string {
	return f.printer.Sprintf("%d", n)
}

// FormatDate renders a date as "18 dic 2024". Unparseable input is
// returned unchanged.
func (f *Formatter) FormatDate(s string) string {
	t, ok := models.ParseDate(s, f.loc)
	if !ok {
		return s
	}
	return fmt.Sprintf("%d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

// FormatShortDate renders a date as "18-12-2024". Unparseable input is
// returned unchanged.
func (f *Formatter) FormatShortDate(s string) string {
	t, ok := models.ParseDate(s, f.loc)
	if !ok {
		return s
	}
	return t.Format("02-01-2006")
}

// FormatMonthLabel turns a "2024-01" bucket key into "ene 2024"
func (f *Formatter) FormatMonthLabel(key string) string {
	t, err := time.ParseInLocation("2006-01", key, f.loc)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s %d", shortMonths[t.Month()-1], t.Year())
}

// FormatFieldLabel splits a compact identifier before every capital letter
// and capitalizes the first character: "TotalSi" becomes "Total Si".
func FormatFieldLabel(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	label := b.String()
	if label != "" {
		first, size := utf8.DecodeRuneInString(label)
		label = strings.ToUpper(string(first)) + label[size:]
	}
	return strings.TrimSpace(label)
}

// Truncate cuts text to maxLength characters and appends an ellipsis.
// Text within the limit is returned unchanged.
func Truncate(text string, maxLength int) string {
	if maxLength < 0 {
		maxLength = 0
	}
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}

	n := 0
	for i := range text {
		if n == maxLength {
			return text[:i] + Ellipsis
		}
		n++
	}
	return text
}
