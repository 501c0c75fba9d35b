package library

import (
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Unknown is rendered in place of a value that is always shown but missing.
const Unknown = "Unknown"

var defaultPrinter = message.NewPrinter(language.English)

// NumberFormatter formats integers with locale thousands separators.
type NumberFormatter struct {
	p *message.Printer
}

// NewNumberFormatter returns a formatter for the given locale.
func NewNumberFormatter(tag language.Tag) NumberFormatter {
	return NumberFormatter{p: message.NewPrinter(tag)}
}

// Format returns n with grouping separators, e.g. 1234567 -> "1,234,567".
func (f NumberFormatter) Format(n int64) string {
	p := f.p
	if p == nil {
		p = defaultPrinter
	}
	return p.Sprintf("%d", n)
}

// FormatNumber formats n for the English locale.
func FormatNumber(n int64) string {
	return NumberFormatter{}.Format(n)
}

// FormatBytes returns a human-scaled size such as "1.0 kB" or "3.4 MB".
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// TimeSince renders t relative to now, e.g. "3 months ago".
// A zero time renders as [Unknown].
func TimeSince(t, now time.Time) string {
	if t.IsZero() {
		return Unknown
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
