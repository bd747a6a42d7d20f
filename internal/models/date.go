package models

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// ParseDate parses the date encodings found in the published data
// (RFC 3339, "2006-01-02", "2006-01-02 15:04:05", ...). Zone-less values
// are interpreted in loc, or UTC when loc is nil.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	t, err := cast.StringToDateInDefaultLocation(s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t.In(loc), true
}
