package oplog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Filter narrows log entries. Zero fields match everything.
type Filter struct {
	Status string    // "ok" or "error", case-insensitive
	Since  time.Time // entries before this time are excluded
}

// IsEmpty returns true when no filter criteria are set.
func (f Filter) IsEmpty() bool {
	return f.Status == "" && f.Since.IsZero()
}

// Matches reports whether e satisfies f. Entries with unparseable
// timestamps never match a Since filter.
func (f Filter) Matches(e Entry) bool {
	if f.Status != "" && !strings.EqualFold(e.Status, f.Status) {
		return false
	}
	if !f.Since.IsZero() {
		ts, err := time.Parse(time.RFC3339, e.Timestamp)
		if err != nil || ts.Before(f.Since) {
			return false
		}
	}
	return true
}

// FilterEntries returns the subset of entries matching f.
func FilterEntries(entries []Entry, f Filter) []Entry {
	if f.IsEmpty() {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// ParseSince parses "30m", "2h", "2d", "1w", "2006-01-02" or RFC3339.
func ParseSince(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if len(s) >= 2 {
		if n, err := strconv.Atoi(s[:len(s)-1]); err == nil && n > 0 {
			now := time.Now()
			switch s[len(s)-1] {
			case 'm':
				return now.Add(-time.Duration(n) * time.Minute), nil
			case 'h':
				return now.Add(-time.Duration(n) * time.Hour), nil
			case 'd':
				return now.AddDate(0, 0, -n), nil
			case 'w':
				return now.AddDate(0, 0, -n*7), nil
			}
		}
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid time format %q (use: 30m, 2h, 2d, 1w, 2006-01-02, or RFC3339)", s)
}
