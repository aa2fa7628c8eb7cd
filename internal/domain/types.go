package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar date format used on disk and in listings.
const DateLayout = "2006-01-02"

// Log represents a single work log entry
type Log struct {
	ID          int    `json:"id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"created_at"` // unix seconds
	Tags        Tags   `json:"tags,omitempty"`
}

// Tags is a case-sensitive set of tag names
type Tags map[string]struct{}

// NewTags builds a set from the given names, collapsing duplicates
func NewTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Add inserts name into the set, allocating it when nil
func (t *Tags) Add(name string) {
	if *t == nil {
		*t = make(Tags)
	}
	(*t)[name] = struct{}{}
}

func (t Tags) Remove(name string) {
	delete(t, name)
}

func (t Tags) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Sorted returns the tag names in ascending order
func (t Tags) Sorted() []string {
	out := make([]string, 0, len(t))
	for n := range t {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (t Tags) String() string {
	return strings.Join(t.Sorted(), ", ")
}

var (
	ErrEmptyContent = errors.New("subject or description is empty")
	ErrInvalidDate  = errors.New("invalid created_at date value, expected format: 0000-00-00")
)

// Validate reports why a log cannot be listed as a regular entry.
// Storage never calls it; invalid logs stay loadable.
func Validate(l Log) error {
	if strings.TrimSpace(l.Subject) == "" || strings.TrimSpace(l.Description) == "" {
		return ErrEmptyContent
	}
	if !IsValidTimestamp(l.CreatedAt) {
		return ErrInvalidDate
	}
	return nil
}

// IsValid is a shorthand for Validate(l) == nil
func IsValid(l Log) bool {
	return Validate(l) == nil
}

// IsValidTimestamp reports whether ts renders to a real YYYY-MM-DD date.
// Zero is the parse-failure default and counts as invalid.
func IsValidTimestamp(ts int64) bool {
	if ts <= 0 {
		return false
	}
	y := time.Unix(ts, 0).In(time.Local).Year()
	return y >= 1 && y <= 9999
}

// FormatDate renders ts as YYYY-MM-DD in local time
func FormatDate(ts int64) string {
	return time.Unix(ts, 0).In(time.Local).Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string to the unix timestamp of local midnight
func ParseDate(s string) (int64, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}

// Year returns the local calendar year of ts
func Year(ts int64) int {
	return time.Unix(ts, 0).In(time.Local).Year()
}
