// Package serializer converts work logs to and from the human-editable
// text format stored in the records directory:
//
//	date=2024-03-02
//	tags=backend, php
//
//	Fixed the login bug
//
//	Root cause was a stale session token.
//
// Parsing is lenient. Lines that cannot be understood are reported as
// Diagnostics and otherwise ignored, so a partially broken file still
// yields a best-effort Log.
package serializer

import (
	"strings"
	"time"

	"github.com/pbaille/worklog/internal/domain"
)

const (
	tagDate = "date"
	tagTags = "tags"
)

// Diagnostic describes a line that Unserialize skipped
type Diagnostic struct {
	Line   int // 1-based
	Text   string
	Reason string
}

// Human is the plain-text serializer. The zero value is ready to use.
type Human struct{}

// Serialize renders l. The id is not part of the text.
func (Human) Serialize(l domain.Log) string {
	var sb strings.Builder

	sb.WriteString(tagDate + "=" + domain.FormatDate(l.CreatedAt) + "\n")
	sb.WriteString(tagTags + "=" + strings.Join(l.Tags.Sorted(), ", ") + "\n\n")
	sb.WriteString(strings.TrimSpace(l.Subject) + "\n\n")
	sb.WriteString(strings.TrimSpace(l.Description) + "\n\n")

	return sb.String()
}

// Unserialize parses text into a Log with ID 0.
//
// Every line containing '=' is a tag line, even inside the body. The first
// non-tag line becomes the subject; each later non-tag line is appended to
// the description followed by a newline.
func (Human) Unserialize(text string) (domain.Log, []Diagnostic) {
	var (
		l     domain.Log
		diags []Diagnostic
	)
	skip := func(n int, line, reason string) {
		diags = append(diags, Diagnostic{Line: n, Text: line, Reason: reason})
	}

	var desc strings.Builder
	for i, line := range strings.Split(text, "\n") {
		n := i + 1

		if !strings.Contains(line, "=") {
			if l.Subject == "" {
				l.Subject = line
			} else {
				desc.WriteString(line)
				desc.WriteString("\n")
			}
			continue
		}

		// Tag lines may come padded like '  tags =  a, b'
		name, value, _ := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			skip(n, line, "empty tag name or value")
			continue
		}

		switch name {
		case tagTags:
			for _, v := range strings.Split(value, ",") {
				v = strings.TrimSpace(v)
				if v == "" {
					skip(n, line, "empty tag in list")
					continue
				}
				l.Tags.Add(v)
			}
		case tagDate:
			ts, err := domain.ParseDate(value)
			if err != nil {
				skip(n, line, "malformed date: "+err.Error())
				continue
			}
			l.CreatedAt = ts
		default:
			skip(n, line, "unknown tag "+name)
		}
	}
	l.Description = desc.String()

	return l, diags
}

// Template returns the skeleton offered when creating a new log
func (h Human) Template(now time.Time) string {
	return h.Serialize(domain.Log{
		Subject:     "Title here",
		Description: "Description here",
		CreatedAt:   now.Unix(),
		Tags:        domain.NewTags("tag1", "tag2"),
	})
}
