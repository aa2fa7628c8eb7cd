package filter

import (
	"strings"

	"github.com/pbaille/worklog/internal/domain"
)

// Filter is a parsed search query such as "tag:php -tag:draft subject:login"
type Filter struct {
	Tags         domain.Tags
	TagsNegative domain.Tags
	Subject      string

	// Skipped holds the tokens Parse could not use
	Skipped []string
}

// Predicate reports whether a log should be kept
type Predicate func(domain.Log) bool

// Parse reads a whitespace separated list of key:value tokens.
// Tokens that do not split into exactly one key and one value, and
// unknown keys, are recorded in Skipped.
func Parse(text string) Filter {
	f := Filter{Tags: domain.Tags{}, TagsNegative: domain.Tags{}}

	for _, token := range strings.Fields(text) {
		kv := splitNonEmpty(token, ":")
		if len(kv) != 2 {
			f.Skipped = append(f.Skipped, token)
			continue
		}

		key, value := kv[0], kv[1]
		negated := strings.HasPrefix(key, "-")
		key = strings.TrimPrefix(key, "-")

		switch key {
		case "tag":
			if negated {
				f.TagsNegative.Add(value)
			} else {
				f.Tags.Add(value)
			}
		case "subject":
			f.Subject = value
		default:
			f.Skipped = append(f.Skipped, token)
		}
	}

	return f
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HasTags reports whether the tag predicate is active
func (f Filter) HasTags() bool {
	return len(f.Tags) > 0 || len(f.TagsNegative) > 0
}

// TagsPredicate scores each log tag: -1 when negated, +1 when required.
// A log is kept only with a strictly positive score.
func (f Filter) TagsPredicate() Predicate {
	return func(l domain.Log) bool {
		score := 0
		for tag := range l.Tags {
			if f.TagsNegative.Has(tag) {
				score--
			}
			if f.Tags.Has(tag) {
				score++
			}
		}
		return score > 0
	}
}

// SubjectPredicate is a case-sensitive substring match on the subject
func (f Filter) SubjectPredicate() Predicate {
	return func(l domain.Log) bool {
		return strings.Contains(l.Subject, f.Subject)
	}
}

// Select narrows logs by the tag pass and then the subject pass.
// Passes with nothing to match on are skipped.
func (f Filter) Select(logs []domain.Log) []domain.Log {
	if f.HasTags() {
		logs = Apply(logs, f.TagsPredicate())
	}
	if f.Subject != "" {
		logs = Apply(logs, f.SubjectPredicate())
	}
	return logs
}

// OnlyValid keeps logs that pass domain.Validate
func OnlyValid() Predicate {
	return domain.IsValid
}

// OnlyInvalid keeps logs that fail domain.Validate
func OnlyInvalid() Predicate {
	return func(l domain.Log) bool {
		return !domain.IsValid(l)
	}
}

// Apply returns the logs matching keep, preserving order.
// The backing array of logs is reused.
func Apply(logs []domain.Log, keep Predicate) []domain.Log {
	out := logs[:0]
	for _, l := range logs {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}
