package store

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pbaille/worklog/internal/domain"
	"github.com/pbaille/worklog/internal/filex"
	"github.com/pbaille/worklog/internal/logging"
	"github.com/pbaille/worklog/internal/serializer"
)

// SkippedEntry is a records directory entry BuildIndex could not use
type SkippedEntry struct {
	Path   string
	Reason string
}

// Index is a newest-first snapshot of every decodable record
type Index struct {
	Logs    []domain.Log
	Skipped []SkippedEntry
}

// BuildIndex decodes every file under dir. Files whose name is not a
// numeric id, or that cannot be read, are skipped and reported.
// Logs are ordered by CreatedAt descending, then by id descending.
func BuildIndex(dir string, logger *slog.Logger) (*Index, error) {
	logger = logging.OrDiscard(logger)

	paths, err := filex.ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: build index: %v", ErrInternal, err)
	}

	var (
		hs  serializer.Human
		idx Index
	)
	skip := func(path, reason string) {
		logger.Warn("skipping work log", "path", path, "reason", reason)
		idx.Skipped = append(idx.Skipped, SkippedEntry{Path: path, Reason: reason})
	}

	for _, path := range paths {
		id, err := idFromPath(path)
		if err != nil {
			skip(path, err.Error())
			continue
		}

		content, ok, err := filex.ReadContent(path)
		if err != nil {
			skip(path, "failed to read log: "+err.Error())
			continue
		}
		if !ok {
			skip(path, "log removed while indexing")
			continue
		}

		l, diags := hs.Unserialize(content)
		for _, d := range diags {
			logger.Debug("skipped line", "path", path, "line", d.Line, "text", d.Text, "reason", d.Reason)
		}
		l.ID = id
		idx.Logs = append(idx.Logs, l)
	}

	slices.SortStableFunc(idx.Logs, newestFirst)
	return &idx, nil
}

func newestFirst(a, b domain.Log) int {
	switch {
	case a.CreatedAt != b.CreatedAt:
		if a.CreatedAt > b.CreatedAt {
			return -1
		}
		return 1
	case a.ID > b.ID:
		return -1
	case a.ID < b.ID:
		return 1
	}
	return 0
}

// idFromPath derives the record id from the last path element
func idFromPath(path string) (int, error) {
	id, err := strconv.Atoi(filepath.Base(path))
	if err != nil {
		return 0, fmt.Errorf("failed to extract work log id from path %s", path)
	}
	return id, nil
}

// ParseID converts user input into a record id
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: failed to convert work log id to a numeric value: %q", ErrInvalidArgument, s)
	}
	return id, nil
}
