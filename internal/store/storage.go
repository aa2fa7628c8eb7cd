// Package store persists work logs as one text file per record, named
// by the record id, and materializes the records directory as an index.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pbaille/worklog/internal/config"
	"github.com/pbaille/worklog/internal/domain"
	"github.com/pbaille/worklog/internal/filex"
	"github.com/pbaille/worklog/internal/logging"
	"github.com/pbaille/worklog/internal/serializer"
)

// Storage handles record persistence under a worklog space
type Storage struct {
	logsDir string
	ids     IDAllocator
	hs      serializer.Human
	log     *slog.Logger
}

// New creates a Storage that allocates ids through ids
func New(cfg config.Config, ids IDAllocator, logger *slog.Logger) *Storage {
	return &Storage{
		logsDir: cfg.LogsDir,
		ids:     ids,
		log:     logging.OrDiscard(logger),
	}
}

// Open creates a Storage backed by the counter file of cfg
func Open(cfg config.Config, logger *slog.Logger) *Storage {
	return New(cfg, NewFileAllocator(cfg.NextIDPath()), logger)
}

func (s *Storage) pathForID(id int) string {
	return filepath.Join(s.logsDir, strconv.Itoa(id))
}

// LoadByID reads and decodes the record file of id.
// The returned log carries id; the file itself never stores it.
func (s *Storage) LoadByID(id int) (domain.Log, error) {
	path := s.pathForID(id)

	content, ok, err := filex.ReadContent(path)
	if err != nil {
		return domain.Log{}, fmt.Errorf("%w: failed to read content from %s: %v", ErrInternal, path, err)
	}
	if !ok {
		return domain.Log{}, fmt.Errorf("%w: the work log does not exist under %s", ErrNotFound, path)
	}

	l := s.decode(path, content)
	l.ID = id
	return l, nil
}

// Save persists a new record and returns it with its freshly allocated id.
// Records that already have an id must go through Update.
func (s *Storage) Save(l domain.Log) (domain.Log, error) {
	if l.ID != 0 {
		return l, fmt.Errorf("%w: work log has an id, please use Update", ErrInvalidArgument)
	}

	id, err := s.ids.Next()
	if err != nil {
		return l, fmt.Errorf("%w: failed to generate a new id: %v", ErrInternal, err)
	}

	path := s.pathForID(id)
	if filex.Exists(path) {
		return l, fmt.Errorf("%w: a work log already exists under %s", ErrInternal, path)
	}

	if err := filex.WriteContent(path, s.hs.Serialize(l)); err != nil {
		return l, fmt.Errorf("%w: save work log %d: %v", ErrInternal, id, err)
	}

	l.ID = id
	s.log.Debug("work log saved", "id", id, "path", path)
	return l, nil
}

// Update rewrites the whole file of an existing record
func (s *Storage) Update(l domain.Log) error {
	if l.ID <= 0 {
		return fmt.Errorf("%w: work log has no id, please use Save", ErrInvalidArgument)
	}

	path := s.pathForID(l.ID)
	if !filex.Exists(path) {
		return fmt.Errorf("%w: a work log does not yet exist under %s", ErrInternal, path)
	}

	if err := filex.WriteContent(path, s.hs.Serialize(l)); err != nil {
		return fmt.Errorf("%w: update work log %d: %v", ErrInternal, l.ID, err)
	}

	s.log.Debug("work log updated", "id", l.ID, "path", path)
	return nil
}

// Delete removes the record file of id
func (s *Storage) Delete(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid work log id %d", ErrInvalidArgument, id)
	}

	path := s.pathForID(id)
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: the work log does not exist under %s", ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("%w: delete work log %d: %v", ErrInternal, id, err)
	}
	return nil
}

func (s *Storage) decode(path, content string) domain.Log {
	l, diags := s.hs.Unserialize(content)
	for _, d := range diags {
		s.log.Debug("skipped line", "path", path, "line", d.Line, "text", d.Text, "reason", d.Reason)
	}
	return l
}
