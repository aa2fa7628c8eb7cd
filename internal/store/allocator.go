package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pbaille/worklog/internal/filex"
)

// IDAllocator hands out record ids
type IDAllocator interface {
	Next() (int, error)
}

// FileAllocator keeps the next id to hand out as a decimal number in a
// single file. Next is a read-modify-write without locking, so only one
// process may use a given counter file at a time.
type FileAllocator struct {
	path string
}

func NewFileAllocator(path string) *FileAllocator {
	return &FileAllocator{path: path}
}

// Next returns the stored id and persists its successor.
// A missing counter file starts the sequence at 1.
func (a *FileAllocator) Next() (int, error) {
	content, ok, err := filex.ReadContent(a.path)
	if err != nil {
		return 0, fmt.Errorf("read id counter: %w", err)
	}

	id := 1
	if ok {
		id, err = strconv.Atoi(strings.TrimSpace(content))
		if err != nil {
			return 0, fmt.Errorf("parse id counter %s: %w", a.path, err)
		}
		if id < 1 {
			return 0, fmt.Errorf("id counter %s holds %d, want a positive id", a.path, id)
		}
	}

	if err := filex.WriteContent(a.path, strconv.Itoa(id+1)); err != nil {
		return 0, fmt.Errorf("write id counter: %w", err)
	}
	return id, nil
}
