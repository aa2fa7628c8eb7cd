// Package editor lets the user edit text in their $EDITOR through a
// temporary file.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrNoEditor = errors.New("no editor configured, set $EDITOR to your favourite editor (ie. vim)")

// Session is a temp file handed to an external editor. Close removes the
// file unless Keep was called.
type Session struct {
	editor string
	path   string
	keep   bool
}

// NewSession writes initial to a fresh temp file
func NewSession(editor, initial string) (*Session, error) {
	if strings.TrimSpace(editor) == "" {
		return nil, ErrNoEditor
	}

	path := filepath.Join(os.TempDir(), "worklog-"+uuid.New().String()+".txt")
	if err := os.WriteFile(path, []byte(initial), 0o600); err != nil {
		return nil, fmt.Errorf("create temp file at %s: %w", path, err)
	}

	return &Session{editor: editor, path: path}, nil
}

// Path is the temp file location
func (s *Session) Path() string {
	return s.path
}

// Edit runs the editor on the temp file and returns the saved content.
// The editor value may carry arguments, e.g. "code --wait".
func (s *Session) Edit() (string, error) {
	args := strings.Fields(s.editor)
	cmd := exec.Command(args[0], append(args[1:], s.path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run editor %q: %w", s.editor, err)
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read edited content from %s: %w", s.path, err)
	}
	return string(b), nil
}

// Keep leaves the temp file on disk after Close, as a backup
func (s *Session) Keep() {
	s.keep = true
}

func (s *Session) Close() error {
	if s.keep {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove temp file: %w", err)
	}
	return nil
}
