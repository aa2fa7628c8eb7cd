package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type space struct {
	t   *testing.T
	dir string
}

func newSpace(t *testing.T) *space {
	t.Helper()
	s := &space{t: t, dir: filepath.Join(t.TempDir(), ".worklog")}
	_, err := s.run("init")
	require.NoError(t, err)
	return s
}

func (s *space) run(args ...string) (string, error) {
	s.t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"--dir=" + s.dir, "--config=" + filepath.Join(s.dir, "none.yaml")}, args...))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

func (s *space) write(id, content string) {
	s.t.Helper()
	require.NoError(s.t, os.WriteFile(filepath.Join(s.dir, "logs", id), []byte(content), 0o644))
}

// scriptEditor returns an editor that overwrites the file with content
func scriptEditor(t *testing.T, content string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script editor not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "editor.sh")
	body := "#!/bin/sh\ncat > \"$1\" <<'EOF'\n" + content + "EOF\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func TestNotInWorkspace(t *testing.T) {
	s := &space{t: t, dir: filepath.Join(t.TempDir(), ".worklog")}

	_, err := s.run("list")
	assert.ErrorIs(t, err, errNoWorkspace)
}

func TestNewViewList(t *testing.T) {
	s := newSpace(t)
	ed := scriptEditor(t, "date=2024-03-02\ntags=php, backend\n\nFixed the login bug\n\nStale session token.\n")

	out, err := s.run("new", "--editor", ed)
	require.NoError(t, err)
	assert.Equal(t, "Added work log: 1\n", out)

	out, err = s.run("view", "1")
	require.NoError(t, err)
	assert.Equal(t, "date=2024-03-02\ntags=backend, php\n\nFixed the login bug\n\nStale session token.\n\n\n", out)

	out, err = s.run("list")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1         2024-03-02  Fixed the login bug"), out)
	assert.Contains(t, out, "[backend, php]")
}

func TestNew_RejectsInvalidLog(t *testing.T) {
	s := newSpace(t)
	ed := scriptEditor(t, "date=2024-03-02\n\nOnly a subject\n")

	_, err := s.run("new", "--editor", ed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the work log is invalid")

	entries, err := os.ReadDir(filepath.Join(s.dir, "logs"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEdit(t *testing.T) {
	s := newSpace(t)
	s.write("3", "date=2024-01-01\ntags=a\n\nOld\n\nBody\n")
	ed := scriptEditor(t, "date=2024-01-02\ntags=b\n\nNew subject\n\nNew body\n")

	_, err := s.run("edit", "3", "--editor", ed)
	require.NoError(t, err)

	out, err := s.run("view", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "date=2024-01-02\ntags=b\n\nNew subject\n\nNew body\n")
}

func TestViewErrors(t *testing.T) {
	s := newSpace(t)

	_, err := s.run("view", "abc")
	assert.ErrorContains(t, err, "invalid argument")

	_, err = s.run("view", "9")
	assert.ErrorContains(t, err, "not found")
}

func TestBrokenAndRm(t *testing.T) {
	s := newSpace(t)
	s.write("1", "date=2024-01-01\ntags=a\n\nGood\n\nBody\n")
	s.write("2", "date=not-a-date\n\nBroken\n\nBody\n")

	out, err := s.run("broken")
	require.NoError(t, err)
	assert.Contains(t, out, "Broken")
	assert.NotContains(t, out, "Good")

	out, err = s.run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "Good")
	assert.NotContains(t, out, "Broken")

	_, err = s.run("rm", "2")
	require.NoError(t, err)
	_, err = s.run("rm", "2")
	assert.NoError(t, err, "removing a missing log is a no-op")

	out, err = s.run("broken")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSearch(t *testing.T) {
	s := newSpace(t)
	s.write("1", "date=2024-01-01\ntags=php\n\nFixed the login bug\n\nBody\n")
	s.write("2", "date=2024-01-02\ntags=php, draft\n\nLogin copy\n\nBody\n")
	s.write("3", "date=2024-01-03\ntags=js\n\nFixed the login form\n\nBody\n")

	out, err := s.run("search", "tag:php -tag:draft subject:login")
	require.NoError(t, err)
	assert.Contains(t, out, "Fixed the login bug")
	assert.NotContains(t, out, "Login copy")
	assert.NotContains(t, out, "login form")

	out, err = s.run("search", "--", "tag:js", "-tag:php")
	require.NoError(t, err)
	assert.Contains(t, out, "Fixed the login form")
	assert.NotContains(t, out, "login bug")
}

func TestTags(t *testing.T) {
	s := newSpace(t)
	s.write("1", "date=2024-01-01\ntags=php\n\nOne\n\nBody\n")
	s.write("2", "date=2024-01-02\ntags=php, go\n\nTwo\n\nBody\n")

	_, err := s.run("tag", "add", "go", "1")
	require.NoError(t, err)
	_, err = s.run("tag", "rm", "php", "2")
	require.NoError(t, err)

	out, err := s.run("tag", "list")
	require.NoError(t, err)
	assert.Equal(t, "2 go\n1 php\n", out)

	_, err = s.run("tag", "add", "go", "99")
	assert.Error(t, err)
}

func TestYearlyAndStats(t *testing.T) {
	s := newSpace(t)
	s.write("1", "date=2023-06-01\ntags=a\n\nOlder\n\nBody\n")
	s.write("2", "date=2024-06-01\ntags=a, b\n\nNewer\n\nBody\n")

	out, err := s.run("yearly")
	require.NoError(t, err)
	assert.Regexp(t, `(?s)2024:\n2 .*Newer.*\n\n2023:\n1 .*Older`, out)

	out, err = s.run("stats")
	require.NoError(t, err)
	assert.Contains(t, out, "2 work logs")
	assert.Contains(t, out, "2024: 1")
	assert.Contains(t, out, "    2 a")

	out, err = s.run("reindex")
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 2 work logs")
}

func TestRep(t *testing.T) {
	s := newSpace(t)
	s.write("1", "date=2024-01-01\ntags=a\n\nFirst\n\nBody\n")
	s.write("2", "date=2024-01-02\ntags=a\n\nSecond\n\nBody\n")

	out, err := s.run("rep", "1,2", "view", "=====")
	require.NoError(t, err)
	assert.Regexp(t, `(?s)First.*=====\n.*Second.*=====\n`, out)

	_, err = s.run("rep", "1,42", "view")
	assert.Error(t, err)
}
