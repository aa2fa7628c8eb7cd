package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Setenv("EDITOR", "nano")
	c := Default()

	assert.Equal(t, ".worklog", c.MetaDir)
	assert.Equal(t, filepath.Join(".worklog", "logs"), c.LogsDir)
	assert.Equal(t, filepath.Join(".worklog", "next_id"), c.NextIDPath())
	assert.Equal(t, filepath.Join(".worklog", "catalog.db"), c.CatalogPath())
	assert.Equal(t, "nano", c.Editor)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("EDITOR", "vi")

	c, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(Default(), c))
}

func TestLoad_YAMLOverlay(t *testing.T) {
	t.Setenv("EDITOR", "vi")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("meta_dir: /srv/wl\neditor: hx\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	want := Config{
		MetaDir: "/srv/wl",
		LogsDir: filepath.Join("/srv/wl", "logs"),
		NextID:  "next_id",
		Editor:  "hx",
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("meta_dir: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestOverlay(t *testing.T) {
	base := Config{MetaDir: "a", LogsDir: "a/logs", NextID: "n", Editor: "vi"}

	tests := []struct {
		name string
		over Config
		want Config
	}{
		{name: "empty keeps base", over: Config{}, want: base},
		{name: "meta dir moves logs", over: Config{MetaDir: "b"}, want: Config{MetaDir: "b", LogsDir: filepath.Join("b", "logs"), NextID: "n", Editor: "vi"}},
		{name: "explicit logs dir wins", over: Config{MetaDir: "b", LogsDir: "elsewhere"}, want: Config{MetaDir: "b", LogsDir: "elsewhere", NextID: "n", Editor: "vi"}},
		{name: "editor only", over: Config{Editor: "emacs"}, want: Config{MetaDir: "a", LogsDir: "a/logs", NextID: "n", Editor: "emacs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, cmp.Diff(tt.want, base.Overlay(tt.over)))
		})
	}
}
