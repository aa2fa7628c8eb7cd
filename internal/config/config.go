// Package config holds the settings a worklog process runs with.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see Default).
//  2. An optional YAML file, .worklog/config.yaml unless another path is given.
//  3. Command-line flags, applied by the caller through Overlay.
//
// YAML schema:
//
//	meta_dir: .worklog
//	logs_dir: .worklog/logs
//	next_id: next_id
//	editor: vim
//
// A Config is built once at startup and passed around by value.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMetaDir  = ".worklog"
	DefaultNextID   = "next_id"
	DefaultFileName = "config.yaml"

	catalogFile = "catalog.db"
)

// Config locates the on-disk worklog space.
type Config struct {
	MetaDir string `yaml:"meta_dir"`
	LogsDir string `yaml:"logs_dir"`
	NextID  string `yaml:"next_id"` // counter file name inside MetaDir
	Editor  string `yaml:"editor"`
}

// Default returns the built-in settings. Editor comes from $EDITOR.
func Default() Config {
	return Config{
		MetaDir: DefaultMetaDir,
		LogsDir: filepath.Join(DefaultMetaDir, "logs"),
		NextID:  DefaultNextID,
		Editor:  os.Getenv("EDITOR"),
	}
}

// DefaultPath is where Load looks when no path is given
func DefaultPath() string {
	return filepath.Join(DefaultMetaDir, DefaultFileName)
}

// Load applies the YAML file at path over the defaults.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg.Overlay(file), nil
}

// Overlay returns c with every non-empty field of o applied.
// A new MetaDir without a LogsDir moves the logs under it.
func (c Config) Overlay(o Config) Config {
	if o.MetaDir != "" {
		c.MetaDir = o.MetaDir
		if o.LogsDir == "" {
			c.LogsDir = filepath.Join(o.MetaDir, "logs")
		}
	}
	if o.LogsDir != "" {
		c.LogsDir = o.LogsDir
	}
	if o.NextID != "" {
		c.NextID = o.NextID
	}
	if o.Editor != "" {
		c.Editor = o.Editor
	}
	return c
}

// NextIDPath is the id counter file
func (c Config) NextIDPath() string {
	return filepath.Join(c.MetaDir, c.NextID)
}

// CatalogPath is the SQLite reporting mirror
func (c Config) CatalogPath() string {
	return filepath.Join(c.MetaDir, catalogFile)
}
