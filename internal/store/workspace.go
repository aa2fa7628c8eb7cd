package store

import (
	"fmt"

	"github.com/pbaille/worklog/internal/config"
	"github.com/pbaille/worklog/internal/filex"
)

// Init creates the worklog space described by cfg. An existing id counter
// is left untouched so re-running init never hands out used ids again.
func Init(cfg config.Config) error {
	if err := filex.EnsureDir(cfg.MetaDir); err != nil {
		return fmt.Errorf("%w: failed to create meta dir: %v", ErrInternal, err)
	}
	if err := filex.EnsureDir(cfg.LogsDir); err != nil {
		return fmt.Errorf("%w: failed to create work log dir: %v", ErrInternal, err)
	}

	if filex.Exists(cfg.NextIDPath()) {
		return nil
	}
	if err := filex.WriteContent(cfg.NextIDPath(), "1"); err != nil {
		return fmt.Errorf("%w: failed to seed id counter: %v", ErrInternal, err)
	}
	return nil
}

// IsWorkspace reports whether cfg points at an initialized worklog space
func IsWorkspace(cfg config.Config) bool {
	return filex.Exists(cfg.MetaDir) &&
		filex.Exists(cfg.LogsDir) &&
		filex.Exists(cfg.NextIDPath())
}
