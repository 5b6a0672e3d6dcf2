package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Local stores artifacts as plain files under a root directory.
type Local struct {
	root string
}

// NewLocal creates a local storage backend rooted at the given directory.
func NewLocal(root string) *Local {
	return &Local{root: root}
}

// Read reads the file at path relative to the root.
func (l *Local) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.root, filepath.FromSlash(path)))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}

// Write writes the file at path relative to the root, creating parent
// directories as needed.
func (l *Local) Write(_ context.Context, path string, data []byte) error {
	full := filepath.Join(l.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.Wrapf(err, "mkdir for %s", path)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
