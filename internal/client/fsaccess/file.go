package fsaccess

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// localFile is a FileHandle for a concrete path.
type localFile struct {
	path string
}

func (f *localFile) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".part-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", f.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f.path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

func (f *localFile) Location() string { return f.path }
