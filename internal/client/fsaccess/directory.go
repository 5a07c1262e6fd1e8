package fsaccess

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/persist"
	"github.com/dmitrijs2005/cakeinvoice/internal/filex"
)

// Confirmer asks the user a yes/no question.
type Confirmer func(ctx context.Context, question string) (bool, error)

// Directory is a folder remembered across sessions. Its write grant is
// not remembered: every process starts at PermissionPrompt and asks once.
type Directory struct {
	path    string
	confirm Confirmer

	mu      sync.Mutex
	granted bool
}

var _ persist.DirectoryHandle = (*Directory)(nil)

func NewDirectory(path string, confirm Confirmer) *Directory {
	return &Directory{path: path, confirm: confirm}
}

func (d *Directory) Path() string { return d.path }

func (d *Directory) QueryPermission(context.Context) (persist.PermissionState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.granted {
		return persist.PermissionGranted, nil
	}
	return persist.PermissionPrompt, nil
}

func (d *Directory) RequestPermission(ctx context.Context) (persist.PermissionState, error) {
	if d.confirm == nil {
		return persist.PermissionDenied, nil
	}
	ok, err := d.confirm(ctx, fmt.Sprintf("Save into %s?", d.path))
	if err != nil {
		return persist.PermissionDenied, err
	}
	if !ok {
		return persist.PermissionDenied, nil
	}
	if err := filex.WritableDir(d.path); err != nil {
		return persist.PermissionDenied, fmt.Errorf("folder %s: %w", d.path, err)
	}

	d.mu.Lock()
	d.granted = true
	d.mu.Unlock()
	return persist.PermissionGranted, nil
}

// CreateFile returns a handle for name inside the folder. An existing file
// of the same name is replaced on write.
func (d *Directory) CreateFile(ctx context.Context, name string) (persist.FileHandle, error) {
	if st, _ := d.QueryPermission(ctx); st != persist.PermissionGranted {
		return nil, persist.ErrPermissionDenied
	}
	return &localFile{path: filepath.Join(d.path, filepath.Base(name))}, nil
}
