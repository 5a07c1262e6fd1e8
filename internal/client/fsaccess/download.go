package fsaccess

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/persist"
	"github.com/dmitrijs2005/cakeinvoice/internal/filex"
)

// DownloadDir drops files into a downloads folder, like a browser does.
type DownloadDir struct {
	Dir string
}

var _ persist.Downloader = DownloadDir{}

// Download writes a under a name that does not clash with existing files
// ("Invoice_X (1).pdf") and returns the path.
func (d DownloadDir) Download(ctx context.Context, a persist.Artifact) (string, error) {
	dir, err := filex.EnsureSubDir(d.Dir)
	if err != nil {
		return "", err
	}
	path, err := filex.UniquePath(dir, filepath.Base(a.Name))
	if err != nil {
		return "", err
	}
	f := &localFile{path: path}
	if err := f.Write(ctx, a.Data); err != nil {
		return "", fmt.Errorf("download %s: %w", a.Name, err)
	}
	return path, nil
}
