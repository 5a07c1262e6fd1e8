package cloud

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/gcp"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/persist"
	"google.golang.org/api/drive/v3"
)

// driveFiles is the part of the Drive API used for uploads.
type driveFiles interface {
	Create(ctx context.Context, meta *drive.File, media io.Reader) (*drive.File, error)
}

type driveService struct {
	srv *drive.Service
}

func (d driveService) Create(ctx context.Context, meta *drive.File, media io.Reader) (*drive.File, error) {
	return d.srv.Files.Create(meta).Media(media).Fields("id", "webViewLink").Context(ctx).Do()
}

// DriveUploader stores invoices in the user's Google Drive.
type DriveUploader struct {
	files driveFiles
	// FolderID places uploads in a folder; empty means the Drive root.
	FolderID string
}

func NewDriveUploader(ctx context.Context, credentialsFile string) (*DriveUploader, error) {
	opts, err := gcp.Options(credentialsFile, drive.DriveFileScope)
	if err != nil {
		return nil, err
	}
	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive: %w", err)
	}
	return &DriveUploader{files: driveService{srv: srv}}, nil
}

func (u *DriveUploader) Channel() models.Channel { return models.ChannelDrive }

func (u *DriveUploader) Upload(ctx context.Context, a persist.Artifact) (Location, error) {
	meta := &drive.File{Name: a.Name, MimeType: a.MIMEType}
	if u.FolderID != "" {
		meta.Parents = []string{u.FolderID}
	}

	f, err := u.files.Create(ctx, meta, bytes.NewReader(a.Data))
	if err != nil {
		return Location{}, fmt.Errorf("drive upload %s: %w", a.Name, err)
	}
	if f == nil || f.Id == "" {
		return Location{}, ErrNoFileID
	}
	return Location{ID: f.Id, URL: f.WebViewLink}, nil
}
