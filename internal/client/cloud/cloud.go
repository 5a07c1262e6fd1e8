// Package cloud uploads rendered invoices to remote storage.
package cloud

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/persist"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/repositories/exports"
	"github.com/dmitrijs2005/cakeinvoice/internal/logging"
)

var ErrNoFileID = errors.New("upload finished without a file id")

// Location identifies an uploaded file. URL may be empty.
type Location struct {
	ID  string
	URL string
}

type Uploader interface {
	Channel() models.Channel
	Upload(ctx context.Context, a persist.Artifact) (Location, error)
}

// Recorded wraps an Uploader and writes every attempt to export history.
type Recorded struct {
	Uploader
	History       exports.Repository
	InvoiceNumber func() string
	Log           logging.Logger
}

func (r *Recorded) Upload(ctx context.Context, a persist.Artifact) (Location, error) {
	loc, err := r.Uploader.Upload(ctx, a)

	rec := models.ExportRecord{
		FileName:  a.Name,
		Channel:   r.Channel(),
		Status:    "SUCCESS",
		Location:  loc.URL,
		Detail:    loc.ID,
		CreatedAt: time.Now(),
	}
	if r.InvoiceNumber != nil {
		rec.InvoiceNumber = r.InvoiceNumber()
	}
	if rec.Location == "" {
		rec.Location = loc.ID
	}
	if err != nil {
		rec.Status = "FAILURE"
		rec.Detail = err.Error()
	}

	if r.History != nil {
		if herr := r.History.Insert(ctx, rec); herr != nil && r.Log != nil {
			r.Log.Warn(ctx, "recording upload failed", "err", herr)
		}
	}
	return loc, err
}
