package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/cloud"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/fsaccess"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/ledger"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/persist"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/render"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/share"
)

const historyLimit = 20

// SaveDir remembers the folder used by tier 1 of "save". Without an
// argument the remembered folder is forgotten.
func (a *App) SaveDir(ctx context.Context, args []string) error {
	path := strings.Join(args, " ")
	a.dir = nil
	if path == "" {
		if err := a.settings.SetRememberedDir(ctx, ""); err != nil {
			return err
		}
		a.println("Default folder cleared.")
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := a.settings.SetRememberedDir(ctx, abs); err != nil {
		return err
	}
	a.println("Invoices will be saved to", abs)
	return nil
}

func (a *App) artifact() (persist.Artifact, error) {
	data, err := render.PDF(*a.invoice)
	if err != nil {
		return persist.Artifact{}, fmt.Errorf("render pdf: %w", err)
	}
	return persist.Artifact{Name: render.FileName(*a.invoice), MIMEType: render.MIMEType, Data: data}, nil
}

// remembered returns the directory handle for the stored folder. The handle
// is kept across saves so a granted permission lasts for the session.
func (a *App) remembered(ctx context.Context) persist.DirectoryHandle {
	dir, err := a.settings.RememberedDir(ctx)
	if err != nil {
		a.log.Warn(ctx, "reading default folder failed", "err", err)
		return nil
	}
	if dir == "" {
		return nil
	}
	if a.dir == nil || a.dir.Path() != dir {
		a.dir = fsaccess.NewDirectory(dir, a.confirm)
	}
	return a.dir
}

// Save writes the PDF through the tiered save chain and, when enabled,
// appends the invoice to the ledger afterwards.
func (a *App) Save(ctx context.Context, _ []string) error {
	art, err := a.artifact()
	if err != nil {
		return err
	}

	req := persist.Request{Artifact: art}
	if dir := a.remembered(ctx); dir != nil {
		req.Remembered = dir
	}
	if a.settings.Current().AutoExportToSheet {
		if l, err := a.newLedger(ctx); err != nil {
			a.log.Info(ctx, "auto-export skipped", "reason", err)
		} else if l.Configured() {
			req.AutoExport = true
			req.Export = func(ctx context.Context) error { return a.appendLedger(ctx, l) }
		}
	}

	out := a.selector.Save(ctx, req)
	a.record(ctx, models.ExportRecord{
		FileName: art.Name,
		Channel:  models.ChannelLocal,
		Tier:     out.Tier,
		Status:   out.Status.String(),
		Location: out.Location,
		Detail:   out.Reason,
	})

	switch out.Status {
	case persist.StatusSuccess:
		a.printf("Saved %s (%s)\n", out.Location, out)
	case persist.StatusCancelled:
		a.println("Save cancelled.")
	default:
		a.println("Save failed:", out.Reason)
	}
	if out.AuxiliaryRan {
		if out.AuxiliaryErr != nil {
			a.println("Ledger export failed:", out.AuxiliaryErr)
		} else {
			a.println("Added to the ledger.")
		}
	}
	return nil
}

// Drive uploads the PDF to Google Drive.
func (a *App) Drive(ctx context.Context, _ []string) error {
	st := a.settings.Current()
	if !st.GoogleConfigured() {
		return errGoogleMissing
	}
	up, err := a.newDrive(ctx, st.GoogleCredentialsFile)
	if err != nil {
		return err
	}
	loc, err := a.upload(ctx, up)
	if err != nil {
		return err
	}
	if loc.URL != "" {
		a.lastLink = loc.URL
	}
	a.println("Uploaded to Drive:", orDefault(loc.URL, loc.ID))
	return nil
}

// Upload stores the PDF in the configured S3 bucket and keeps the presigned
// link for "share".
func (a *App) Upload(ctx context.Context, _ []string) error {
	if a.s3 == nil {
		return errS3Missing
	}
	loc, err := a.upload(ctx, a.s3)
	if err != nil {
		return err
	}
	a.lastLink = loc.URL
	a.println("Uploaded:", orDefault(loc.URL, loc.ID))
	return nil
}

func (a *App) upload(ctx context.Context, up cloud.Uploader) (cloud.Location, error) {
	art, err := a.artifact()
	if err != nil {
		return cloud.Location{}, err
	}
	rec := &cloud.Recorded{
		Uploader:      up,
		History:       a.history,
		InvoiceNumber: func() string { return a.invoice.Number },
		Log:           a.log,
	}
	return rec.Upload(ctx, art)
}

// Sheet appends the invoice to the ledger right away.
func (a *App) Sheet(ctx context.Context, _ []string) error {
	l, err := a.newLedger(ctx)
	if err != nil {
		return err
	}
	if !l.Configured() {
		return ledger.ErrNotConfigured
	}
	if err := a.appendLedger(ctx, l); err != nil {
		return err
	}
	a.println("Added to the ledger.")
	return nil
}

func (a *App) appendLedger(ctx context.Context, l ledger.Appender) error {
	err := l.Append(ctx, ledger.RowFor(*a.invoice))
	rec := models.ExportRecord{Channel: models.ChannelLedger, Status: persist.StatusSuccess.String()}
	if err != nil {
		rec.Status = persist.StatusFailure.String()
		rec.Detail = err.Error()
	}
	a.record(ctx, rec)
	return err
}

// Share prints a WhatsApp link carrying the invoice summary and the last
// uploaded link, if any.
func (a *App) Share(_ context.Context, _ []string) error {
	msg := share.Message(*a.invoice, a.settings.Current().CompanyName, a.lastLink)
	a.println(msg)
	a.println()
	a.println(share.WhatsAppURL(msg))
	return nil
}

func (a *App) History(ctx context.Context, _ []string) error {
	recs, err := a.history.List(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		a.println("No exports yet.")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tINVOICE\tCHANNEL\tSTATUS\tLOCATION")
	for _, r := range recs {
		status := r.Status
		if r.Tier > 0 {
			status = fmt.Sprintf("%s(tier:%d)", r.Status, r.Tier)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.InvoiceNumber, r.Channel, status, orDefault(r.Location, r.Detail))
	}
	return tw.Flush()
}

func (a *App) record(ctx context.Context, rec models.ExportRecord) {
	if rec.InvoiceNumber == "" {
		rec.InvoiceNumber = a.invoice.Number
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = a.now()
	}
	if err := a.history.Insert(ctx, rec); err != nil && !errors.Is(err, context.Canceled) {
		a.log.Warn(ctx, "recording export failed", "err", err)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
