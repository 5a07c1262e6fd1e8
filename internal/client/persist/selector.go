package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cakeinvoice/internal/logging"
)

// Request is one save invocation.
type Request struct {
	Artifact Artifact
	// Remembered is the folder from a previous session, or nil.
	Remembered DirectoryHandle
	// AutoExport enables Export after a successful save.
	AutoExport bool
	Export     func(ctx context.Context) error
}

// Selector runs the save chain. Picker may be nil when the environment
// has no interactive dialog; Downloader is required.
type Selector struct {
	Picker     SavePicker
	Downloader Downloader
	FileType   FileType
	Log        logging.Logger
}

func NewSelector(picker SavePicker, dl Downloader, log logging.Logger) *Selector {
	if log == nil {
		log = logging.Nop()
	}
	return &Selector{Picker: picker, Downloader: dl, FileType: PDFFileType, Log: log}
}

// VerifyPermission reports whether h may be written to, asking again when
// the grant is not current. Errors count as "not granted".
func VerifyPermission(ctx context.Context, h DirectoryHandle, log logging.Logger) bool {
	state, err := h.QueryPermission(ctx)
	if err != nil {
		log.Warn(ctx, "query permission failed", "err", err)
		return false
	}
	if state == PermissionGranted {
		return true
	}

	state, err = h.RequestPermission(ctx)
	if err != nil {
		log.Warn(ctx, "request permission failed", "err", err)
		return false
	}
	return state == PermissionGranted
}

// Save delivers req.Artifact and reports exactly one outcome.
func (s *Selector) Save(ctx context.Context, req Request) Outcome {
	out := s.save(ctx, req)
	if out.Status == StatusSuccess && req.AutoExport && req.Export != nil {
		out.AuxiliaryRan = true
		if err := req.Export(ctx); err != nil {
			s.log().Warn(ctx, "auxiliary export failed", "err", err)
			out.AuxiliaryErr = err
		}
	}
	return out
}

func (s *Selector) save(ctx context.Context, req Request) Outcome {
	a := req.Artifact
	log := s.log().With("file", a.Name)

	if req.Remembered != nil {
		if loc, ok := s.tryRemembered(ctx, req.Remembered, a, log); ok {
			return success(TierRemembered, loc)
		}
	}

	if s.Picker != nil {
		loc, err := s.tryPicker(ctx, a)
		switch {
		case err == nil:
			return success(TierPicker, loc)
		case errors.Is(err, ErrCanceled) || errors.Is(err, context.Canceled):
			log.Info(ctx, "save canceled")
			return Outcome{Status: StatusCancelled}
		case errors.Is(err, ErrUnsupported):
			log.Debug(ctx, "save picker unavailable")
		default:
			log.Warn(ctx, "save picker failed, falling back to download", "err", err)
		}
	}

	if s.Downloader == nil {
		return Outcome{Status: StatusFailure, Reason: "no download channel configured"}
	}
	loc, err := s.Downloader.Download(ctx, a)
	if err != nil {
		log.Error(ctx, "download failed", "err", err)
		return Outcome{Status: StatusFailure, Reason: fmt.Sprintf("could not save %s: %v", a.Name, err)}
	}
	return success(TierDownload, loc)
}

func (s *Selector) tryRemembered(ctx context.Context, dir DirectoryHandle, a Artifact, log logging.Logger) (string, bool) {
	if !VerifyPermission(ctx, dir, log) {
		log.Info(ctx, "remembered folder not writable, asking for a location")
		return "", false
	}

	fh, err := dir.CreateFile(ctx, a.Name)
	if err != nil {
		log.Warn(ctx, "create in remembered folder failed", "err", err)
		return "", false
	}
	if err := fh.Write(ctx, a.Data); err != nil {
		log.Warn(ctx, "write to remembered folder failed", "err", err)
		return "", false
	}
	return fh.Location(), true
}

func (s *Selector) tryPicker(ctx context.Context, a Artifact) (string, error) {
	ft := s.FileType
	if ft.MIMEType == "" {
		ft = FileType{Description: "Document", MIMEType: a.MIMEType}
	}

	fh, err := s.Picker.PickSaveFile(ctx, a.Name, ft)
	if err != nil {
		return "", err
	}
	if err := fh.Write(ctx, a.Data); err != nil {
		return "", fmt.Errorf("write %s: %w", fh.Location(), err)
	}
	return fh.Location(), nil
}

func (s *Selector) log() logging.Logger {
	if s.Log == nil {
		return logging.Nop()
	}
	return s.Log
}

func success(tier int, loc string) Outcome {
	return Outcome{Status: StatusSuccess, Tier: tier, Location: loc}
}
