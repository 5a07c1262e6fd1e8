package persist

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/cakeinvoice/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFile struct {
	loc      string
	writeErr error
	written  []byte
}

func (f *fakeFile) Write(_ context.Context, data []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append([]byte(nil), data...)
	return nil
}

func (f *fakeFile) Location() string { return f.loc }

type fakeDir struct {
	query, request       PermissionState
	queryErr, requestErr error
	createErr            error
	file                 *fakeFile

	requests int
	creates  int
}

func (d *fakeDir) QueryPermission(context.Context) (PermissionState, error) {
	return d.query, d.queryErr
}

func (d *fakeDir) RequestPermission(context.Context) (PermissionState, error) {
	d.requests++
	return d.request, d.requestErr
}

func (d *fakeDir) CreateFile(_ context.Context, name string) (FileHandle, error) {
	d.creates++
	if d.createErr != nil {
		return nil, d.createErr
	}
	if d.file == nil {
		d.file = &fakeFile{loc: "/remembered/" + name}
	}
	return d.file, nil
}

type fakePicker struct {
	err   error
	file  *fakeFile
	calls int
	ft    FileType
}

func (p *fakePicker) PickSaveFile(_ context.Context, name string, ft FileType) (FileHandle, error) {
	p.calls++
	p.ft = ft
	if p.err != nil {
		return nil, p.err
	}
	if p.file == nil {
		p.file = &fakeFile{loc: "/picked/" + name}
	}
	return p.file, nil
}

type fakeDownloader struct {
	err   error
	calls int
	got   Artifact
}

func (d *fakeDownloader) Download(_ context.Context, a Artifact) (string, error) {
	d.calls++
	d.got = a
	if d.err != nil {
		return "", d.err
	}
	return "/download/" + a.Name, nil
}

var doc = Artifact{Name: "Invoice_INV-2026-001.pdf", MIMEType: "application/pdf", Data: []byte("%PDF-1.3")}

func TestSave_RememberedGranted_Tier1NoPicker(t *testing.T) {
	dir := &fakeDir{query: PermissionGranted}
	picker := &fakePicker{}
	dl := &fakeDownloader{}

	out := NewSelector(picker, dl, nil).Save(context.Background(), Request{Artifact: doc, Remembered: dir})

	assert.Equal(t, StatusSuccess, out.Status)
	assert.Equal(t, TierRemembered, out.Tier)
	assert.Equal(t, "/remembered/"+doc.Name, out.Location)
	assert.Equal(t, doc.Data, dir.file.written)
	assert.Zero(t, dir.requests)
	assert.Zero(t, picker.calls)
	assert.Zero(t, dl.calls)
}

func TestSave_LapsedGrantIsRequestedAgain(t *testing.T) {
	dir := &fakeDir{query: PermissionPrompt, request: PermissionGranted}
	picker := &fakePicker{}

	out := NewSelector(picker, &fakeDownloader{}, nil).Save(context.Background(), Request{Artifact: doc, Remembered: dir})

	assert.Equal(t, "SUCCESS(tier:1)", out.String())
	assert.Equal(t, 1, dir.requests)
	assert.Zero(t, picker.calls)
}

func TestSave_DeniedThenCancelled_NoDownload(t *testing.T) {
	dir := &fakeDir{query: PermissionPrompt, request: PermissionDenied}
	picker := &fakePicker{err: ErrCanceled}
	dl := &fakeDownloader{}

	out := NewSelector(picker, dl, nil).Save(context.Background(), Request{
		Artifact:   doc,
		Remembered: dir,
		AutoExport: true,
		Export:     func(context.Context) error { t.Fatal("export must not run"); return nil },
	})

	assert.Equal(t, StatusCancelled, out.Status)
	assert.Zero(t, out.Tier)
	assert.False(t, out.AuxiliaryRan)
	assert.Zero(t, dir.creates)
	assert.Equal(t, 1, picker.calls)
	assert.Zero(t, dl.calls)
}

func TestSave_ContextCanceledAtPickerIsCancellation(t *testing.T) {
	dl := &fakeDownloader{}
	out := NewSelector(&fakePicker{err: context.Canceled}, dl, nil).Save(context.Background(), Request{Artifact: doc})

	assert.Equal(t, StatusCancelled, out.Status)
	assert.Zero(t, dl.calls)
}

func TestSave_NoHandleUnsupportedPicker_Tier3(t *testing.T) {
	dl := &fakeDownloader{}
	out := NewSelector(&fakePicker{err: ErrUnsupported}, dl, nil).Save(context.Background(), Request{Artifact: doc})

	assert.Equal(t, StatusSuccess, out.Status)
	assert.Equal(t, TierDownload, out.Tier)
	assert.Equal(t, "/download/"+doc.Name, out.Location)
	assert.Equal(t, doc, dl.got)
}

func TestSave_NilPicker_Tier3(t *testing.T) {
	out := NewSelector(nil, &fakeDownloader{}, nil).Save(context.Background(), Request{Artifact: doc})
	assert.Equal(t, "SUCCESS(tier:3)", out.String())
}

func TestSave_AuxiliaryFailureKeepsSuccess(t *testing.T) {
	boom := errors.New("sheet unreachable")
	calls := 0

	out := NewSelector(&fakePicker{err: ErrUnsupported}, &fakeDownloader{}, nil).Save(context.Background(), Request{
		Artifact:   doc,
		AutoExport: true,
		Export: func(context.Context) error {
			calls++
			return boom
		},
	})

	assert.Equal(t, StatusSuccess, out.Status)
	assert.Equal(t, TierDownload, out.Tier)
	assert.True(t, out.AuxiliaryRan)
	assert.ErrorIs(t, out.AuxiliaryErr, boom)
	assert.Equal(t, 1, calls)
}

func TestSave_AuxiliaryOnlyWhenFlagSet(t *testing.T) {
	called := false
	out := NewSelector(nil, &fakeDownloader{}, nil).Save(context.Background(), Request{
		Artifact: doc,
		Export:   func(context.Context) error { called = true; return nil },
	})

	assert.Equal(t, StatusSuccess, out.Status)
	assert.False(t, out.AuxiliaryRan)
	assert.False(t, called)
}

func TestSave_FallThroughs(t *testing.T) {
	tests := []struct {
		name     string
		dir      *fakeDir
		picker   *fakePicker
		wantTier int
	}{
		{
			name:     "tier 1 write error goes to picker",
			dir:      &fakeDir{query: PermissionGranted, file: &fakeFile{loc: "x", writeErr: errors.New("disk full")}},
			picker:   &fakePicker{},
			wantTier: TierPicker,
		},
		{
			name:     "tier 1 create error goes to picker",
			dir:      &fakeDir{query: PermissionGranted, createErr: errors.New("gone")},
			picker:   &fakePicker{},
			wantTier: TierPicker,
		},
		{
			name:     "permission query error counts as denied",
			dir:      &fakeDir{queryErr: errors.New("revoked")},
			picker:   &fakePicker{},
			wantTier: TierPicker,
		},
		{
			name:     "permission request error counts as denied",
			dir:      &fakeDir{query: PermissionDenied, requestErr: errors.New("no tty")},
			picker:   &fakePicker{},
			wantTier: TierPicker,
		},
		{
			name:     "picker security error goes to download",
			dir:      &fakeDir{query: PermissionDenied, request: PermissionDenied},
			picker:   &fakePicker{err: errors.New("not allowed")},
			wantTier: TierDownload,
		},
		{
			name:     "picker write error goes to download",
			picker:   &fakePicker{file: &fakeFile{loc: "/picked", writeErr: errors.New("read-only")}},
			wantTier: TierDownload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dl := &fakeDownloader{}
			req := Request{Artifact: doc}
			if tt.dir != nil {
				req.Remembered = tt.dir
			}

			out := NewSelector(tt.picker, dl, nil).Save(context.Background(), req)

			require.Equal(t, StatusSuccess, out.Status)
			assert.Equal(t, tt.wantTier, out.Tier)
			assert.Equal(t, 1, tt.picker.calls, "picker is always tried before download")
			if tt.wantTier == TierDownload {
				assert.Equal(t, 1, dl.calls)
			} else {
				assert.Zero(t, dl.calls)
			}
		})
	}
}

func TestSave_DownloadErrorIsFailure(t *testing.T) {
	dl := &fakeDownloader{err: errors.New("no space left on device")}
	exported := false

	out := NewSelector(nil, dl, nil).Save(context.Background(), Request{
		Artifact:   doc,
		AutoExport: true,
		Export:     func(context.Context) error { exported = true; return nil },
	})

	assert.Equal(t, StatusFailure, out.Status)
	assert.Contains(t, out.Reason, "no space left on device")
	assert.Contains(t, out.String(), "FAILURE(")
	assert.False(t, exported)
}

func TestSave_PickerGetsPDFFilter(t *testing.T) {
	picker := &fakePicker{}
	NewSelector(picker, &fakeDownloader{}, nil).Save(context.Background(), Request{Artifact: doc})

	assert.Equal(t, "application/pdf", picker.ft.MIMEType)
	assert.Equal(t, []string{".pdf"}, picker.ft.Extensions)
}

func TestVerifyPermission(t *testing.T) {
	assert.True(t, VerifyPermission(context.Background(), &fakeDir{query: PermissionGranted}, logging.Nop()))
	assert.False(t, VerifyPermission(context.Background(), &fakeDir{request: PermissionPrompt}, logging.Nop()))
}
