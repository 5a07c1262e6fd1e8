// Package persist delivers a generated document to the user through the
// best available channel.
//
// Three tiers are tried strictly in order:
//
//  1. a remembered folder, if one exists and write permission is granted;
//  2. an interactive "save as" picker;
//  3. a plain download, which is always available.
//
// A denied permission or a failed write at tier 1 falls through to tier 2.
// An explicit cancellation at tier 2 stops the chain. Any other tier 2
// error falls through to tier 3. An error at tier 3 is the only way to get
// a Failure outcome.
package persist

import (
	"context"
	"errors"
)

var (
	// ErrCanceled is returned by a SavePicker when the user aborts.
	ErrCanceled = errors.New("save canceled by user")
	// ErrUnsupported is returned by a SavePicker the environment cannot offer.
	ErrUnsupported = errors.New("save picker not supported")
	// ErrPermissionDenied is returned by a DirectoryHandle write without a grant.
	ErrPermissionDenied = errors.New("permission denied")
)

// Artifact is the in-memory document to save.
type Artifact struct {
	Name     string
	MIMEType string
	Data     []byte
}

// FileType is the filter offered by the interactive picker.
type FileType struct {
	Description string
	MIMEType    string
	Extensions  []string
}

// PDFFileType is the picker filter for invoices.
var PDFFileType = FileType{
	Description: "PDF Document",
	MIMEType:    "application/pdf",
	Extensions:  []string{".pdf"},
}

type PermissionState int

const (
	PermissionPrompt PermissionState = iota
	PermissionGranted
	PermissionDenied
)

func (p PermissionState) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "prompt"
	}
}

// FileHandle is a destination chosen for a single write.
type FileHandle interface {
	Write(ctx context.Context, data []byte) error
	Location() string
}

// DirectoryHandle is a previously authorized folder.
type DirectoryHandle interface {
	QueryPermission(ctx context.Context) (PermissionState, error)
	RequestPermission(ctx context.Context) (PermissionState, error)
	CreateFile(ctx context.Context, name string) (FileHandle, error)
}

// SavePicker is the interactive "save as" capability.
type SavePicker interface {
	PickSaveFile(ctx context.Context, suggestedName string, ft FileType) (FileHandle, error)
}

// Downloader is the last-resort channel. It returns where the file went.
type Downloader interface {
	Download(ctx context.Context, a Artifact) (string, error)
}
