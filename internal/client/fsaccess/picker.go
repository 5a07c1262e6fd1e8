package fsaccess

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/persist"
	"golang.org/x/term"
)

// isTerminal is a test seam.
var isTerminal = term.IsTerminal

// TerminalPicker is the "save as" dialog of the CLI. It is only offered
// when stdin is an interactive terminal.
type TerminalPicker struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	// Dir resolves relative answers. Empty means the working directory.
	Dir string
}

var _ persist.SavePicker = (*TerminalPicker)(nil)

func NewTerminalPicker(in *bufio.Reader, out io.Writer, fd int) *TerminalPicker {
	return &TerminalPicker{in: in, out: out, fd: fd}
}

// PickSaveFile asks for a destination. Pressing enter accepts the
// suggested name; typing "cancel" aborts.
func (p *TerminalPicker) PickSaveFile(ctx context.Context, suggested string, ft persist.FileType) (persist.FileHandle, error) {
	if !isTerminal(p.fd) {
		return nil, persist.ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fmt.Fprintf(p.out, "Save %s as [%s] (type \"cancel\" to abort): ", ft.Description, suggested)
	line, err := p.in.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	case errors.Is(err, io.EOF):
		return nil, persist.ErrCanceled
	default:
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	answer := strings.TrimSpace(line)
	switch {
	case strings.EqualFold(answer, "cancel"):
		return nil, persist.ErrCanceled
	case answer == "":
		answer = suggested
	}
	answer = withExtension(answer, ft.Extensions)

	if !filepath.IsAbs(answer) && p.Dir != "" {
		answer = filepath.Join(p.Dir, answer)
	}
	return &localFile{path: answer}, nil
}

func withExtension(name string, exts []string) string {
	if len(exts) == 0 {
		return name
	}
	got := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if got == strings.ToLower(e) {
			return name
		}
	}
	return name + exts[0]
}

// LineConfirmer builds a Confirmer reading y/n answers from in.
func LineConfirmer(in *bufio.Reader, out io.Writer) Confirmer {
	return func(ctx context.Context, q string) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "%s [y/N]: ", q)
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}
