package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet used inside the workbook.
const SheetName = "Invoices"

// XLSXLedger appends rows to a local workbook.
type XLSXLedger struct {
	Path string

	mu sync.Mutex
}

func NewXLSXLedger(path string) *XLSXLedger {
	return &XLSXLedger{Path: path}
}

func (l *XLSXLedger) Configured() bool { return l != nil && l.Path != "" }

func (l *XLSXLedger) Append(ctx context.Context, r Row) error {
	if !l.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return fmt.Errorf("read %s: %w", l.Path, err)
	}

	next := len(rows) + 1
	if next == 1 {
		if err := setRow(f, 1, Header.Values()); err != nil {
			return err
		}
		next = 2
	}

	values := r.Values()
	// keep the total numeric so the column sums
	if v, err := strconv.ParseFloat(r.Total, 64); err == nil {
		values[6] = v
	}
	if err := setRow(f, next, values); err != nil {
		return err
	}

	if err := f.SaveAs(l.Path); err != nil {
		return fmt.Errorf("save %s: %w", l.Path, err)
	}
	return nil
}

func (l *XLSXLedger) open() (*excelize.File, error) {
	fresh := false
	f, err := excelize.OpenFile(l.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		f, fresh = excelize.NewFile(), true
	case err != nil:
		return nil, fmt.Errorf("open %s: %w", l.Path, err)
	}

	idx, err := f.GetSheetIndex(SheetName)
	if err == nil && idx == -1 {
		idx, err = f.NewSheet(SheetName)
	}
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if fresh {
		f.SetActiveSheet(idx)
		_ = f.DeleteSheet("Sheet1")
	}
	return f, nil
}

func setRow(f *excelize.File, n int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", n, err)
	}
	return nil
}
