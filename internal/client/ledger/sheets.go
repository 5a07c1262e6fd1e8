package ledger

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/gcp"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"google.golang.org/api/sheets/v4"
)

// IDStore remembers which spreadsheet the ledger lives in.
type IDStore interface {
	SpreadsheetID() string
	SetSpreadsheetID(ctx context.Context, id string) error
}

// sheetsAPI is the part of the Sheets API the ledger needs.
type sheetsAPI interface {
	Create(ctx context.Context, title string) (string, error)
	Append(ctx context.Context, spreadsheetID string, values []any) error
}

type sheetsService struct {
	srv *sheets.Service
}

func (s sheetsService) Create(ctx context.Context, title string) (string, error) {
	ss, err := s.srv.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return ss.SpreadsheetId, nil
}

func (s sheetsService) Append(ctx context.Context, id string, values []any) error {
	_, err := s.srv.Spreadsheets.Values.Append(id, "A1", &sheets.ValueRange{
		Values: [][]interface{}{values},
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	return err
}

// SheetsLedger appends rows to a Google Sheet, creating it on first use.
type SheetsLedger struct {
	api   sheetsAPI
	ids   IDStore
	title string

	mu sync.Mutex
}

// NewSheetsLedger connects with credentialsFile. The spreadsheet, when
// created, is titled "<company> Invoices"; a blank company uses the
// default profile name.
func NewSheetsLedger(ctx context.Context, credentialsFile, company string, ids IDStore) (*SheetsLedger, error) {
	opts, err := gcp.Options(credentialsFile, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, err
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: %w", err)
	}
	return newSheetsLedger(sheetsService{srv: srv}, company, ids), nil
}

func newSheetsLedger(api sheetsAPI, company string, ids IDStore) *SheetsLedger {
	if strings.TrimSpace(company) == "" {
		company = models.DefaultSettings().CompanyName
	}
	return &SheetsLedger{api: api, ids: ids, title: company + " Invoices"}
}

func (l *SheetsLedger) Configured() bool { return l != nil && l.api != nil }

func (l *SheetsLedger) Append(ctx context.Context, r Row) error {
	if !l.Configured() {
		return ErrNotConfigured
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.ids.SpreadsheetID()
	if id == "" {
		created, err := l.api.Create(ctx, l.title)
		if err != nil {
			return fmt.Errorf("create spreadsheet: %w", err)
		}
		if err := l.ids.SetSpreadsheetID(ctx, created); err != nil {
			return fmt.Errorf("remember spreadsheet: %w", err)
		}
		if err := l.api.Append(ctx, created, Header.Values()); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		id = created
	}

	if err := l.api.Append(ctx, id, r.Values()); err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}
