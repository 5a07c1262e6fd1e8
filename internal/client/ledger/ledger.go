// Package ledger appends one summary row per invoice to a companion
// spreadsheet: a Google Sheet or a local .xlsx workbook.
package ledger

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/totals"
)

var ErrNotConfigured = errors.New("ledger not configured")

// Row is one invoice in the ledger.
type Row struct {
	InvoiceNumber string
	Date          string
	CustomerName  string
	Phone         string
	Address       string
	Items         string
	Total         string
	Status        string
}

// Header holds the column titles.
var Header = Row{
	InvoiceNumber: "Invoice Number",
	Date:          "Date",
	CustomerName:  "Customer Name",
	Phone:         "Phone",
	Address:       "Address",
	Items:         "Items",
	Total:         "Total Amount",
	Status:        "Status",
}

// RowFor summarises inv. Items read "2x Cake, 1x Tart"; the total has two
// decimals.
func RowFor(inv models.Invoice) Row {
	return Row{
		InvoiceNumber: inv.Number,
		Date:          inv.Date,
		CustomerName:  inv.CustomerName,
		Phone:         inv.CustomerPhone,
		Address:       inv.CustomerAddress,
		Items:         inv.ItemSummary(),
		Total:         totals.Format(inv.Totals().Total),
		Status:        string(inv.Status),
	}
}

// Values returns the cells in column order.
func (r Row) Values() []any {
	return []any{r.InvoiceNumber, r.Date, r.CustomerName, r.Phone, r.Address, r.Items, r.Total, r.Status}
}

type Appender interface {
	Append(ctx context.Context, r Row) error
	Configured() bool
}
