// Package models defines the invoice, catalog and profile types used by the
// cakeinvoice CLI.
package models

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dmitrijs2005/cakeinvoice/internal/totals"
	"github.com/google/uuid"
)

// DateLayout is the wire format for invoice dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

var (
	ErrItemNotFound  = errors.New("line item not found")
	ErrInvalidStatus = errors.New("invalid invoice status")
)

// Status is the lifecycle marker printed on an invoice.
type Status string

const (
	StatusDraft   Status = "DRAFT"
	StatusPaid    Status = "PAID"
	StatusPending Status = "PENDING"
)

// ParseStatus accepts any letter case.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusDraft, StatusPaid, StatusPending:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// LineItem is one priced row of an invoice.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Flavor      string  `json:"flavor,omitempty"`
	Weight      string  `json:"weight,omitempty"`
}

// NewLineItem returns an empty row with quantity 1.
func NewLineItem() LineItem {
	return LineItem{ID: uuid.NewString(), Quantity: 1}
}

// LineItemFromProduct pre-fills a row from a catalog entry.
func LineItemFromProduct(p Product) LineItem {
	return LineItem{
		ID:          uuid.NewString(),
		Description: p.Name,
		Quantity:    1,
		Price:       p.Price,
		Flavor:      p.Flavor,
		Weight:      p.Weight,
	}
}

func (li LineItem) UnitPrice() float64 { return li.Price }
func (li LineItem) Qty() float64       { return li.Quantity }

// Total is price * quantity. It is never stored.
func (li LineItem) Total() float64 { return li.Price * li.Quantity }

// Detail joins the optional flavor and weight tags, e.g. "Vanilla • 1kg".
func (li LineItem) Detail() string {
	var parts []string
	if li.Flavor != "" {
		parts = append(parts, li.Flavor)
	}
	if li.Weight != "" {
		parts = append(parts, li.Weight)
	}
	return strings.Join(parts, " • ")
}

// Invoice is the document being edited, previewed and exported.
type Invoice struct {
	Number  string `json:"invoiceNumber"`
	Date    string `json:"date"`
	DueDate string `json:"dueDate"`

	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	CompanyEmail   string `json:"companyEmail"`
	Logo           string `json:"logo,omitempty"`
	ThemeColor     string `json:"themeColor"`

	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`

	Items    []LineItem `json:"items"`
	Notes    string     `json:"notes"`
	TaxRate  float64    `json:"taxRate"`
	Discount float64    `json:"discount"`
	Status   Status     `json:"status"`
}

// NewInvoice builds the default invoice for the given moment. rnd supplies
// the numeric suffix of the invoice number; nil uses math/rand.
func NewInvoice(now time.Time, rnd func(n int) int) *Invoice {
	if rnd == nil {
		rnd = rand.IntN
	}
	d := DefaultSettings()
	return &Invoice{
		Number:         fmt.Sprintf("INV-%d-%03d", now.Year(), rnd(1000)),
		Date:           now.Format(DateLayout),
		DueDate:        now.AddDate(0, 0, 7).Format(DateLayout),
		CompanyName:    d.CompanyName,
		CompanyAddress: d.CompanyAddress,
		CompanyEmail:   d.CompanyEmail,
		ThemeColor:     d.ThemeColor,
		Items: []LineItem{{
			ID:          uuid.NewString(),
			Description: "Custom Birthday Cake",
			Quantity:    1,
			Price:       50,
			Flavor:      "Vanilla Bean",
			Weight:      "1kg",
		}},
		Notes:  "Thank you for choosing Cake Dudes!",
		Status: StatusDraft,
	}
}

// Totals derives subtotal, tax and total from the current items.
func (inv *Invoice) Totals() totals.Totals {
	return totals.Compute(inv.Items, inv.TaxRate, inv.Discount)
}

// AddItem appends a row and returns it.
func (inv *Invoice) AddItem(li LineItem) LineItem {
	if li.ID == "" {
		li.ID = uuid.NewString()
	}
	inv.Items = append(inv.Items, li)
	return li
}

// FindItem returns the row with the given id.
func (inv *Invoice) FindItem(id string) (*LineItem, error) {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			return &inv.Items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// UpdateItem mutates the row with the given id in place.
func (inv *Invoice) UpdateItem(id string, fn func(*LineItem)) error {
	li, err := inv.FindItem(id)
	if err != nil {
		return err
	}
	fn(li)
	return nil
}

// RemoveItem deletes the row with the given id, keeping the order of the rest.
func (inv *Invoice) RemoveItem(id string) error {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			inv.Items = append(inv.Items[:i:i], inv.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// ApplyProfile copies the sender identity and default tax rate from the
// profile into the invoice.
func (inv *Invoice) ApplyProfile(s Settings) {
	inv.CompanyName = s.CompanyName
	inv.CompanyAddress = s.CompanyAddress
	inv.CompanyEmail = s.CompanyEmail
	inv.Logo = s.Logo
	inv.ThemeColor = s.ThemeColor
	inv.TaxRate = s.DefaultTaxRate
}

// ItemSummary renders items as "2x Cake, 1x Tart".
func (inv *Invoice) ItemSummary() string {
	parts := make([]string, 0, len(inv.Items))
	for _, it := range inv.Items {
		parts = append(parts, fmt.Sprintf("%sx %s", formatQty(it.Quantity), it.Description))
	}
	return strings.Join(parts, ", ")
}

func formatQty(q float64) string {
	return fmt.Sprintf("%g", q)
}
