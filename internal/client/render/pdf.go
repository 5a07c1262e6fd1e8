// Package render turns an invoice into a PDF document or a plain-text
// preview.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/totals"
	"github.com/jung-kurt/gofpdf"
)

const (
	pageW    = 210.0
	margin   = 15.0
	contentW = pageW - 2*margin
)

// MIMEType of the rendered document.
const MIMEType = "application/pdf"

var (
	ink   = RGB{0x1f, 0x29, 0x37}
	muted = RGB{0x6b, 0x72, 0x80}
	rule  = RGB{0xe5, 0xe7, 0xeb}
)

// FileName is the suggested name for an invoice document.
func FileName(inv models.Invoice) string {
	num := strings.NewReplacer("/", "-", `\`, "-").Replace(strings.TrimSpace(inv.Number))
	if num == "" {
		num = "draft"
	}
	return "Invoice_" + num + ".pdf"
}

// PDF renders inv as an A4 document.
func PDF(inv models.Invoice) ([]byte, error) {
	theme := ParseHexColor(inv.ThemeColor)
	t := inv.Totals()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle("Invoice "+inv.Number, true)
	pdf.SetAuthor(inv.CompanyName, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// theme band
	fill(pdf, theme)
	pdf.Rect(0, 0, pageW, 6, "F")

	drawHeader(pdf, tr, inv, theme)
	drawParties(pdf, tr, inv)
	drawItems(pdf, tr, inv, theme)
	drawTotals(pdf, inv, t, theme)

	if notes := strings.TrimSpace(inv.Notes); notes != "" {
		pdf.Ln(8)
		text(pdf, muted)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 5, "NOTES", "", 1, "L", false, 0, "")
		text(pdf, ink)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(contentW, 5, tr(notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeader(pdf *gofpdf.Fpdf, tr func(string) string, inv models.Invoice, theme RGB) {
	top := 16.0
	logoDrawn := false
	if inv.Logo != "" {
		if data, typ, err := loadLogo(inv.Logo); err == nil {
			opts := gofpdf.ImageOptions{ImageType: typ, ReadDpi: false}
			pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(data))
			if pdf.Ok() {
				pdf.ImageOptions("logo", margin, top, 0, 18, false, opts, 0, "")
				logoDrawn = pdf.Ok()
			}
			if !logoDrawn {
				pdf.ClearError()
			}
		}
	}
	if !logoDrawn {
		fill(pdf, theme)
		pdf.Rect(margin, top, 18, 18, "F")
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 18)
		pdf.SetXY(margin, top)
		pdf.CellFormat(18, 18, initial(inv.CompanyName), "", 0, "C", false, 0, "")
	}

	// company block
	pdf.SetXY(margin+22, top)
	text(pdf, ink)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(80, 7, tr(inv.CompanyName), "", 2, "L", false, 0, "")
	text(pdf, muted)
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range strings.Split(inv.CompanyAddress, "\n") {
		pdf.CellFormat(80, 4.5, tr(line), "", 2, "L", false, 0, "")
	}
	if inv.CompanyEmail != "" {
		pdf.CellFormat(80, 4.5, tr(inv.CompanyEmail), "", 2, "L", false, 0, "")
	}

	// title block
	right := pageW - margin - 70
	pdf.SetXY(right, top)
	text(pdf, theme)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(70, 10, "INVOICE", "", 2, "R", false, 0, "")
	text(pdf, ink)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(70, 5, tr("#"+inv.Number), "", 2, "R", false, 0, "")
	text(pdf, muted)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(70, 5, "Date: "+inv.Date, "", 2, "R", false, 0, "")
	pdf.CellFormat(70, 5, "Due: "+inv.DueDate, "", 2, "R", false, 0, "")
	pdf.CellFormat(70, 5, "Status: "+string(inv.Status), "", 2, "R", false, 0, "")

	pdf.SetY(max(pdf.GetY(), top+26) + 4)
	draw(pdf, rule)
	pdf.Line(margin, pdf.GetY(), pageW-margin, pdf.GetY())
	pdf.Ln(6)
}

func drawParties(pdf *gofpdf.Fpdf, tr func(string) string, inv models.Invoice) {
	text(pdf, muted)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, "BILL TO", "", 1, "L", false, 0, "")

	text(pdf, ink)
	pdf.SetFont("Helvetica", "B", 11)
	name := inv.CustomerName
	if name == "" {
		name = "-"
	}
	pdf.CellFormat(contentW, 6, tr(name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if inv.CustomerPhone != "" {
		pdf.CellFormat(contentW, 5, tr(inv.CustomerPhone), "", 1, "L", false, 0, "")
	}
	if inv.CustomerAddress != "" {
		pdf.MultiCell(contentW, 5, tr(inv.CustomerAddress), "", "L", false)
	}
	pdf.Ln(6)
}

func drawItems(pdf *gofpdf.Fpdf, tr func(string) string, inv models.Invoice, theme RGB) {
	cols := []float64{contentW - 75, 20, 27, 28}
	heads := []string{"Description", "Qty", "Price", "Total"}
	aligns := []string{"L", "C", "R", "R"}

	fill(pdf, tint(theme, 0.85))
	text(pdf, ink)
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range heads {
		pdf.CellFormat(cols[i], 8, h, "", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	for _, it := range inv.Items {
		pdf.SetFont("Helvetica", "", 10)
		text(pdf, ink)
		pdf.CellFormat(cols[0], 6, tr(it.Description), "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1], 6, fmt.Sprintf("%g", it.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(cols[2], 6, "$"+totals.Format(it.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(cols[3], 6, "$"+totals.Format(it.Total()), "", 1, "R", false, 0, "")

		if d := it.Detail(); d != "" {
			text(pdf, muted)
			pdf.SetFont("Helvetica", "", 8)
			pdf.CellFormat(cols[0], 4, tr(d), "", 1, "L", false, 0, "")
		}
		pdf.Ln(1)
		draw(pdf, rule)
		pdf.Line(margin, pdf.GetY(), pageW-margin, pdf.GetY())
		pdf.Ln(1)
	}
	pdf.Ln(4)
}

func drawTotals(pdf *gofpdf.Fpdf, inv models.Invoice, t totals.Totals, theme RGB) {
	labelW, valueW := 40.0, 30.0
	x := pageW - margin - labelW - valueW

	row := func(label, value string) {
		pdf.SetX(x)
		pdf.CellFormat(labelW, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, value, "", 1, "R", false, 0, "")
	}

	text(pdf, muted)
	pdf.SetFont("Helvetica", "", 10)
	row("Subtotal", "$"+totals.Format(t.Subtotal))
	row(fmt.Sprintf("Tax (%g%%)", inv.TaxRate), "$"+totals.Format(t.TaxAmount))
	if inv.Discount > 0 {
		row("Discount", "-$"+totals.Format(inv.Discount))
	}

	draw(pdf, rule)
	pdf.Line(x, pdf.GetY()+1, pageW-margin, pdf.GetY()+1)
	pdf.Ln(3)
	text(pdf, theme)
	pdf.SetFont("Helvetica", "B", 13)
	row("Total", "$"+totals.Format(t.Total))
}

func initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		if r < 0x80 {
			return strings.ToUpper(string(r))
		}
		break
	}
	return "?"
}

func fill(pdf *gofpdf.Fpdf, c RGB) { pdf.SetFillColor(c.R, c.G, c.B) }
func text(pdf *gofpdf.Fpdf, c RGB) { pdf.SetTextColor(c.R, c.G, c.B) }
func draw(pdf *gofpdf.Fpdf, c RGB) { pdf.SetDrawColor(c.R, c.G, c.B) }
