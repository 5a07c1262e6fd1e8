package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/totals"
)

// Text writes a terminal preview of inv. Items are numbered from 1 so the
// CLI can refer to them.
func Text(w io.Writer, inv models.Invoice) error {
	t := inv.Totals()
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", inv.CompanyName)
	for _, line := range strings.Split(inv.CompanyAddress, "\n") {
		if line != "" {
			fmt.Fprintf(&b, "%s\n", line)
		}
	}
	if inv.CompanyEmail != "" {
		fmt.Fprintf(&b, "%s\n", inv.CompanyEmail)
	}
	fmt.Fprintf(&b, "\nINVOICE #%s   [%s]\n", inv.Number, inv.Status)
	fmt.Fprintf(&b, "Date: %s   Due: %s\n\n", inv.Date, inv.DueDate)

	fmt.Fprintf(&b, "Bill to: %s\n", orDash(inv.CustomerName))
	if inv.CustomerPhone != "" {
		fmt.Fprintf(&b, "Phone:   %s\n", inv.CustomerPhone)
	}
	if inv.CustomerAddress != "" {
		fmt.Fprintf(&b, "Address: %s\n", strings.ReplaceAll(inv.CustomerAddress, "\n", ", "))
	}
	b.WriteString("\n")

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tDescription\tQty\tPrice\tTotal\t")
	for i, it := range inv.Items {
		desc := it.Description
		if d := it.Detail(); d != "" {
			desc += " (" + d + ")"
		}
		fmt.Fprintf(tw, "%d\t%s\t%g\t%s\t%s\t\n", i+1, desc, it.Quantity, totals.Format(it.Price), totals.Format(it.Total()))
	}
	fmt.Fprintln(tw, "\t\t\t\t\t")
	fmt.Fprintf(tw, "\t\t\tSubtotal\t%s\t\n", totals.Format(t.Subtotal))
	fmt.Fprintf(tw, "\t\t\tTax (%g%%)\t%s\t\n", inv.TaxRate, totals.Format(t.TaxAmount))
	if inv.Discount > 0 {
		fmt.Fprintf(tw, "\t\t\tDiscount\t-%s\t\n", totals.Format(inv.Discount))
	}
	fmt.Fprintf(tw, "\t\t\tTOTAL\t%s\t\n", totals.Format(t.Total))
	if err := tw.Flush(); err != nil {
		return err
	}

	if notes := strings.TrimSpace(inv.Notes); notes != "" {
		fmt.Fprintf(&b, "\n%s\n", notes)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
