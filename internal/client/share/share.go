// Package share builds the WhatsApp message for an invoice.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/totals"
)

const whatsAppBase = "https://wa.me/?text="

// Message is the plain-text invoice summary. link, when set, is appended
// as a download line.
func Message(inv models.Invoice, company, link string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Invoice #%s*\n", inv.Number)
	fmt.Fprintf(&b, "Date: %s\n", inv.Date)
	fmt.Fprintf(&b, "Customer: %s\n\n", inv.CustomerName)
	b.WriteString("*Items:*\n")
	for _, it := range inv.Items {
		fmt.Fprintf(&b, "- %gx %s\n", it.Quantity, it.Description)
	}
	fmt.Fprintf(&b, "\n*Total: $%s*\n\n", totals.Format(inv.Totals().Total))
	if link != "" {
		fmt.Fprintf(&b, "Download: %s\n\n", link)
	}
	b.WriteString("Thank you for your business!\n")
	b.WriteString(company)
	return b.String()
}

// WhatsAppURL escapes msg the way encodeURIComponent does.
func WhatsAppURL(msg string) string {
	return whatsAppBase + EscapeComponent(msg)
}

// EscapeComponent percent-encodes everything except A-Z a-z 0-9 and
// -_.!~*'().
func EscapeComponent(s string) string {
	e := url.QueryEscape(s)
	r := strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*", "%7E", "~")
	return r.Replace(e)
}
