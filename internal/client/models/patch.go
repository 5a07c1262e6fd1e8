package models

// InvoicePatch is a partial update produced by order auto-fill. Empty
// fields mean "no value"; Apply leaves the invoice untouched for them.
type InvoicePatch struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Date            string
	Items           []LineItem
}

// Empty reports whether the patch carries no value at all.
func (p InvoicePatch) Empty() bool {
	return p.CustomerName == "" && p.CustomerPhone == "" && p.CustomerAddress == "" &&
		p.Date == "" && len(p.Items) == 0
}

// Apply merges the patch field by field: a non-empty incoming value
// overwrites, an empty one preserves. Items are replaced as a whole.
func (inv *Invoice) Apply(p InvoicePatch) {
	setIf(&inv.CustomerName, p.CustomerName)
	setIf(&inv.CustomerPhone, p.CustomerPhone)
	setIf(&inv.CustomerAddress, p.CustomerAddress)
	setIf(&inv.Date, p.Date)
	if len(p.Items) > 0 {
		inv.Items = append([]LineItem(nil), p.Items...)
	}
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
