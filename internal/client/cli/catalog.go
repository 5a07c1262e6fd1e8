package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/assistant"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/render"
	"github.com/dmitrijs2005/cakeinvoice/internal/totals"
)

// AutoFill sends a pasted order message to the assistant and merges the
// extracted fields into the current invoice.
func (a *App) AutoFill(ctx context.Context, _ []string) error {
	if a.orders == nil {
		return errAINotAvailable
	}
	text, err := GetMultiline(a.reader, "Paste the customer's order message:", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	a.println("Thinking...")
	patch, err := a.orders.ParseOrder(ctx, text, a.settings.Current().Products)
	if err != nil {
		return fmt.Errorf("auto-fill: %w", err)
	}
	if patch.Empty() {
		a.println("Nothing recognised in that message.")
		return nil
	}
	a.invoice.Apply(patch)
	a.println("Invoice updated from the order.")
	return render.Text(a.out, *a.invoice)
}

func (a *App) Menu(_ context.Context, _ []string) error {
	products := a.settings.Current().Products
	if len(products) == 0 {
		a.println("No products yet.")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tPRICE\tDETAILS")
	for i, p := range products {
		li := models.LineItemFromProduct(p)
		fmt.Fprintf(tw, "%d\t%s\t$%s\t%s\n", i+1, p.Name, totals.Format(p.Price), li.Detail())
	}
	return tw.Flush()
}

func (a *App) AddProduct(ctx context.Context, _ []string) error {
	var p models.Product
	var err error
	if p.Name, err = GetSimpleText(a.reader, "- Product name", a.out); err != nil {
		return err
	}
	if p.Price, err = GetNumber(a.reader, "- Price", 0, a.out); err != nil {
		return err
	}
	if p.Flavor, err = GetSimpleText(a.reader, "- Flavor (optional)", a.out); err != nil {
		return err
	}
	if p.Weight, err = GetSimpleText(a.reader, "- Weight (optional)", a.out); err != nil {
		return err
	}

	p, err = a.settings.AddProduct(ctx, p)
	if err != nil {
		return err
	}
	a.println("Added", p.Name, "to the menu")
	return nil
}

func (a *App) RemoveProduct(ctx context.Context, args []string) error {
	products := a.settings.Current().Products
	i, err := index(args, len(products))
	if err != nil {
		return err
	}
	if err := a.settings.RemoveProduct(ctx, products[i].ID); err != nil {
		return err
	}
	a.println("Removed", products[i].Name)
	return nil
}

// ImportMenu extracts products from a menu file (text or image) or from
// pasted text when no file is given.
func (a *App) ImportMenu(ctx context.Context, args []string) error {
	if a.orders == nil {
		return errAINotAvailable
	}

	var src assistant.MenuSource
	if len(args) > 0 {
		data, err := os.ReadFile(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if mime := http.DetectContentType(data); strings.HasPrefix(mime, "image/") {
			src = assistant.MenuSource{Data: data, MIMEType: mime}
		} else {
			src = assistant.MenuSource{Text: string(data)}
		}
	} else {
		text, err := GetMultiline(a.reader, "Paste the menu text:", a.out)
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		src = assistant.MenuSource{Text: text}
	}

	a.println("Reading menu...")
	products, err := a.orders.ParseMenu(ctx, src)
	if err != nil {
		return fmt.Errorf("import menu: %w", err)
	}
	n, err := a.settings.AddProducts(ctx, products)
	if err != nil {
		return err
	}
	a.printf("Imported %d products.\n", n)
	return nil
}

// Profile edits the company profile and integration settings.
func (a *App) Profile(ctx context.Context, _ []string) error {
	cur := a.settings.Current()
	next := cur

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"- Company name", &next.CompanyName},
		{"- Company email", &next.CompanyEmail},
		{"- Theme color (#rrggbb)", &next.ThemeColor},
		{"- Google credentials file", &next.GoogleCredentialsFile},
	}
	for _, f := range fields {
		v, err := GetDefault(a.reader, f.prompt, *f.dst, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	addr, err := GetMultiline(a.reader, "- Company address (current: "+oneLine(cur.CompanyAddress)+", empty keeps it)", a.out)
	if err != nil {
		return err
	}
	if addr != "" {
		next.CompanyAddress = addr
	}

	if next.DefaultTaxRate, err = GetNumber(a.reader, "- Default tax rate (%)", cur.DefaultTaxRate, a.out); err != nil {
		return err
	}

	logo, err := GetSimpleText(a.reader, "- Logo image file (empty keeps, 'none' removes)", a.out)
	if err != nil {
		return err
	}
	switch strings.ToLower(logo) {
	case "":
	case "none":
		next.Logo = ""
	default:
		if next.Logo, err = render.DataURL(logo); err != nil {
			return fmt.Errorf("logo: %w", err)
		}
	}

	if next.GoogleCredentialsFile != "" && next.GoogleCredentialsFile != cur.GoogleCredentialsFile {
		if abs, err := filepath.Abs(next.GoogleCredentialsFile); err == nil {
			next.GoogleCredentialsFile = abs
		}
	}
	if next.AutoExportToSheet, err = GetConfirm(a.reader, "- Add every saved invoice to the ledger?", a.out); err != nil {
		return err
	}

	if _, err := a.settings.Update(ctx, func(s *models.Settings) { *s = next }); err != nil {
		return err
	}
	a.println("Profile saved.")
	return nil
}
