package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/render"
	"github.com/dmitrijs2005/cakeinvoice/internal/totals"
)

var errBadIndex = errors.New("no such item number, see 'show'")

func (a *App) Show(_ context.Context, _ []string) error {
	return render.Text(a.out, *a.invoice)
}

// New discards the current invoice and starts from the defaults.
func (a *App) New(_ context.Context, _ []string) error {
	inv := models.NewInvoice(a.now(), nil)
	inv.ApplyProfile(a.settings.Current())
	*a.invoice = *inv
	a.println("Started invoice", inv.Number)
	return nil
}

func (a *App) Edit(_ context.Context, _ []string) error {
	inv := a.invoice
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"- Invoice number", &inv.Number},
		{"- Date (YYYY-MM-DD)", &inv.Date},
		{"- Due date (YYYY-MM-DD)", &inv.DueDate},
		{"- Customer name", &inv.CustomerName},
		{"- Customer phone", &inv.CustomerPhone},
		{"- Customer address", &inv.CustomerAddress},
	}
	for _, f := range fields {
		v, err := GetDefault(a.reader, f.prompt, *f.dst, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

func (a *App) AddItem(_ context.Context, _ []string) error {
	li := models.NewLineItem()
	if err := a.promptItem(&li); err != nil {
		return err
	}
	a.invoice.AddItem(li)
	a.printf("Added %s ($%s)\n", li.Description, totals.Format(li.Total()))
	return nil
}

// AddFromMenu pre-fills a line item from the catalog.
func (a *App) AddFromMenu(ctx context.Context, args []string) error {
	products := a.settings.Current().Products
	if len(products) == 0 {
		a.println("The menu is empty, add products with 'addproduct' or 'importmenu'.")
		return nil
	}
	if len(args) == 0 {
		if err := a.Menu(ctx, nil); err != nil {
			return err
		}
		v, err := GetSimpleText(a.reader, "- Product number", a.out)
		if err != nil {
			return err
		}
		args = []string{v}
	}
	i, err := index(args, len(products))
	if err != nil {
		return err
	}

	li := a.invoice.AddItem(models.LineItemFromProduct(products[i]))
	a.printf("Added %s ($%s)\n", li.Description, totals.Format(li.Price))
	return nil
}

func (a *App) EditItem(_ context.Context, args []string) error {
	i, err := index(args, len(a.invoice.Items))
	if err != nil {
		return err
	}
	li := a.invoice.Items[i]
	if err := a.promptItem(&li); err != nil {
		return err
	}
	return a.invoice.UpdateItem(li.ID, func(dst *models.LineItem) { *dst = li })
}

func (a *App) RemoveItem(_ context.Context, args []string) error {
	i, err := index(args, len(a.invoice.Items))
	if err != nil {
		return err
	}
	li := a.invoice.Items[i]
	if err := a.invoice.RemoveItem(li.ID); err != nil {
		return err
	}
	a.println("Removed", li.Description)
	return nil
}

func (a *App) SetTax(_ context.Context, args []string) error {
	v, err := a.numberArg(args, "- Tax rate (%)", a.invoice.TaxRate)
	if err != nil {
		return err
	}
	a.invoice.TaxRate = max(v, 0)
	return nil
}

func (a *App) SetDiscount(_ context.Context, args []string) error {
	v, err := a.numberArg(args, "- Discount amount", a.invoice.Discount)
	if err != nil {
		return err
	}
	a.invoice.Discount = max(v, 0)
	return nil
}

func (a *App) SetStatus(_ context.Context, args []string) error {
	v := strings.Join(args, " ")
	if v == "" {
		var err error
		if v, err = GetDefault(a.reader, "- Status (DRAFT, PAID, PENDING)", string(a.invoice.Status), a.out); err != nil {
			return err
		}
	}
	st, err := models.ParseStatus(v)
	if err != nil {
		return err
	}
	a.invoice.Status = st
	return nil
}

func (a *App) SetNotes(_ context.Context, _ []string) error {
	text, err := GetMultiline(a.reader, "- Notes (current: "+oneLine(a.invoice.Notes)+")", a.out)
	if err != nil {
		return err
	}
	a.invoice.Notes = text
	return nil
}

func (a *App) promptItem(li *models.LineItem) error {
	var err error
	if li.Description, err = GetDefault(a.reader, "- Description", li.Description, a.out); err != nil {
		return err
	}
	if li.Quantity, err = GetNumber(a.reader, "- Quantity", li.Quantity, a.out); err != nil {
		return err
	}
	if li.Price, err = GetNumber(a.reader, "- Price", li.Price, a.out); err != nil {
		return err
	}
	if li.Flavor, err = GetDefault(a.reader, "- Flavor", li.Flavor, a.out); err != nil {
		return err
	}
	if li.Weight, err = GetDefault(a.reader, "- Weight", li.Weight, a.out); err != nil {
		return err
	}
	li.Quantity = max(li.Quantity, 0)
	li.Price = max(li.Price, 0)
	return nil
}

func (a *App) numberArg(args []string, prompt string, current float64) (float64, error) {
	if len(args) > 0 {
		return totals.Coerce(args[0]), nil
	}
	return GetNumber(a.reader, prompt, current, a.out)
}

// index converts a 1-based item number argument.
func index(args []string, n int) (int, error) {
	if len(args) == 0 {
		return 0, errBadIndex
	}
	i, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("%w: %q", errBadIndex, args[0])
	}
	return i - 1, nil
}

func oneLine(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " / ")
}
