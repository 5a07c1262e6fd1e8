package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"google.golang.org/genai"
)

var orderSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"customerName":    {Type: genai.TypeString, Description: "Customer's full name if mentioned"},
		"customerPhone":   {Type: genai.TypeString, Description: "Customer's phone number if mentioned"},
		"customerAddress": {Type: genai.TypeString, Description: "Delivery address if mentioned"},
		"date":            {Type: genai.TypeString, Description: "Order date in YYYY-MM-DD format"},
		"items": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"description": {Type: genai.TypeString, Description: "Description or matching product name"},
					"flavor":      {Type: genai.TypeString, Description: "Flavor of the cake"},
					"weight":      {Type: genai.TypeString, Description: "Weight of the cake (e.g. 1kg, 2lbs)"},
					"quantity":    {Type: genai.TypeNumber, Description: "Quantity of items"},
					"price":       {Type: genai.TypeNumber, Description: "Price of the item. Use menu price if matched, otherwise estimate."},
				},
				Required: []string{"description", "quantity", "price"},
			},
		},
	},
	Required: []string{"items"},
}

type orderItem struct {
	Description string  `json:"description"`
	Flavor      string  `json:"flavor"`
	Weight      string  `json:"weight"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

type orderResult struct {
	CustomerName    string      `json:"customerName"`
	CustomerPhone   string      `json:"customerPhone"`
	CustomerAddress string      `json:"customerAddress"`
	Date            string      `json:"date"`
	Items           []orderItem `json:"items"`
}

// ParseOrder extracts customer details and line items from a pasted
// order message. Fields the model leaves empty stay empty in the patch.
func (a *Assistant) ParseOrder(ctx context.Context, text string, menu []models.Product) (models.InvoicePatch, error) {
	prompt := fmt.Sprintf(`Extract cake order details from this text: %q.
%s
If prices are not mentioned and no menu match found, estimate reasonable prices.
Format the date as YYYY-MM-DD.`, text, menuContext(menu))

	system := fmt.Sprintf("You are an assistant for a bakery called '%s'. You help parse unstructured order "+
		"messages into structured invoice data. Always prefer menu items if they loosely match.", a.company)

	raw, err := a.generate(ctx, genai.Text(prompt), system, orderSchema)
	if err != nil {
		return models.InvoicePatch{}, err
	}

	var res orderResult
	if err := decode(raw, &res); err != nil {
		return models.InvoicePatch{}, err
	}

	patch := models.InvoicePatch{
		CustomerName:    strings.TrimSpace(res.CustomerName),
		CustomerPhone:   strings.TrimSpace(res.CustomerPhone),
		CustomerAddress: strings.TrimSpace(res.CustomerAddress),
		Date:            validDate(res.Date),
	}
	for _, it := range res.Items {
		li := models.LineItem{
			ID:          newID(),
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			Price:       it.Price,
			Flavor:      it.Flavor,
			Weight:      it.Weight,
		}
		if li.Description == "" {
			li.Description = "Custom Cake"
		}
		if li.Quantity <= 0 {
			li.Quantity = 1
		}
		if li.Price < 0 {
			li.Price = 0
		}
		patch.Items = append(patch.Items, li)
	}
	return patch, nil
}

func menuContext(menu []models.Product) string {
	if len(menu) == 0 {
		return "No specific menu provided, estimate reasonable bakery prices."
	}
	var b strings.Builder
	b.WriteString("Here is the bakery's menu with prices. Try to match items from the text to these exact names and prices where possible:\n")
	for _, p := range menu {
		fmt.Fprintf(&b, "- %s: $%g (%s, %s)\n", p.Name, p.Price, orStandard(p.Flavor), orStandard(p.Weight))
	}
	return b.String()
}

func orStandard(s string) string {
	if s == "" {
		return "Standard"
	}
	return s
}

// validDate keeps s only if it is a YYYY-MM-DD date.
func validDate(s string) string {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(models.DateLayout, s); err != nil {
		return ""
	}
	return s
}
