package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"google.golang.org/genai"
)

var errEmptySource = errors.New("assistant: empty menu source")

var menuSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":   {Type: genai.TypeString, Description: "Name of the product"},
			"price":  {Type: genai.TypeNumber, Description: "Price of the product"},
			"flavor": {Type: genai.TypeString, Description: "Flavor if specified (e.g. Chocolate, Vanilla)"},
			"weight": {Type: genai.TypeString, Description: "Weight or size if specified (e.g. 1kg, Slice)"},
		},
		Required: []string{"name", "price"},
	},
}

// MenuSource is either pasted text or an image of a menu.
type MenuSource struct {
	Text     string
	Data     []byte
	MIMEType string
}

func (m MenuSource) isImage() bool { return len(m.Data) > 0 }

type menuItem struct {
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Flavor string  `json:"flavor"`
	Weight string  `json:"weight"`
}

// ParseMenu extracts catalog products. Entries without a name are dropped.
func (a *Assistant) ParseMenu(ctx context.Context, src MenuSource) ([]models.Product, error) {
	var part *genai.Part
	kind := "text"
	switch {
	case src.isImage():
		part = genai.NewPartFromBytes(src.Data, src.MIMEType)
		kind = "image"
	case strings.TrimSpace(src.Text) != "":
		part = genai.NewPartFromText(src.Text)
	default:
		return nil, errEmptySource
	}

	prompt := "Extract menu items from this " + kind + ".\n" +
		"Return a list of products with names, prices, and optional attributes like flavor or weight.\n" +
		"If a currency symbol is present, ignore it and just get the number.\n" +
		"Ignore header text or irrelevant information, just focus on the items for sale."

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{part, genai.NewPartFromText(prompt)}, genai.RoleUser),
	}
	raw, err := a.generate(ctx, contents, "You are a menu extraction assistant. Extract structured product data from menus.", menuSchema)
	if err != nil {
		return nil, err
	}

	var items []menuItem
	if err := decode(raw, &items); err != nil {
		return nil, err
	}

	out := make([]models.Product, 0, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}
		out = append(out, models.Product{
			ID:     newID(),
			Name:   name,
			Price:  max(it.Price, 0),
			Flavor: it.Flavor,
			Weight: it.Weight,
		})
	}
	return out, nil
}
