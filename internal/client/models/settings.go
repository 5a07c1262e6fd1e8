package models

// Product is a reusable catalog entry used to pre-fill line items.
type Product struct {
	ID     string  `json:"id"`
	Name   string  `json:"name" validate:"required"`
	Price  float64 `json:"price" validate:"gte=0"`
	Flavor string  `json:"flavor,omitempty"`
	Weight string  `json:"weight,omitempty"`
}

// Settings is the durable sender profile shared by every invoice.
//
// GoogleCredentialsFile points at the OAuth / service-account JSON used for
// Drive and Sheets; the Google integrations count as configured iff it is
// set. GoogleSheetsID is filled in the first time a ledger spreadsheet is
// created.
type Settings struct {
	CompanyName    string  `json:"companyName"`
	CompanyAddress string  `json:"companyAddress"`
	CompanyEmail   string  `json:"companyEmail" validate:"omitempty,email"`
	Logo           string  `json:"logo,omitempty"`
	ThemeColor     string  `json:"themeColor" validate:"omitempty,hexcolor"`
	DefaultTaxRate float64 `json:"defaultTaxRate" validate:"gte=0"`

	Products []Product `json:"products" validate:"dive"`

	GoogleCredentialsFile string `json:"googleCredentialsFile,omitempty"`
	GoogleSheetsID        string `json:"googleSheetsId,omitempty"`
	AutoExportToSheet     bool   `json:"autoExportToSheet"`
}

// DefaultSettings is the built-in profile used on first start and as the
// base every stored profile is merged onto.
func DefaultSettings() Settings {
	return Settings{
		CompanyName:    "Cake Dudes",
		CompanyAddress: "123 Sugar Lane\nSweet City, CA 90210",
		CompanyEmail:   "contact@cakedudes.com",
		ThemeColor:     "#ec4899",
		Products:       []Product{},
	}
}

// GoogleConfigured reports whether Drive / Sheets can be used.
func (s Settings) GoogleConfigured() bool {
	return s.GoogleCredentialsFile != ""
}

// FindProduct returns the catalog entry with the given id.
func (s Settings) FindProduct(id string) (Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
