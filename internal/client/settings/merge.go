package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/totals"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// fields checks single stored values against the tags Save enforces, so a
// merged profile can always be saved again.
var fields = validator.New()

// lenientString keeps the default when the stored value is not a string.
type lenientString struct {
	v  string
	ok bool
}

func (s *lenientString) UnmarshalJSON(b []byte) error {
	s.ok = json.Unmarshal(b, &s.v) == nil
	return nil
}

// lenientFloat accepts a number or a numeric string; anything else is 0.
type lenientFloat float64

func (f *lenientFloat) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = lenientFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = lenientFloat(totals.CoerceOr(s, 0))
		return nil
	}
	*f = 0
	return nil
}

type lenientBool struct {
	v  bool
	ok bool
}

func (v *lenientBool) UnmarshalJSON(b []byte) error {
	v.ok = json.Unmarshal(b, &v.v) == nil
	return nil
}

type productDTO struct {
	ID     lenientString `json:"id"`
	Name   lenientString `json:"name"`
	Price  lenientFloat  `json:"price"`
	Flavor lenientString `json:"flavor"`
	Weight lenientString `json:"weight"`
}

type settingsDTO struct {
	CompanyName           *lenientString  `json:"companyName"`
	CompanyAddress        *lenientString  `json:"companyAddress"`
	CompanyEmail          *lenientString  `json:"companyEmail"`
	Logo                  *lenientString  `json:"logo"`
	ThemeColor            *lenientString  `json:"themeColor"`
	DefaultTaxRate        *lenientFloat   `json:"defaultTaxRate"`
	Products              json.RawMessage `json:"products"`
	GoogleCredentialsFile *lenientString  `json:"googleCredentialsFile"`
	GoogleSheetsID        *lenientString  `json:"googleSheetsId"`
	AutoExportToSheet     *lenientBool    `json:"autoExportToSheet"`
}

// MergeWithDefaults overlays the stored record onto DefaultSettings. Absent,
// null or mistyped fields keep their default. A record that is not a JSON
// object yields the defaults together with an error describing why.
func MergeWithDefaults(raw []byte) (models.Settings, error) {
	s := models.DefaultSettings()
	if len(bytes.TrimSpace(raw)) == 0 {
		return s, nil
	}

	var dto settingsDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return models.DefaultSettings(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	str(&s.CompanyName, dto.CompanyName)
	str(&s.CompanyAddress, dto.CompanyAddress)
	checked(&s.CompanyEmail, dto.CompanyEmail, "omitempty,email")
	str(&s.Logo, dto.Logo)
	checked(&s.ThemeColor, dto.ThemeColor, "omitempty,hexcolor")
	str(&s.GoogleCredentialsFile, dto.GoogleCredentialsFile)
	str(&s.GoogleSheetsID, dto.GoogleSheetsID)
	if dto.DefaultTaxRate != nil {
		s.DefaultTaxRate = max(float64(*dto.DefaultTaxRate), 0)
	}
	if dto.AutoExportToSheet != nil && dto.AutoExportToSheet.ok {
		s.AutoExportToSheet = dto.AutoExportToSheet.v
	}

	// elements are decoded one by one so a single bad entry drops only itself
	var elems []json.RawMessage
	if len(dto.Products) > 0 && json.Unmarshal(dto.Products, &elems) == nil {
		for _, raw := range elems {
			var p productDTO
			if json.Unmarshal(raw, &p) != nil {
				continue
			}
			name := strings.TrimSpace(p.Name.v)
			if name == "" {
				continue
			}
			id := p.ID.v
			if id == "" {
				id = uuid.NewString()
			}
			s.Products = append(s.Products, models.Product{
				ID:     id,
				Name:   name,
				Price:  max(float64(p.Price), 0),
				Flavor: p.Flavor.v,
				Weight: p.Weight.v,
			})
		}
	}

	return s, nil
}

// checked is str for values with a validation tag; a failing value keeps
// the default.
func checked(dst *string, v *lenientString, tag string) {
	if v != nil && v.ok && fields.Var(v.v, tag) == nil {
		*dst = v.v
	}
}

func str(dst *string, v *lenientString) {
	if v != nil && v.ok {
		*dst = v.v
	}
}
