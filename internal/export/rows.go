package export

import (
	"strconv"

	"github.com/Avina-dox/DasavenaTI/internal/models"
)

// Row is one flattened asset. Every field is already a display string;
// missing values are empty strings, never a "null"/"undefined" literal.
type Row struct {
	Tag          string
	Type         string
	Brand        string
	Model        string
	Serial       string
	Status       string
	Condition    string
	AssignedTo   string
	PurchaseDate string
	Cost         string
	CurrentValue string
	Carrier      string
	Phone        string
}

// FromAsset flattens an asset into a Row.
func FromAsset(a models.Asset) Row {
	row := Row{
		Tag:        a.AssetTag,
		Type:       a.TypeName(),
		Brand:      a.BrandName(),
		Model:      deref(a.Model),
		Serial:     deref(a.SerialNumber),
		Status:     a.Status,
		Condition:  deref(a.Condition),
		AssignedTo: a.AssigneeName(),
		Carrier:    deref(a.Carrier),
		Phone:      deref(a.PhoneNumber),
	}
	if a.PurchaseDate != nil && len(*a.PurchaseDate) >= 10 {
		row.PurchaseDate = (*a.PurchaseDate)[:10]
	} else {
		row.PurchaseDate = deref(a.PurchaseDate)
	}
	if a.PurchaseCost != nil {
		row.Cost = money(*a.PurchaseCost)
	}
	if a.Depreciation != nil {
		row.CurrentValue = money(a.Depreciation.Current)
	}
	return row
}

// Rows flattens a whole asset slice, preserving order.
func Rows(assets []models.Asset) []Row {
	rows := make([]Row, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, FromAsset(a))
	}
	return rows
}

// Field resolves a plan column key against the row. The PDF merges brand
// and model into one "Marca/Modelo" column.
func (r Row) Field(key string) string {
	switch key {
	case "tag":
		return r.Tag
	case "type":
		return r.Type
	case "brand":
		return r.Brand
	case "model":
		return r.Model
	case "brand_model":
		if r.Brand != "" && r.Model != "" {
			return r.Brand + " / " + r.Model
		}
		return r.Brand + r.Model
	case "serial":
		return r.Serial
	case "status":
		return r.Status
	case "condition":
		return r.Condition
	case "assigned_to":
		return r.AssignedTo
	case "purchase_date":
		return r.PurchaseDate
	case "cost":
		return r.Cost
	case "current_value":
		return r.CurrentValue
	case "carrier":
		return r.Carrier
	case "phone":
		return r.Phone
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
