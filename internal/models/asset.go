package models

// Asset lifecycle statuses used by the remote API.
const (
	StatusInStock  = "in_stock"
	StatusAssigned = "assigned"
	StatusRepair   = "repair"
	StatusRetired  = "retired"
)

// Asset physical conditions.
const (
	ConditionNew  = "new"
	ConditionGood = "good"
	ConditionFair = "fair"
	ConditionPoor = "poor"
)

// Statuses lists the selectable statuses in display order.
var Statuses = []string{StatusInStock, StatusAssigned, StatusRepair, StatusRetired}

// Conditions lists the selectable conditions in display order.
var Conditions = []string{ConditionNew, ConditionGood, ConditionFair, ConditionPoor}

// Asset represents an asset record as served by the remote API.
// Dates arrive as strings (date or datetime); the UI only ever shows the
// first ten characters, so they are kept as-is instead of parsed.
type Asset struct {
	ID           int64      `json:"id"`
	AssetTag     string     `json:"asset_tag"`
	TypeID       int64      `json:"type_id"`
	Type         *AssetType `json:"type,omitempty"`
	Brand        *string    `json:"brand,omitempty"`
	BrandRef     *Brand     `json:"brand_ref,omitempty"`
	Model        *string    `json:"model,omitempty"`
	SerialNumber *string    `json:"serial_number,omitempty"`
	Status       string     `json:"status"`
	Condition    *string    `json:"condition,omitempty"`
	PurchaseDate *string    `json:"purchase_date,omitempty"`
	PurchaseCost *float64   `json:"purchase_cost,omitempty"`
	InvoicePath  *string    `json:"invoice_path,omitempty"`
	PhoneNumber  *string    `json:"phone_number,omitempty"`
	Carrier      *string    `json:"carrier,omitempty"`
	Unlocked     *bool      `json:"unlocked,omitempty"`
	Notes        *string    `json:"notes,omitempty"`

	// Computed server-side; authoritative on every read path.
	Depreciation *Depreciation `json:"depreciation,omitempty"`

	// Open assignment, if any. The server guarantees at most one.
	CurrentAssignment *Assignment `json:"current_assignment,omitempty"`
}

// BrandName resolves the display brand: the referenced brand record wins
// over the free-text field. Value receiver so templates can call it on
// ranged elements.
func (a Asset) BrandName() string {
	if a.BrandRef != nil && a.BrandRef.Name != "" {
		return a.BrandRef.Name
	}
	if a.Brand != nil {
		return *a.Brand
	}
	return ""
}

// TypeName returns the asset type display name, or empty when not embedded.
func (a Asset) TypeName() string {
	if a.Type != nil {
		return a.Type.Name
	}
	return ""
}

// AssigneeName returns the name of the current assignee, or empty.
func (a Asset) AssigneeName() string {
	if a.CurrentAssignment != nil && a.CurrentAssignment.User != nil {
		return a.CurrentAssignment.User.Name
	}
	return ""
}

// Depreciation is the server-computed depreciation snapshot.
type Depreciation struct {
	Current float64 `json:"current"`
	Years   float64 `json:"years"`
	Months  int     `json:"months"`
}

// CreateAssetRequest is the JSON body for POST /assets.
type CreateAssetRequest struct {
	AssetTag     string   `json:"asset_tag,omitempty"`
	TypeID       int64    `json:"type_id"`
	Brand        *string  `json:"brand,omitempty"`
	Model        *string  `json:"model,omitempty"`
	SerialNumber *string  `json:"serial_number,omitempty"`
	Status       *string  `json:"status,omitempty"`
	Condition    *string  `json:"condition,omitempty"`
	PurchaseDate *string  `json:"purchase_date,omitempty"`
	PurchaseCost *float64 `json:"purchase_cost,omitempty"`
	PhoneNumber  *string  `json:"phone_number,omitempty"`
	Carrier      *string  `json:"carrier,omitempty"`
	Unlocked     *bool    `json:"unlocked,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// UpdateAssetRequest carries the editable asset fields. The update path is
// multipart (the API uses POST with a _method=PUT override so it can accept
// an invoice attachment), so every field is serialized as a form value and
// nil means "leave unchanged".
type UpdateAssetRequest struct {
	AssetTag     *string  `json:"asset_tag,omitempty"`
	TypeID       *int64   `json:"type_id,omitempty"`
	Brand        *string  `json:"brand,omitempty"`
	Model        *string  `json:"model,omitempty"`
	SerialNumber *string  `json:"serial_number,omitempty"`
	Status       *string  `json:"status,omitempty"`
	Condition    *string  `json:"condition,omitempty"`
	PurchaseDate *string  `json:"purchase_date,omitempty"`
	PurchaseCost *float64 `json:"purchase_cost,omitempty"`
	PhoneNumber  *string  `json:"phone_number,omitempty"`
	Carrier      *string  `json:"carrier,omitempty"`
	Unlocked     *bool    `json:"unlocked,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}
