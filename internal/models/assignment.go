package models

// Assignment links one asset to one user for a period of time. ReturnedAt
// is nil while the assignment is open; the server enforces that an asset has
// at most one open assignment and the client trusts it.
type Assignment struct {
	ID           int64   `json:"id"`
	AssetID      int64   `json:"asset_id"`
	UserID       int64   `json:"user_id"`
	User         *User   `json:"user,omitempty"`
	Asset        *Asset  `json:"asset,omitempty"`
	AssignedAt   string  `json:"assigned_at"`
	ReturnedAt   *string `json:"returned_at,omitempty"`
	ConditionOut *string `json:"condition_out,omitempty"`
	ConditionIn  *string `json:"condition_in,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// Open reports whether the assignment is still active. Value receiver so
// templates can call it on ranged elements.
func (a Assignment) Open() bool {
	return a.ReturnedAt == nil || *a.ReturnedAt == ""
}

// CreateAssignmentRequest is the JSON body for POST /assignments.
type CreateAssignmentRequest struct {
	UserID       int64  `json:"user_id"`
	AssetID      int64  `json:"asset_id"`
	ConditionOut string `json:"condition_out,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// ReturnAssignmentRequest is the JSON body for POST /assignments/{id}/return.
type ReturnAssignmentRequest struct {
	ConditionIn string `json:"condition_in,omitempty"`
	Notes       string `json:"notes,omitempty"`
}
