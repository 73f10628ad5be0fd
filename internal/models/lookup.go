package models

// AssetType is a reference lookup entry (laptop, phone, monitor, ...).
type AssetType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Brand is a reference lookup entry.
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
