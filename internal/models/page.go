package models

// PageMeta is the pagination block of the remote API's list envelope.
// List endpoints that omit it are treated as a single page.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	From        int `json:"from"`
	To          int `json:"to"`
	Total       int `json:"total"`
}
