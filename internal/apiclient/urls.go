package apiclient

import (
	"regexp"
	"strings"
)

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// StoragePublicURL converts a relative storage path (e.g.
// "invoices/archivo.pdf" or "/storage/invoices/archivo.pdf") into a public
// URL under the API host, stripping the "/api" suffix from the base URL.
// Already-absolute URLs are returned unchanged, which makes the helper
// idempotent.
func (c *Client) StoragePublicURL(path string) string {
	if path == "" {
		return ""
	}
	if absoluteURL.MatchString(path) {
		return path
	}

	siteBase := strings.TrimRight(c.baseURL, "/")
	siteBase = strings.TrimSuffix(siteBase, "/api")

	clean := strings.TrimPrefix(path, "/")
	clean = strings.TrimPrefix(clean, "storage/")
	return siteBase + "/storage/" + clean
}
