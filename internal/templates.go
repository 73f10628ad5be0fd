package internal

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

//go:embed web/templates web/static
var webFS embed.FS

// staticFS returns the embedded static assets rooted at their directory.
func staticFS() fs.FS {
	sub, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Templates holds parsed HTML templates, one entry per page, each combined
// with the shared layout.
type Templates struct {
	templates map[string]*template.Template
}

var statusLabels = map[string]string{
	"in_stock": "En stock",
	"assigned": "Asignado",
	"repair":   "En reparación",
	"retired":  "Retirado",
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"statusLabel": func(status string) string {
			if label, ok := statusLabels[status]; ok {
				return label
			}
			return status
		},
		"shortDate": func(s string) string {
			if len(s) >= 10 {
				return s[:10]
			}
			if s == "" {
				return "—"
			}
			return s
		},
		"money": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"str": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"moneyPtr": func(v *float64) string {
			if v == nil {
				return ""
			}
			return fmt.Sprintf("%.2f", *v)
		},
	}
}

var pageTemplates = []string{
	"login.html",
	"dashboard.html",
	"assets.html",
	"asset_new.html",
	"asset_edit.html",
	"assign.html",
	"assignments.html",
	"users.html",
	"user_detail.html",
	"public_asset.html",
}

// loadTemplates parses every page template against the shared layout.
func loadTemplates() (*Templates, error) {
	layoutBytes, err := webFS.ReadFile("web/templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	ts := &Templates{templates: make(map[string]*template.Template)}
	for _, page := range pageTemplates {
		pageBytes, err := webFS.ReadFile("web/templates/" + page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(funcMap())
		if tmpl, err = tmpl.Parse(string(layoutBytes)); err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		if tmpl, err = tmpl.Parse(string(pageBytes)); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		ts.templates[page] = tmpl
	}
	return ts, nil
}

// Render renders a page template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to every template.
type PageData struct {
	Title   string
	User    *UserInfo
	Error   string
	Success string
}

// UserInfo is the logged-in user shown in the chrome.
type UserInfo struct {
	Name  string
	Email string
}
