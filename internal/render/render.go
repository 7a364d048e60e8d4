// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site
// and the admin interface. Public pages can be rendered to a byte
// slice so the handlers can store the finished page in the page cache.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"vigiablog/internal/middleware"
)

//go:embed templates/admin/*.html templates/public/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active nav section (e.g., "dashboard", "posts")
	LoggedIn  bool           // Whether an admin session is present
	CSRFToken string         // CSRF token for admin forms
	Error     string         // Form error message, empty when none
	Data      map[string]any // Page-specific data
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists admin templates that render as full HTML
// pages without the admin layout (they have their own <html>, <head>).
var standaloneTemplates = map[string]bool{
	"login": true,
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Admin pages are paired with the admin base layout,
// public pages with the public one. When devMode is true, templates
// load CDN-hosted assets instead of compiled local static files.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "bg-gray-900 text-white"
				}
				return "text-gray-300 hover:bg-gray-700 hover:text-white"
			},
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			// isDev returns true when the app runs in development mode.
			// Used by templates to conditionally load CDN vs local assets.
			"isDev": func() bool {
				return devMode
			},
			// fmtDate formats timestamps the way the public site shows them.
			"fmtDate": func(t time.Time) string {
				return t.Format("02/01/2006")
			},
			// excerptOr falls back to a content prefix when a post has no excerpt.
			"excerptOr": func(excerpt, content string) string {
				if excerpt != "" {
					return excerpt
				}
				if len(content) > 160 {
					return content[:160] + "…"
				}
				return content
			},
		},
	}

	if err := r.parseSet("admin", "templates/admin", "base.html"); err != nil {
		return nil, err
	}
	if err := r.parseSet("public", "templates/public", "base.html"); err != nil {
		return nil, err
	}

	return r, nil
}

// parseSet parses every page template of a directory, pairing it with
// the set's base layout unless the page is standalone. Template names
// are prefixed with the set ("admin/login", "public/home").
func (rn *Renderer) parseSet(set, dir, base string) error {
	entries, err := templateFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read embedded templates %s: %w", dir, err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == base {
			continue
		}

		tmplName := strings.TrimSuffix(name, ".html")

		var tmpl *template.Template
		var parseErr error

		if set == "admin" && standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(rn.funcMap).ParseFS(
				templateFS, dir+"/"+name,
			)
		} else {
			tmpl, parseErr = template.New(base).Funcs(rn.funcMap).ParseFS(
				templateFS, dir+"/"+base, dir+"/"+name,
			)
		}

		if parseErr != nil {
			return fmt.Errorf("parse template %s/%s: %w", set, name, parseErr)
		}

		rn.templates[set+"/"+tmplName] = tmpl
	}

	return nil
}

// Page renders an admin page to the response. The CSRF token and the
// session flag are filled in from the request.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates["admin/"+name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.GetCSRFToken(r)
	if _, ok := middleware.AdminID(r.Context()); ok {
		data.LoggedIn = true
	}

	execName := "base.html"
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// Public renders a public page to a byte slice, so the caller can both
// send and cache the finished HTML.
func (rn *Renderer) Public(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates["public/"+name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
