// Package web provides embedded static assets (CSS) for the site.
// In development, templates load TailwindCSS from CDN; in production,
// the compiled stylesheet is embedded here and served at /static/.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree. In Docker builds,
// this holds the compiled TailwindCSS output; in local development it
// may only contain the checked-in fallback stylesheet.
//
//go:embed all:static
var StaticFS embed.FS
