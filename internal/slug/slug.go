// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug derivation from titles and
// category names. The two derivations are intentionally distinct: titles
// are trimmed and stripped of edge hyphens, category keys are not.
// Categories in production are already keyed by the unstripped form, so
// unifying the two would silently re-key them.
package slug

import (
	"regexp"
	"strings"
)

// nonAlphanumericRun matches any run of characters outside [a-z0-9].
// Input is lowercased first, so uppercase letters are never seen by it.
var nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)

// FromTitle derives a post slug from a title: lowercase, trim, collapse
// every run of non-alphanumeric characters to a single hyphen, and strip
// leading/trailing hyphens.
// Example: "Câmeras & Sensores!" → "c-meras-sensores"
func FromTitle(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonAlphanumericRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CategoryKey derives the unique key for a category from its display
// name: lowercase and collapse non-alphanumeric runs to hyphens. Edge
// hyphens are kept ("Câmeras!" → "c-meras-").
func CategoryKey(name string) string {
	s := strings.ToLower(name)
	return nonAlphanumericRun.ReplaceAllString(s, "-")
}
