// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// Post represents a published article. Slug is the public URL key and is
// globally unique. CategoryName is a denormalized copy of the category's
// display name, kept for backward compatibility with older rows that
// predate the categories table; CategoryID is the real link.
type Post struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Excerpt      string    `json:"excerpt"`
	Content      string    `json:"content"`
	ImageURL     *string   `json:"image_url,omitempty"`
	CategoryName *string   `json:"category_name,omitempty"`
	CategoryID   *int64    `json:"category_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasImage reports whether the post carries an image reference.
func (p *Post) HasImage() bool {
	return p.ImageURL != nil && *p.ImageURL != ""
}

// ImagePath returns the image URL normalized to start with a slash, the
// form the templates expect for locally served images.
func (p *Post) ImagePath() string {
	if p.ImageURL == nil || *p.ImageURL == "" {
		return ""
	}
	u := *p.ImageURL
	if strings.HasPrefix(u, "/") || strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "/" + u
}
