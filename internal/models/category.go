// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Category groups posts. Slug is a deterministic normalization of Name
// and is unique; resolving the same slug with a new display name renames
// the category in place. Categories are created lazily from the post
// form and never deleted by the admin surface.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Virtual fields populated by store methods.
	Posts     []Post `json:"posts,omitempty"`
	PostCount int    `json:"post_count"`
}
