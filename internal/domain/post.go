package domain

import "time"

// Post is a blog entry. Slug is the unique public identifier; CoverLocation
// holds an s3:// URI when a cover image has been uploaded.
type Post struct {
	ID            int64
	Slug          string
	Title         string
	Excerpt       string
	Body          string
	Author        string
	CoverLocation string
	Published     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
