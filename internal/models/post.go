package models

import (
	"html/template"
	"time"
)

// Post is a single blog article. The JSON names are the storage format of the
// post collection and must stay stable.
type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	ImageURL  string `json:"imageUrl,omitempty"`
	ImageAlt  string `json:"imageAlt,omitempty"`
	CreatedAt string `json:"createdAt"`
	Category  string `json:"category,omitempty"`
}

// PostDraft carries the editor fields. An empty ID means a new post.
type PostDraft struct {
	ID       string `json:"id,omitempty" form:"id"`
	Title    string `json:"title" form:"title" binding:"required"`
	Content  string `json:"content" form:"content" binding:"required"`
	ImageURL string `json:"imageUrl,omitempty" form:"imageUrl"`
	ImageAlt string `json:"imageAlt,omitempty" form:"imageAlt"`
	Category string `json:"category,omitempty" form:"category"`
}

// CreatedTime parses CreatedAt, returning the zero time when it is malformed.
func (p Post) CreatedTime() time.Time {
	t, err := time.Parse(time.RFC3339Nano, p.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// RenderedPost is a view model for displaying a post with rendered HTML content.
type RenderedPost struct {
	Post
	Slug    string
	Excerpt string
	Body    template.HTML // Use template.HTML to prevent escaping
	Date    string
}

// TimestampLayout is the createdAt format: UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in the createdAt format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
