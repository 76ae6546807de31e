package app

import (
	"time"

	"gemblog/internal/constants"
	"gemblog/internal/models"
)

// SavePost applies an editor draft to the collection.
//
// A draft without an ID becomes a new post, prepended, with a fresh id and
// createdAt. A draft whose ID matches an entry overwrites every field of that
// entry except ID and CreatedAt. A draft whose ID matches nothing leaves the
// collection untouched and ok is false.
func SavePost(posts []models.Post, draft models.PostDraft, now time.Time, newID func() string) (out []models.Post, saved models.Post, ok bool) {
	if draft.ID == "" {
		saved = models.Post{
			ID:        newID(),
			Title:     draft.Title,
			Content:   draft.Content,
			ImageURL:  draft.ImageURL,
			ImageAlt:  draft.ImageAlt,
			CreatedAt: models.FormatTimestamp(now),
			Category:  draft.Category,
		}
		out = make([]models.Post, 0, len(posts)+1)
		out = append(out, saved)
		out = append(out, posts...)
		return out, saved, true
	}

	out = make([]models.Post, len(posts))
	copy(out, posts)
	for i, p := range out {
		if p.ID != draft.ID {
			continue
		}
		p.Title = draft.Title
		p.Content = draft.Content
		p.ImageURL = draft.ImageURL
		p.ImageAlt = draft.ImageAlt
		p.Category = draft.Category
		out[i] = p
		return out, p, true
	}
	return out, models.Post{}, false
}

// DeletePost removes the post with the given id.
func DeletePost(posts []models.Post, id string) (out []models.Post, removed bool) {
	out = make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.ID == id {
			removed = true
			continue
		}
		out = append(out, p)
	}
	return out, removed
}

// FindPost looks a post up by id.
func FindPost(posts []models.Post, id string) (models.Post, bool) {
	for _, p := range posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

// Categories lists "All" followed by every non-empty category in order of
// first appearance.
func Categories(posts []models.Post) []string {
	out := []string{constants.CategoryAll}
	seen := map[string]bool{constants.CategoryAll: true}
	for _, p := range posts {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// FilterByCategory keeps the posts whose category matches exactly. "All"
// returns the collection unchanged.
func FilterByCategory(posts []models.Post, category string) []models.Post {
	if category == constants.CategoryAll {
		return posts
	}
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// ReadNext picks up to n posts other than id, in collection order.
func ReadNext(posts []models.Post, id string, n int) []models.Post {
	out := make([]models.Post, 0, n)
	for _, p := range posts {
		if len(out) == n {
			break
		}
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// MergePosts prepends the incoming posts whose ids are not in the collection
// yet, keeping their order.
func MergePosts(posts, incoming []models.Post) (out []models.Post, added int) {
	seen := make(map[string]bool, len(posts)+len(incoming))
	for _, p := range posts {
		seen[p.ID] = true
	}

	out = make([]models.Post, 0, len(posts)+len(incoming))
	for _, p := range incoming {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
		added++
	}
	out = append(out, posts...)
	return out, added
}
