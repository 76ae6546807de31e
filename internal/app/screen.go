package app

import (
	"gemblog/internal/constants"
	"gemblog/internal/models"
)

// ScreenKind is what gets rendered for a State.
type ScreenKind int

const (
	ScreenHome ScreenKind = iota
	ScreenPost
	ScreenNotFound
	ScreenEditor
	ScreenLogin
	ScreenNews
)

// Screen is the render decision for a State over a post collection.
type Screen struct {
	Kind  ScreenKind
	State State

	// home
	Posts      []models.Post
	Categories []string

	// post and editor; nil on the editor means create mode
	Post     *models.Post
	ReadNext []models.Post
}

// Render decides what a visitor in state s sees. Editing and creating are
// gated on the admin flag: a non-admin gets the login form instead and the
// original intent is dropped.
func Render(s State, posts []models.Post) Screen {
	switch s.View {
	case ViewPost:
		p, ok := FindPost(posts, s.CurrentPostID)
		if !ok {
			return Screen{Kind: ScreenNotFound, State: s}
		}
		return Screen{
			Kind:     ScreenPost,
			State:    s,
			Post:     &p,
			ReadNext: ReadNext(posts, p.ID, constants.ReadNextCount),
		}
	case ViewEdit, ViewCreate:
		if !s.IsAdmin {
			return Screen{Kind: ScreenLogin, State: s}
		}
		screen := Screen{Kind: ScreenEditor, State: s}
		if s.View == ViewEdit {
			// an unknown id falls through to an empty editor
			if p, ok := FindPost(posts, s.CurrentPostID); ok {
				screen.Post = &p
			}
		}
		return screen
	case ViewLogin:
		return Screen{Kind: ScreenLogin, State: s}
	case ViewNews:
		return Screen{Kind: ScreenNews, State: s}
	default:
		return Screen{
			Kind:       ScreenHome,
			State:      s,
			Posts:      FilterByCategory(posts, s.SelectedCategory),
			Categories: Categories(posts),
		}
	}
}
