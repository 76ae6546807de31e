// Package app holds the blog's state machine: which screen a visitor sees,
// which post is selected, the category filter and the admin flag. Transitions
// are pure; the Controller owns the shared post collection.
package app

import "gemblog/internal/constants"

// View is the screen a visitor is on.
type View string

const (
	ViewHome   View = "home"
	ViewPost   View = "view"
	ViewEdit   View = "edit"
	ViewCreate View = "create"
	ViewLogin  View = "login"
	ViewNews   View = "news"
)

// State is one visitor's UI state.
type State struct {
	View             View
	CurrentPostID    string
	IsAdmin          bool
	SelectedCategory string
}

// NewState is the state a visitor starts in.
func NewState(isAdmin bool) State {
	return State{
		View:             ViewHome,
		IsAdmin:          isAdmin,
		SelectedCategory: constants.CategoryAll,
	}
}

func (s State) ViewPost(id string) State {
	s.View = ViewPost
	s.CurrentPostID = id
	return s
}

func (s State) EditPost(id string) State {
	s.View = ViewEdit
	s.CurrentPostID = id
	return s
}

func (s State) CreatePost() State {
	s.View = ViewCreate
	s.CurrentPostID = ""
	return s
}

func (s State) ShowLogin() State {
	s.View = ViewLogin
	return s
}

// Navigate switches between the top-level screens. Anything other than news
// lands on home.
func (s State) Navigate(target View) State {
	if target != ViewNews {
		target = ViewHome
	}
	s.View = target
	s.CurrentPostID = ""
	return s
}

func (s State) SelectCategory(category string) State {
	if category == "" {
		category = constants.CategoryAll
	}
	s.SelectedCategory = category
	return s
}

// AfterSave is where the editor leaves the visitor once a post is saved.
func (s State) AfterSave() State {
	s.View = ViewHome
	s.CurrentPostID = ""
	return s
}

// Cancel leaves the editor or the detail page without touching the selection.
func (s State) Cancel() State {
	s.View = ViewHome
	return s
}

// LoggedIn marks the visitor as admin and sends them home.
func (s State) LoggedIn() State {
	s.IsAdmin = true
	s.View = ViewHome
	return s
}

// LoggedOut clears the admin flag and sends the visitor home.
func (s State) LoggedOut() State {
	s.IsAdmin = false
	s.View = ViewHome
	return s
}
