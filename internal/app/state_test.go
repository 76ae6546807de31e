package app_test

import (
	"testing"

	"gemblog/internal/app"
	"gemblog/internal/models"

	"github.com/stretchr/testify/require"
)

func TestStateTransitions(t *testing.T) {
	s := app.NewState(false)
	require.Equal(t, app.ViewHome, s.View)
	require.Equal(t, "All", s.SelectedCategory)

	s = s.ViewPost("2")
	require.Equal(t, app.State{View: app.ViewPost, CurrentPostID: "2", SelectedCategory: "All"}, s)

	s = s.Navigate(app.ViewNews)
	require.Equal(t, app.ViewNews, s.View)
	require.Empty(t, s.CurrentPostID)

	s = s.EditPost("1").Navigate(app.ViewCreate)
	require.Equal(t, app.ViewHome, s.View, "navigate only knows home and news")
	require.Empty(t, s.CurrentPostID)

	s = s.EditPost("1").AfterSave()
	require.Equal(t, app.ViewHome, s.View)
	require.Empty(t, s.CurrentPostID)

	s = s.SelectCategory("AI")
	require.Equal(t, "AI", s.SelectedCategory)
	require.Equal(t, "All", s.SelectCategory("").SelectedCategory)

	s = s.LoggedIn()
	require.True(t, s.IsAdmin)
	s = s.ShowLogin().LoggedOut()
	require.False(t, s.IsAdmin)
	require.Equal(t, app.ViewHome, s.View)
}

func TestRenderHome(t *testing.T) {
	posts := samplePosts()

	screen := app.Render(app.NewState(false).SelectCategory("Web"), posts)
	require.Equal(t, app.ScreenHome, screen.Kind)
	require.Equal(t, []string{"2"}, ids(screen.Posts))
	require.Equal(t, []string{"All", "AI", "Web"}, screen.Categories)
}

func TestRenderPost(t *testing.T) {
	posts := samplePosts()

	screen := app.Render(app.NewState(false).ViewPost("3"), posts)
	require.Equal(t, app.ScreenPost, screen.Kind)
	require.Equal(t, "Three", screen.Post.Title)
	require.Equal(t, []string{"1", "2", "4"}, ids(screen.ReadNext))

	screen = app.Render(app.NewState(false).ViewPost("missing"), posts)
	require.Equal(t, app.ScreenNotFound, screen.Kind)
	require.Nil(t, screen.Post)
}

func TestRenderEditorGate(t *testing.T) {
	posts := samplePosts()

	for _, s := range []app.State{app.NewState(false).EditPost("1"), app.NewState(false).CreatePost()} {
		require.Equal(t, app.ScreenLogin, app.Render(s, posts).Kind)
	}

	screen := app.Render(app.NewState(true).EditPost("1"), posts)
	require.Equal(t, app.ScreenEditor, screen.Kind)
	require.Equal(t, &posts[0], screen.Post)

	screen = app.Render(app.NewState(true).CreatePost(), posts)
	require.Equal(t, app.ScreenEditor, screen.Kind)
	require.Nil(t, screen.Post)

	screen = app.Render(app.NewState(true).EditPost("gone"), posts)
	require.Equal(t, app.ScreenEditor, screen.Kind)
	require.Nil(t, screen.Post, "unknown id opens an empty editor")
}

func TestRenderLoginAndNews(t *testing.T) {
	var posts []models.Post
	require.Equal(t, app.ScreenLogin, app.Render(app.NewState(false).ShowLogin(), posts).Kind)
	require.Equal(t, app.ScreenNews, app.Render(app.NewState(true).Navigate(app.ViewNews), posts).Kind)
}
