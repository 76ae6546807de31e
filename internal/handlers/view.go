package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"gemblog/internal/app"
	"gemblog/internal/constants"
	"gemblog/internal/models"
	"gemblog/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

const (
	dateLayout         = "January 2, 2006"
	editTitle          = "Edit Post"
	createTitle        = "Create New Post"
	invalidPasswordMsg = "Invalid password. Please try again."
	emptyTopicMsg      = "Please enter a topic to search for news."
	emptyPromptMsg     = "Please enter a prompt first."
)

var templateFuncs = template.FuncMap{
	"imageURL": imageURL,
}

// imageURL lets generated data URIs and web links through to src attributes,
// which html/template would otherwise reject.
func imageURL(raw string) template.URL {
	for _, prefix := range []string{"data:image/", "https://", "http://"} {
		if strings.HasPrefix(raw, prefix) {
			return template.URL(raw)
		}
	}
	return ""
}

// currentState is the state a request starts from.
func currentState(c *gin.Context) app.State {
	return app.NewState(isAdmin(c))
}

// renderScreen turns a render decision into a page.
func renderScreen(c *gin.Context, log *slog.Logger, screen app.Screen, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	switch screen.Kind {
	case app.ScreenHome:
		data["posts"] = renderPosts(log, screen.Posts, false)
		data["categories"] = screen.Categories
		data["selectedCategory"] = screen.State.SelectedCategory
		render(c, http.StatusOK, "index.html", data)
	case app.ScreenPost:
		data["post"] = renderPost(log, *screen.Post, true)
		data["readNext"] = renderPosts(log, screen.ReadNext, false)
		render(c, http.StatusOK, "post.html", data)
	case app.ScreenNotFound:
		render(c, http.StatusNotFound, "404.html", data)
	case app.ScreenEditor:
		data["heading"] = createTitle
		if screen.Post != nil {
			data["heading"] = editTitle
			data["post"] = screen.Post
		}
		render(c, http.StatusOK, "editor.html", data)
	case app.ScreenLogin:
		render(c, http.StatusOK, "login.html", data)
	case app.ScreenNews:
		render(c, http.StatusOK, "news.html", data)
	}
}

func renderPosts(log *slog.Logger, posts []models.Post, withBody bool) []models.RenderedPost {
	out := make([]models.RenderedPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, renderPost(log, p, withBody))
	}
	return out
}

func renderPost(log *slog.Logger, p models.Post, withBody bool) models.RenderedPost {
	rp := models.RenderedPost{
		Post:    p,
		Slug:    slug.Make(p.Title),
		Excerpt: utils.GenerateExcerpt(p.Content, constants.ExcerptLength),
	}
	if t := p.CreatedTime(); !t.IsZero() {
		rp.Date = t.Format(dateLayout)
	}
	if withBody {
		body, err := utils.RenderContent(p.Content)
		if err != nil {
			log.Error("error rendering post body", slog.String("id", p.ID), slog.Any("err", err))
		}
		rp.Body = body
	}
	return rp
}
