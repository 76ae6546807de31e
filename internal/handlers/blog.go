package handlers

import (
	"log/slog"
	"net/http"

	"gemblog/internal/app"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	ctrl *app.Controller
	log  *slog.Logger
}

func NewBlogHandler(ctrl *app.Controller, log *slog.Logger) *BlogHandler {
	return &BlogHandler{ctrl: ctrl, log: log}
}

// Index lists posts, optionally filtered by ?category=.
func (h *BlogHandler) Index(c *gin.Context) {
	state := currentState(c).Navigate(app.ViewHome).SelectCategory(c.Query("category"))
	renderScreen(c, h.log, app.Render(state, h.ctrl.Posts()), nil)
}

// ShowPost renders one post. The slug segment is decorative and ignored.
func (h *BlogHandler) ShowPost(c *gin.Context) {
	state := currentState(c).ViewPost(c.Param("id"))
	renderScreen(c, h.log, app.Render(state, h.ctrl.Posts()), nil)
}

func (h *BlogHandler) NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", gin.H{})
}
