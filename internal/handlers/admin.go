package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"gemblog/internal/app"
	"gemblog/internal/models"
	"gemblog/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	ctrl      *app.Controller
	aiService *services.AIService
	log       *slog.Logger
}

func NewAdminHandler(ctrl *app.Controller, aiService *services.AIService, log *slog.Logger) *AdminHandler {
	return &AdminHandler{
		ctrl:      ctrl,
		aiService: aiService,
		log:       log,
	}
}

// NewPost opens an empty editor, or the login form for non-admins.
func (h *AdminHandler) NewPost(c *gin.Context) {
	state := currentState(c).CreatePost()
	renderScreen(c, h.log, app.Render(state, h.ctrl.Posts()), nil)
}

// Editor opens the editor on an existing post. An unknown id gives an empty
// editor.
func (h *AdminHandler) Editor(c *gin.Context) {
	state := currentState(c).EditPost(c.Param("id"))
	renderScreen(c, h.log, app.Render(state, h.ctrl.Posts()), nil)
}

func (h *AdminHandler) SavePost(c *gin.Context) {
	var draft models.PostDraft
	if err := c.ShouldBind(&draft); err != nil {
		heading := createTitle
		if draft.ID != "" {
			heading = editTitle
		}
		render(c, http.StatusBadRequest, "editor.html", gin.H{
			"heading": heading,
			"post":    draft,
			"error":   "Title and content are required.",
		})
		return
	}

	h.ctrl.Save(draft)
	c.Redirect(http.StatusFound, "/")
}

// ConfirmDelete asks before a post is removed for good.
func (h *AdminHandler) ConfirmDelete(c *gin.Context) {
	post, ok := h.ctrl.Post(c.Param("id"))
	if !ok {
		render(c, http.StatusNotFound, "404.html", gin.H{})
		return
	}
	render(c, http.StatusOK, "confirm.html", gin.H{"post": post})
}

func (h *AdminHandler) DeletePost(c *gin.Context) {
	h.ctrl.Delete(c.Param("id"), c.PostForm("confirm") == "yes")
	c.Redirect(http.StatusFound, "/")
}

type promptRequest struct {
	Prompt string `json:"prompt" form:"prompt"`
}

func bindPrompt(c *gin.Context) (string, bool) {
	var req promptRequest
	if err := c.ShouldBind(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": emptyPromptMsg})
		return "", false
	}
	return req.Prompt, true
}

// GenerateContent drafts a post body for the editor.
func (h *AdminHandler) GenerateContent(c *gin.Context) {
	prompt, ok := bindPrompt(c)
	if !ok {
		return
	}

	text, err := h.aiService.GenerateArticle(c.Request.Context(), prompt)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "content": text})
}

// GenerateImage creates a cover image. The prompt doubles as alt text.
func (h *AdminHandler) GenerateImage(c *gin.Context) {
	prompt, ok := bindPrompt(c)
	if !ok {
		return
	}

	imageURL, err := h.aiService.GenerateImage(c.Request.Context(), prompt)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "imageUrl": imageURL, "imageAlt": prompt})
}
