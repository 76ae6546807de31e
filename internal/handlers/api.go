package handlers

import (
	"log/slog"
	"net/http"

	"gemblog/internal/app"
	"gemblog/internal/models"
	"gemblog/internal/services"

	"github.com/gin-gonic/gin"
)

type APIHandler struct {
	ctrl      *app.Controller
	aiService *services.AIService
	verifier  *services.TokenVerifier
	log       *slog.Logger
}

func NewAPIHandler(ctrl *app.Controller, aiService *services.AIService, verifier *services.TokenVerifier, log *slog.Logger) *APIHandler {
	return &APIHandler{
		ctrl:      ctrl,
		aiService: aiService,
		verifier:  verifier,
		log:       log,
	}
}

// FindPosts lists posts and the category filter values.
func (h *APIHandler) FindPosts(c *gin.Context) {
	posts := h.ctrl.Posts()
	state := app.NewState(false).SelectCategory(c.Query("category"))

	c.JSON(http.StatusOK, gin.H{
		"posts":      app.FilterByCategory(posts, state.SelectedCategory),
		"categories": app.Categories(posts),
	})
}

// CreatePost handles the API request to create a new post.
func (h *APIHandler) CreatePost(c *gin.Context) {
	var draft models.PostDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft.ID = ""

	post, _ := h.ctrl.Save(draft)
	c.JSON(http.StatusCreated, post)
}

// UpdatePost overwrites the editable fields of an existing post.
func (h *APIHandler) UpdatePost(c *gin.Context) {
	var draft models.PostDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft.ID = c.Param("id")

	post, ok := h.ctrl.Save(draft)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost requires ?confirm=true, there is no undo.
func (h *APIHandler) DeletePost(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deletion must be confirmed with ?confirm=true"})
		return
	}
	if !h.ctrl.Delete(c.Param("id"), true) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *APIHandler) News(c *gin.Context) {
	topic, ok := topicQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": emptyTopicMsg})
		return
	}

	result, err := h.aiService.FetchNews(c.Request.Context(), topic)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Identity resolves the bearer token to a GitHub identity. It has no
// bearing on the admin session.
func (h *APIHandler) Identity(c *gin.Context) {
	token, _ := bearerToken(c.GetHeader("Authorization"))

	identity := h.verifier.Verify(c.Request.Context(), token)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token could not be verified"})
		return
	}
	c.JSON(http.StatusOK, identity)
}
