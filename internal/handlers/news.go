package handlers

import (
	"log/slog"
	"strings"

	"gemblog/internal/app"
	"gemblog/internal/constants"
	"gemblog/internal/services"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	aiService *services.AIService
	log       *slog.Logger
}

func NewNewsHandler(aiService *services.AIService, log *slog.Logger) *NewsHandler {
	return &NewsHandler{aiService: aiService, log: log}
}

// topicQuery reads ?topic=. A missing parameter means the default topic; a
// blank one is reported to the visitor.
func topicQuery(c *gin.Context) (string, bool) {
	topic, present := c.GetQuery("topic")
	if !present {
		return constants.DefaultNewsTopic, true
	}
	topic = strings.TrimSpace(topic)
	return topic, topic != ""
}

// Show fetches a grounded news summary for the requested topic.
func (h *NewsHandler) Show(c *gin.Context) {
	screen := app.Render(currentState(c).Navigate(app.ViewNews), nil)

	topic, ok := topicQuery(c)
	if !ok {
		renderScreen(c, h.log, screen, gin.H{"topic": topic, "error": emptyTopicMsg})
		return
	}

	result, err := h.aiService.FetchNews(c.Request.Context(), topic)
	if err != nil {
		renderScreen(c, h.log, screen, gin.H{"topic": topic, "error": err.Error()})
		return
	}

	renderScreen(c, h.log, screen, gin.H{"topic": topic, "news": result})
}
