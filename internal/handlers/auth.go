package handlers

import (
	"log/slog"
	"net/http"

	"gemblog/internal/app"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	ctrl *app.Controller
	log  *slog.Logger
}

func NewAuthHandler(ctrl *app.Controller, log *slog.Logger) *AuthHandler {
	return &AuthHandler{ctrl: ctrl, log: log}
}

func (h *AuthHandler) ShowLoginPage(c *gin.Context) {
	renderScreen(c, h.log, app.Render(currentState(c).ShowLogin(), nil), nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	password := c.PostForm("password")

	if !h.ctrl.Login(sessionStore(c), password) {
		h.log.Warn("failed admin login", slog.String("ip", c.ClientIP()))
		render(c, http.StatusUnauthorized, "login.html", gin.H{
			"error": invalidPasswordMsg,
		})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.ctrl.Logout(sessionStore(c))
	c.Redirect(http.StatusFound, "/")
}
