package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"gemblog/internal/app"
	"gemblog/internal/constants"
	"gemblog/internal/metrics"
	"gemblog/internal/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// APIAuthMiddleware checks for a Bearer token equal to the admin password.
func APIAuthMiddleware(adminPassword string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be Bearer {token}"})
			c.Abort()
			return
		}

		if token != adminPassword {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AuthMiddleware sends visitors without the admin marker to the login page.
// SessionMiddleware must run first.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdmin(c) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionMiddleware reads the admin marker from the session into the context.
func SessionMiddleware(ctrl *app.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyIsAdmin, ctrl.IsAdmin(sessionStore(c)))
		c.Next()
	}
}

// PrometheusMiddleware records request counts and latencies per route.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		statusCode := strconv.Itoa(c.Writer.Status())

		metrics.HttpRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
		metrics.HttpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func sessionStore(c *gin.Context) *storage.SessionStore {
	return storage.NewSessionStore(sessions.Default(c))
}

func isAdmin(c *gin.Context) bool {
	return c.GetBool(constants.ContextKeyIsAdmin)
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// render is a helper function to render templates with common data.
func render(c *gin.Context, status int, templateName string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["IsAdmin"] = isAdmin(c)
	c.HTML(status, templateName, data)
}
