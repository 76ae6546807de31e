package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"gemblog/internal/app"
	"gemblog/internal/assets"
	"gemblog/internal/constants"
	"gemblog/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries everything the HTTP layer depends on.
type RouterConfig struct {
	Controller    *app.Controller
	AIService     *services.AIService
	TokenVerifier *services.TokenVerifier
	Logger        *slog.Logger

	AdminPassword string
	SessionSecret string
	SecureCookies bool

	Templates fs.FS
	Static    fs.FS
	// Assets, when set, serves minified copies of the static tree.
	Assets *assets.Bundle
}

func createRenderer(templatesFS fs.FS) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	pages := []string{"index.html", "post.html", "editor.html", "login.html", "news.html", "confirm.html", "404.html"}
	for _, name := range pages {
		tpl, err := template.New("base.html").Funcs(templateFuncs).ParseFS(templatesFS, "base.html", name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.Add(name, tpl)
	}

	return r, nil
}

// NewRouter wires every route onto a gin engine.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	renderer, err := createRenderer(cfg.Templates)
	if err != nil {
		return nil, err
	}

	blogHandler := NewBlogHandler(cfg.Controller, cfg.Logger)
	authHandler := NewAuthHandler(cfg.Controller, cfg.Logger)
	adminHandler := NewAdminHandler(cfg.Controller, cfg.AIService, cfg.Logger)
	newsHandler := NewNewsHandler(cfg.AIService, cfg.Logger)
	apiHandler := NewAPIHandler(cfg.Controller, cfg.AIService, cfg.TokenVerifier, cfg.Logger)

	r := gin.Default()
	r.HTMLRender = renderer
	r.Use(PrometheusMiddleware())

	// preflight requests never reach group middleware, so CORS is global
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	// no MaxAge: the admin marker ends with the browser session
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionName, store))
	r.Use(SessionMiddleware(cfg.Controller))

	if cfg.Assets != nil {
		r.GET("/static/*filepath", cfg.Assets.Handler(cfg.Static))
		r.HEAD("/static/*filepath", cfg.Assets.Handler(cfg.Static))
	} else {
		r.StaticFS("/static", http.FS(cfg.Static))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// blog
	r.GET("/", blogHandler.Index)
	r.GET("/post/:id", blogHandler.ShowPost)
	r.GET("/post/:id/:slug", blogHandler.ShowPost)
	r.GET("/news", newsHandler.Show)

	// auth
	r.GET("/login", authHandler.ShowLoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// the editor pages gate themselves and show the login form
	admin := r.Group("/admin")
	{
		admin.GET("/new", adminHandler.NewPost)
		admin.GET("/edit/:id", adminHandler.Editor)
	}
	protected := admin.Group("")
	protected.Use(AuthMiddleware())
	{
		protected.POST("/save", adminHandler.SavePost)
		protected.GET("/delete/:id", adminHandler.ConfirmDelete)
		protected.POST("/delete/:id", adminHandler.DeletePost)
		protected.POST("/ai/content", adminHandler.GenerateContent)
		protected.POST("/ai/image", adminHandler.GenerateImage)
	}

	api := r.Group("/api/v1")
	{
		api.GET("/posts", apiHandler.FindPosts)
		api.GET("/news", apiHandler.News)
		api.GET("/identity", apiHandler.Identity)
	}
	apiAdmin := api.Group("")
	apiAdmin.Use(APIAuthMiddleware(cfg.AdminPassword))
	{
		apiAdmin.POST("/posts", apiHandler.CreatePost)
		apiAdmin.PUT("/posts/:id", apiHandler.UpdatePost)
		apiAdmin.DELETE("/posts/:id", apiHandler.DeletePost)
	}

	r.NoRoute(blogHandler.NotFound)

	return r, nil
}
