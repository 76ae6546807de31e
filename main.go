package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gemblog/internal/app"
	"gemblog/internal/assets"
	"gemblog/internal/config"
	"gemblog/internal/handlers"
	"gemblog/internal/logger"
	"gemblog/internal/metrics"
	"gemblog/internal/repository"
	"gemblog/internal/services"
	"gemblog/internal/storage"
	"gemblog/internal/utils"
)

// Global filesystems that will be populated by either assets_dev.go or assets_prod.go at startup.
var (
	templatesFS fs.FS
	staticFS    fs.FS
	assetMode   string
)

var version = "dev"

func main() {
	unsafe := flag.Bool("unsafe", false, "allow insecure cookies")
	memory := flag.Bool("memory", false, "keep posts in memory only")
	flag.Parse()

	log := logger.New("gemblog")
	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}
	if cfg.UsesDefaultSessionSecret() {
		log.Warn("SESSION_SECRET is not set, session cookies are signed with a public default key")
	}
	metrics.Init("gemblog", version)
	log.Info("assets loaded", slog.String("mode", assetMode))

	var store storage.Store
	if *memory {
		log.Warn("running with an in-memory post store, nothing survives a restart")
		store = storage.NewMemoryStore()
	} else {
		db, err := utils.InitDatabase(cfg.DBPath)
		if err != nil {
			log.Error("init database", slog.Any("err", err))
			os.Exit(1)
		}
		store = storage.NewSQLStore(repository.NewEntryRepository(db))
	}

	ctrl := app.NewController(storage.NewPostStore(store, log), cfg.AdminPassword, log)
	aiService := services.NewAIService(cfg.Gemini, log)
	verifier, err := services.NewTokenVerifier(cfg.Github, log)
	if err != nil {
		log.Error("init token verifier", slog.Any("err", err))
		os.Exit(1)
	}

	var bundle *assets.Bundle
	if cfg.MinifyAssets {
		bundle, err = assets.Minify(staticFS)
		if err != nil {
			log.Error("minify assets", slog.Any("err", err))
			os.Exit(1)
		}
		log.Info("assets minified", slog.Int("files", bundle.Len()))
	}

	router, err := handlers.NewRouter(handlers.RouterConfig{
		Controller:    ctrl,
		AIService:     aiService,
		TokenVerifier: verifier,
		Logger:        log,
		AdminPassword: cfg.AdminPassword,
		SessionSecret: cfg.SessionSecret,
		SecureCookies: !*unsafe,
		Templates:     templatesFS,
		Static:        staticFS,
		Assets:        bundle,
	})
	if err != nil {
		log.Error("init router", slog.Any("err", err))
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// AI calls are bounded by their own client timeout
		WriteTimeout: cfg.Gemini.Timeout + 15*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}
