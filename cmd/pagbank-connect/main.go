package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/pagbank-connect/internal/config"
	"github.com/dimitrije/pagbank-connect/internal/handlers"
	"github.com/dimitrije/pagbank-connect/internal/i18n"
	"github.com/dimitrije/pagbank-connect/internal/logger"
	appmw "github.com/dimitrije/pagbank-connect/internal/middleware"
	"github.com/dimitrije/pagbank-connect/internal/oauth"
	"github.com/dimitrije/pagbank-connect/internal/services"
	"github.com/dimitrije/pagbank-connect/internal/web"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	bundle, err := i18n.Load(cfg.DefaultLocale)
	if err != nil {
		zl.Fatal("failed to load translations", zap.Error(err))
	}

	renderer, err := web.NewRenderer(bundle)
	if err != nil {
		zl.Fatal("failed to parse templates", zap.Error(err))
	}

	if cfg.PagBank.Token == "" || cfg.PagBank.ClientSecret == "" {
		zl.Warn("PagBank credentials are incomplete, token exchange will answer with a configuration error")
	}

	sessionService := services.NewSessionService(cfg.Session.Secret, cfg.Session.TTL)
	provider := oauth.NewPagBankProvider(cfg, nil)
	zl.Info("oauth provider ready", zap.String("provider", provider.Name()), zap.String("api_url", cfg.PagBank.APIURL))

	authHandler := handlers.NewAuthHandler(cfg, provider, sessionService, renderer, zl)
	accountHandler := handlers.NewAccountHandler(provider, zl)
	pageHandler := handlers.NewPageHandler(provider, renderer, zl)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", handlers.AccessTokenHeader, handlers.AccountIDHeader},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())
	app.Use(appmw.RequestLogger(zl))
	app.Use(appmw.Language(bundle))
	app.Use(appmw.Session(sessionService))

	app.Get("/", pageHandler.Home)
	app.Get("/dashboard", pageHandler.Dashboard)

	auth := app.Group("/auth")
	auth.Get("/connect", authHandler.ConnectPage)
	auth.Post("/connect", authHandler.StartConnect)
	auth.Get("/callback", authHandler.Callback)
	auth.Post("/disconnect", authHandler.Disconnect)

	api := app.Group("/api")
	api.Post("/auth/token", authHandler.ExchangeToken)
	api.Get("/account/info", accountHandler.Info)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
