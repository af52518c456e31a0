package entrypoint

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/readlog/readlog/internal/auth"
	"github.com/readlog/readlog/internal/catalog"
	"github.com/readlog/readlog/internal/config"
	"github.com/readlog/readlog/internal/database"
	"github.com/readlog/readlog/internal/database/userbooks"
	"github.com/readlog/readlog/internal/database/users"
	http_controllers "github.com/readlog/readlog/internal/http"
	"github.com/readlog/readlog/internal/progress"
)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Info("starting server", "host", cfg.HTTP.Host, "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown failed", "err", err)
	}

	log.Info("server exiting")
}

// Run wires the application together and serves it. The database handle
// is constructed exactly once here and injected everywhere it is needed;
// nothing else holds process-wide state.
func Run(cfg *config.Config, version string) {
	log.Info("starting ReadLog", "version", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatal("failed to initialize database", "err", err)
	}
	defer db.Close()
	log.Info("database initialized", "path", cfg.Database.Path)

	sqlDB, err := db.SQLDB()
	if err != nil {
		log.Fatal("failed to access sql handle", "err", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatal("failed to initialize session store", "err", err)
	}

	userRepo := users.NewRepository(db.DB)
	userBookRepo := userbooks.NewRepository(db.DB)

	authService := auth.NewService(userRepo, cfg.Auth)
	progressService := progress.NewService(userBookRepo)
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		Version:        version,
		SecureCookies:  cfg.Auth.SecureCookies,
		CSRFSecret:     []byte(cfg.Auth.CSRFSecret),
		Database:       db,
		SessionManager: sessionManager,
		AuthService:    authService,
		Progress:       progressService,
		UserBooks:      userBookRepo,
		Catalog:        catalogClient,
	})

	Serve(router, cfg)
}
