package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/readlog/readlog/internal/auth"
	"github.com/readlog/readlog/internal/database"
	"github.com/readlog/readlog/internal/database/userbooks"
	"github.com/readlog/readlog/internal/progress"
)

// RouterConfig carries every dependency the router wires into
// controllers, keeping NewRouter testable.
type RouterConfig struct {
	TemplatesPath string
	StaticPath    string
	Version       string
	SecureCookies bool
	CSRFSecret    []byte

	Database       *database.Database
	SessionManager *auth.SessionManager
	AuthService    *auth.Service
	Progress       *progress.Service
	UserBooks      *userbooks.Repository
	Catalog        Catalog
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so the session context is layered on
	// top of CSRF's request replacement.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	router.Use(cfg.SessionManager.LoadSave())
	router.Use(cfg.SessionManager.ResolveUser())

	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)
	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager)
	authController.RegisterRoutes(router)

	health := NewHealthController(cfg.Database, cfg.Version)
	home := NewHomeController(cfg.AuthService)
	books := NewBooksController(cfg.Catalog, cfg.Progress, cfg.UserBooks)
	search := NewSearchController(cfg.Catalog)
	library := NewLibraryController(cfg.UserBooks, cfg.Catalog)

	router.GET("/health", health.Status)
	router.GET("/", home.Home)
	router.GET("/books", books.List)
	router.GET("/books/:bookId", books.Detail)
	router.POST("/books/:bookId", books.Action)
	router.GET("/search", search.Search)
	router.GET("/library", auth.RequireAuth(), library.Library)

	return router
}
