package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Auth
		Catalog
		UI
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS
		CSRFSecret      string
	}
	Catalog struct {
		APIKey  string
		BaseURL string
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

var (
	ErrSessionSecretRequired = errors.New("SESSION_SECRET is required")
	ErrCatalogKeyRequired    = errors.New("GOOGLE_BOOKS_API_KEY is required")
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")
	v.SetDefault("catalog_base_url", DefaultCatalogBaseURL)

	// Auth defaults
	v.SetDefault("session_secret", "")
	v.SetDefault("session_lifetime", "168h") // 7 days
	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("secure_cookies", true)
	v.SetDefault("csrf_secret", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			SessionSecret:   v.GetString("SESSION_SECRET"),
			SessionLifetime: v.GetDuration("SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("BCRYPT_COST"),
			SecureCookies:   v.GetBool("SECURE_COOKIES"),
			CSRFSecret:      v.GetString("CSRF_SECRET"),
		},
		Catalog: Catalog{
			APIKey:  v.GetString("GOOGLE_BOOKS_API_KEY"),
			BaseURL: v.GetString("CATALOG_BASE_URL"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}

// Validate checks the variables the app cannot run without. Called at
// boot; the process refuses to start on failure.
func (c *Config) Validate() error {
	if c.Auth.SessionSecret == "" {
		return ErrSessionSecretRequired
	}
	if c.Catalog.APIKey == "" {
		return ErrCatalogKeyRequired
	}
	return nil
}
