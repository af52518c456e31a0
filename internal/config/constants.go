package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./readlog.db"

	// DefaultCatalogBaseURL is the Google Books API endpoint
	DefaultCatalogBaseURL = "https://www.googleapis.com/books/v1"
)
