package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readlog/readlog/internal/auth"
	"github.com/readlog/readlog/internal/catalog"
)

// SearchController serves the title-search page.
type SearchController struct {
	catalog Catalog
}

// NewSearchController creates a new search controller.
func NewSearchController(cat Catalog) *SearchController {
	return &SearchController{catalog: cat}
}

// Search renders results for the q parameter, or the empty form.
func (sc *SearchController) Search(c *gin.Context) {
	query := c.Query("q")

	var books []catalog.Volume
	if query != "" {
		result, err := sc.catalog.Search(c.Request.Context(), query)
		if err != nil {
			renderError(c, http.StatusBadGateway, "The book catalog is unavailable right now. Please try again later.")
			return
		}
		books = result.Items
	}

	c.HTML(http.StatusOK, "search.html", gin.H{
		"Title":         "Book Search - ReadLog",
		"CSRFToken":     auth.GetCSRFToken(c),
		"Query":         query,
		"Books":         books,
		"Authenticated": auth.GetUserID(c) != auth.AnonymousUserID,
	})
}
