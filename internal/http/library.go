package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/readlog/readlog/internal/auth"
	"github.com/readlog/readlog/internal/catalog"
	"github.com/readlog/readlog/internal/entities"
)

// UserBookLister returns all of a user's book records.
type UserBookLister interface {
	ListForUser(userID uint) ([]entities.UserBook, error)
}

// LibraryItem pairs a user's record with the catalog volume it refers to.
type LibraryItem struct {
	Volume   catalog.Volume
	UserBook entities.UserBook
}

// StatusGroup is one tab of the library page.
type StatusGroup struct {
	Status entities.ReadStatus
	Label  string
	Items  []LibraryItem
}

// LibraryController renders the signed-in user's collection grouped by
// read status.
type LibraryController struct {
	userBooks UserBookLister
	catalog   Catalog
}

// NewLibraryController creates a new library controller.
func NewLibraryController(lister UserBookLister, cat Catalog) *LibraryController {
	return &LibraryController{userBooks: lister, catalog: cat}
}

// Library fetches the user's records and joins each with its catalog
// volume, fetched concurrently.
func (lc *LibraryController) Library(c *gin.Context) {
	userID := auth.GetUserID(c)

	records, err := lc.userBooks.ListForUser(userID)
	if err != nil {
		renderError(c, http.StatusInternalServerError, "Something went wrong loading your library.")
		return
	}

	items := make([]LibraryItem, len(records))
	g, ctx := errgroup.WithContext(c.Request.Context())
	for i, record := range records {
		g.Go(func() error {
			vol, err := lc.catalog.Volume(ctx, record.BookID)
			if err != nil {
				// A record pointing at a vanished volume is skipped
				// rather than failing the whole shelf.
				if errors.Is(err, catalog.ErrNotFound) {
					return nil
				}
				return err
			}
			items[i] = LibraryItem{Volume: *vol, UserBook: record}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		renderError(c, http.StatusBadGateway, "The book catalog is unavailable right now. Please try again later.")
		return
	}

	groups := []StatusGroup{
		{Status: entities.ReadStatusReading, Label: "Currently Reading"},
		{Status: entities.ReadStatusWantToRead, Label: "Want To Read"},
		{Status: entities.ReadStatusRead, Label: "Finished Reading"},
	}
	for _, item := range items {
		if item.Volume.ID == "" {
			continue
		}
		for gi := range groups {
			if groups[gi].Status == item.UserBook.ReadStatus {
				groups[gi].Items = append(groups[gi].Items, item)
				break
			}
		}
	}

	selected := c.Query("read-status")
	if selected == "" {
		selected = string(entities.ReadStatusReading)
	}

	c.HTML(http.StatusOK, "library.html", gin.H{
		"Title":         "Library - ReadLog",
		"CSRFToken":     auth.GetCSRFToken(c),
		"Groups":        groups,
		"Selected":      selected,
		"Authenticated": true,
	})
}
