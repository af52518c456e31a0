package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/readlog/readlog/internal/auth"
	"github.com/readlog/readlog/internal/catalog"
	"github.com/readlog/readlog/internal/database/userbooks"
	"github.com/readlog/readlog/internal/entities"
	"github.com/readlog/readlog/internal/progress"
)

// Catalog is the slice of the book-catalog client the controllers need.
type Catalog interface {
	Volume(ctx context.Context, id string) (*catalog.Volume, error)
	Search(ctx context.Context, query string) (*catalog.SearchResult, error)
	Popular(ctx context.Context, genre string) (*catalog.SearchResult, error)
}

// UserBookFinder locates a user's record for a catalog volume.
type UserBookFinder interface {
	FindForBook(userID uint, bookID string) (*entities.UserBook, error)
}

// BooksController serves the popular-books listing, the book detail
// page, and the form-posted progress and status actions.
type BooksController struct {
	catalog   Catalog
	progress  *progress.Service
	userBooks UserBookFinder
}

// NewBooksController creates a new books controller.
func NewBooksController(cat Catalog, svc *progress.Service, finder UserBookFinder) *BooksController {
	return &BooksController{catalog: cat, progress: svc, userBooks: finder}
}

// List renders the popular-books page, optionally filtered by genre.
func (bc *BooksController) List(c *gin.Context) {
	genre := c.Query("genre")

	result, err := bc.catalog.Popular(c.Request.Context(), genre)
	if err != nil {
		renderError(c, http.StatusBadGateway, "The book catalog is unavailable right now. Please try again later.")
		return
	}

	c.HTML(http.StatusOK, "books.html", gin.H{
		"Title":         "Popular Books - ReadLog",
		"CSRFToken":     auth.GetCSRFToken(c),
		"Genres":        catalog.DefaultGenres,
		"SelectedGenre": genre,
		"Books":         result.Items,
		"Authenticated": auth.GetUserID(c) != auth.AnonymousUserID,
	})
}

// Detail renders a volume's page together with the signed-in user's
// reading record for it, when one exists.
func (bc *BooksController) Detail(c *gin.Context) {
	bookID := c.Param("bookId")

	volume, err := bc.catalog.Volume(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			renderError(c, http.StatusNotFound, "We couldn't find that book.")
			return
		}
		renderError(c, http.StatusBadGateway, "The book catalog is unavailable right now. Please try again later.")
		return
	}

	data := gin.H{
		"Title":         volume.VolumeInfo.Title + " - ReadLog",
		"Volume":        volume,
		"CSRFToken":     auth.GetCSRFToken(c),
		"Authenticated": false,
		"CurrentPage":   0,
		"Completion":    0,
	}

	userID := auth.GetUserID(c)
	if userID != auth.AnonymousUserID {
		data["Authenticated"] = true
		ub, err := bc.userBooks.FindForBook(userID, volume.ID)
		if err == nil {
			data["UserBook"] = ub
			data["CurrentPage"] = ub.CurrentPage()
			data["Completion"] = progress.CompletionPercentage(ub.CurrentPage(), volume.VolumeInfo.PageCount)
		} else if !errors.Is(err, userbooks.ErrNotFound) {
			renderError(c, http.StatusInternalServerError, "Something went wrong loading your reading record.")
			return
		}
	}

	c.HTML(http.StatusOK, "book.html", data)
}

// Action dispatches the book page's form posts: recording a reading
// session or overwriting the read status. Responses use the JSON result
// envelope; the page updates itself from it.
func (bc *BooksController) Action(c *gin.Context) {
	switch c.PostForm("intent") {
	case "update-progress":
		bc.updateProgress(c)
	case "update-read-status":
		bc.updateReadStatus(c)
	default:
		respondFailure(c, http.StatusBadRequest, "unknown form intent")
	}
}

func (bc *BooksController) updateProgress(c *gin.Context) {
	fields := make(map[string]string)

	pageNumber, err := strconv.Atoi(c.PostForm("pageNumber"))
	if err != nil {
		fields["pageNumber"] = "must be an integer"
	}
	elapsedSeconds, err := strconv.Atoi(c.DefaultPostForm("elapsedSeconds", "0"))
	if err != nil {
		fields["elapsedSeconds"] = "must be an integer"
	}
	userBookID, ok := parseOptionalID(c.PostForm("userBookId"))
	if !ok {
		fields["userBookId"] = "must be an integer"
	}
	if len(fields) > 0 {
		respondFieldErrors(c, "validation failed", fields)
		return
	}

	ub, err := bc.progress.RecordSession(progress.RecordSessionInput{
		UserID:         auth.GetUserID(c),
		BookID:         c.Param("bookId"),
		BookName:       c.PostForm("bookName"),
		ImageURL:       c.PostForm("imageUrl"),
		UserBookID:     userBookID,
		PageNumber:     pageNumber,
		ElapsedSeconds: elapsedSeconds,
	})
	if err != nil {
		respondProgressError(c, err)
		return
	}
	respondData(c, http.StatusOK, ub)
}

func (bc *BooksController) updateReadStatus(c *gin.Context) {
	userBookID, ok := parseOptionalID(c.PostForm("userBookId"))
	if !ok {
		respondFieldErrors(c, "validation failed", map[string]string{"userBookId": "must be an integer"})
		return
	}

	ub, err := bc.progress.SetStatus(progress.SetStatusInput{
		UserID:     auth.GetUserID(c),
		BookID:     c.Param("bookId"),
		BookName:   c.PostForm("bookName"),
		ImageURL:   c.PostForm("imageUrl"),
		UserBookID: userBookID,
		Status:     entities.ReadStatus(c.PostForm("readStatus")),
	})
	if err != nil {
		respondProgressError(c, err)
		return
	}
	respondData(c, http.StatusOK, ub)
}

// parseOptionalID parses a form id that may legitimately be absent.
func parseOptionalID(raw string) (uint, bool) {
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
