package http

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/readlog/readlog/internal/progress"
)

// Result is the discriminated response envelope used at every JSON
// boundary: {ok:true, data} on success, {ok:false, error} on failure.
type Result struct {
	OK     bool              `json:"ok"`
	Data   any               `json:"data,omitempty"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"fields,omitempty"` // field-level validation detail
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, Result{OK: true, Data: data})
}

func respondFailure(c *gin.Context, status int, message string) {
	c.JSON(status, Result{OK: false, Error: message})
}

func respondFieldErrors(c *gin.Context, message string, fields map[string]string) {
	c.JSON(http.StatusBadRequest, Result{OK: false, Error: message, Fields: fields})
}

// respondInternalError logs the error and sends a generic 500 response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Error("internal error", "context", context, "err", err)
	respondFailure(c, http.StatusInternalServerError, "internal server error")
}

// respondProgressError converts a ledger failure into the envelope with
// the status the error taxonomy prescribes.
func respondProgressError(c *gin.Context, err error) {
	var verr *progress.ValidationError
	var perr *progress.PersistenceError

	switch {
	case errors.Is(err, progress.ErrAuthRequired):
		respondFailure(c, http.StatusUnauthorized, "authentication required")
	case errors.As(err, &verr):
		respondFieldErrors(c, "validation failed", verr.Fields)
	case errors.Is(err, progress.ErrNotFound):
		respondFailure(c, http.StatusNotFound, "book record not found")
	case errors.Is(err, progress.ErrInvalidProgress):
		respondFailure(c, http.StatusBadRequest,
			"Invalid page number. The page number cannot be lower than the last one you logged.")
	case errors.Is(err, progress.ErrInvalidStatus):
		respondFailure(c, http.StatusBadRequest, "Invalid read status.")
	case errors.As(err, &perr):
		respondInternalError(c, perr, "persist reading progress")
	default:
		respondInternalError(c, err, "record reading progress")
	}
}

// renderError renders the standalone error page for failed HTML requests.
func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"Title":   "Something went wrong - ReadLog",
		"Status":  status,
		"Message": message,
	})
}
