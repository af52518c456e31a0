package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/readlog/readlog/internal/auth"
	"github.com/readlog/readlog/internal/entities"
	"github.com/readlog/readlog/internal/stats"
)

// UserGetter resolves a user id to the account record.
type UserGetter interface {
	GetUserByID(id uint) (*entities.User, error)
}

// HomeController renders the dashboard.
type HomeController struct {
	users UserGetter
}

// NewHomeController creates a new home controller.
func NewHomeController(users UserGetter) *HomeController {
	return &HomeController{users: users}
}

// Home greets the signed-in user by name. Visitors see sample chart
// data; signed-in users see an empty chart until real tracking exists.
func (hc *HomeController) Home(c *gin.Context) {
	userName := "Guest"
	var chartData []stats.ChartPoint

	userID := auth.GetUserID(c)
	if userID != auth.AnonymousUserID {
		user, err := hc.users.GetUserByID(userID)
		if err != nil {
			renderError(c, http.StatusUnauthorized, "We couldn't verify your identity. Please log in to continue.")
			return
		}
		userName = user.Fullname
	} else {
		chartData = stats.GenerateChartData(5)
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title":         "Home - ReadLog",
		"CSRFToken":     auth.GetCSRFToken(c),
		"UserName":      userName,
		"Today":         time.Now().Format("Monday, January 2, 2006"),
		"ChartData":     chartData,
		"TotalPages":    stats.TotalPages(chartData),
		"MaxStreak":     stats.MaxStreak(chartData),
		"TotalMinutes":  stats.TotalMinutes(chartData),
		"Authenticated": userID != auth.AnonymousUserID,
	})
}
