package api

import (
	"net/http"

	"alcyxob/fitness-dashboard/internal/views"

	"github.com/gin-gonic/gin"
)

// Dashboard renders the role home. One view serves every role; the claims
// and the role's navigation table decide what it shows.
func Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, views.PageDashboard, newPage(c, "Dashboard"))
}
