package api

import (
	"net/http"
	"strconv"

	"alcyxob/fitness-dashboard/internal/service"
	"alcyxob/fitness-dashboard/internal/views"

	"github.com/gin-gonic/gin"
)

const programsPath = "/dashboard/client/programs"

// ClientHandler serves /dashboard/client.
type ClientHandler struct {
	gateway service.Gateway
}

// NewClientHandler creates a ClientHandler that reads programs through gw.
func NewClientHandler(gw service.Gateway) *ClientHandler {
	return &ClientHandler{gateway: gw}
}

// Programs handles GET /dashboard/client/programs. ?expanded=<id> opens one program.
func (h *ClientHandler) Programs(c *gin.Context) {
	programs, err := h.gateway.ListWorkoutPrograms(c.Request.Context(), credentials(c).Token)
	if err != nil {
		renderLoadError(c, "your programs", err)
		return
	}
	expanded, _ := strconv.Atoi(c.Query("expanded"))

	p := newPage(c, "My Programs")
	p.Data = views.ProgramsData{Items: views.BuildProgramList(programs, expanded, programsPath)}
	c.HTML(http.StatusOK, views.PagePrograms, p)
}
