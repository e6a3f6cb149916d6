package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
)

type HomeHandler struct {
	logger logging.Logger
}

func NewHomeHandler(logger logging.Logger) *HomeHandler {
	return &HomeHandler{
		logger: logger,
	}
}

// ShowDashboard renders the dashboard shell. The page loads its data from
// the /api endpoints.
func (h *HomeHandler) ShowDashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard", gin.H{
		"Title": "Dashboard",
	})
}
