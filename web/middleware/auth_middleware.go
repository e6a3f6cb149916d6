package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
	"github.com/myairobotics/myaisells-admin/internal/identity"
	"github.com/myairobotics/myaisells-admin/web/sessions"
)

type AuthMiddleware struct {
	logger         logging.Logger
	adminService   identity.AdminService
	sessionFactory sessions.AdminSessionFactory
}

func NewAuthMiddleware(logger logging.Logger, adminService identity.AdminService, sessionFactory sessions.AdminSessionFactory) *AuthMiddleware {
	return &AuthMiddleware{
		logger:         logger,
		adminService:   adminService,
		sessionFactory: sessionFactory,
	}
}

func (m *AuthMiddleware) RequireAuth(c *gin.Context) {
	// If no admin account exists yet, send the user to the setup page.
	configured, err := m.adminService.IsConfigured(c.Request.Context())
	if err != nil {
		m.logger.Error("Failed to check admin configuration", "error", err)
		m.reject(c, http.StatusInternalServerError)
		return
	}
	if !configured {
		m.logger.Info("No admin account found, redirecting to setup.")
		m.redirect(c, "/auth/setup")
		return
	}

	// Check if the user is authenticated (admin id in session)
	session := m.sessionFactory(c)
	adminID, err := session.GetAdminID()
	if err != nil || adminID == "" {
		m.logger.Info("User not authenticated, redirecting to login.")
		m.redirect(c, "/auth/login")
		return
	}

	c.Next()
}

func (m *AuthMiddleware) RedirectIfAuth(c *gin.Context) {
	// If an admin id is in the session, the user is authenticated. Redirect to dashboard.
	session := m.sessionFactory(c)
	adminID, err := session.GetAdminID()
	if err == nil && adminID != "" {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}

	c.Next()
}

// API clients get a JSON status instead of an HTML redirect
func (m *AuthMiddleware) redirect(c *gin.Context, location string) {
	if isAPIRequest(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Authentication required",
		})
		return
	}

	c.Redirect(http.StatusFound, location)
	c.Abort()
}

func (m *AuthMiddleware) reject(c *gin.Context, status int) {
	if isAPIRequest(c) {
		c.AbortWithStatusJSON(status, gin.H{
			"success": false,
			"message": http.StatusText(status),
		})
		return
	}

	c.AbortWithStatus(status)
}

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}
