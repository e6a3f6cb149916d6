package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
	"github.com/myairobotics/myaisells-admin/internal/identity"
	"github.com/myairobotics/myaisells-admin/web/sessions"
)

type AuthHandler struct {
	logger         logging.Logger
	adminService   identity.AdminService
	sessionFactory sessions.AdminSessionFactory
}

func NewAuthHandler(logger logging.Logger, adminService identity.AdminService, sessionFactory sessions.AdminSessionFactory) *AuthHandler {
	return &AuthHandler{
		logger:         logger,
		adminService:   adminService,
		sessionFactory: sessionFactory,
	}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login", gin.H{
		"Title": "Login",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.HTML(http.StatusBadRequest, "login", gin.H{
			"Title": "Login",
			"Error": "Email and password are required",
		})
		return
	}

	admin, err := h.adminService.Authenticate(c.Request.Context(), email, password, c.ClientIP())
	if err != nil {
		if identity.IsTooManyAttemptsError(err) {
			c.HTML(http.StatusTooManyRequests, "login", gin.H{
				"Title": "Login",
				"Error": "Too many failed attempts. Please try again later.",
			})
			return
		}
		if identity.IsInvalidCredentialsError(err) {
			c.HTML(http.StatusUnauthorized, "login", gin.H{
				"Title": "Login",
				"Error": "Invalid email or password",
			})
			return
		}

		h.logger.Error("Failed to authenticate admin", "error", err)
		c.HTML(http.StatusInternalServerError, "login", gin.H{
			"Title": "Login",
			"Error": "An internal error occurred.",
		})
		return
	}

	session := h.sessionFactory(c)
	if err := session.SetAdminID(admin.ID); err != nil {
		h.logger.Error("Failed to store admin id in session", "error", err)
		c.HTML(http.StatusInternalServerError, "login", gin.H{
			"Title": "Login",
			"Error": "Failed to start session.",
		})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := h.sessionFactory(c)
	if err := session.Clear(); err != nil {
		h.logger.Error("Failed to clear session", "error", err)
		// Don't block logout, just log the error.
	}
	c.Redirect(http.StatusFound, "/auth/login")
}

func (h *AuthHandler) ShowSetup(c *gin.Context) {
	// Once an admin exists, the setup page is no longer available
	configured, err := h.adminService.IsConfigured(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to check admin configuration", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if configured {
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	c.HTML(http.StatusOK, "setup", gin.H{
		"Title": "Setup",
	})
}

func (h *AuthHandler) Setup(c *gin.Context) {
	configured, err := h.adminService.IsConfigured(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to check admin configuration", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if configured {
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	email := c.PostForm("email")
	password := c.PostForm("password")
	confirmPassword := c.PostForm("confirm_password")

	if email == "" || password == "" || confirmPassword == "" {
		c.HTML(http.StatusBadRequest, "setup", gin.H{
			"Title": "Setup",
			"Error": "All fields are required",
		})
		return
	}

	if password != confirmPassword {
		c.HTML(http.StatusBadRequest, "setup", gin.H{
			"Title": "Setup",
			"Error": "Passwords do not match",
		})
		return
	}

	admin, err := h.adminService.Setup(c.Request.Context(), email, password)
	if err != nil {
		if validationErr, ok := err.(*identity.SetupValidationError); ok {
			c.HTML(http.StatusBadRequest, "setup", gin.H{
				"Title": "Setup",
				"Error": validationErr.Reason,
			})
			return
		}

		h.logger.Error("Failed to create admin account", "error", err)
		c.HTML(http.StatusInternalServerError, "setup", gin.H{
			"Title": "Setup",
			"Error": "Failed to create the admin account.",
		})
		return
	}

	// Sign the new admin in right away
	session := h.sessionFactory(c)
	if err := session.SetAdminID(admin.ID); err != nil {
		h.logger.Error("Failed to store admin id in session after setup", "error", err)
		c.HTML(http.StatusInternalServerError, "setup", gin.H{
			"Title": "Setup",
			"Error": "Failed to start session.",
		})
		return
	}

	c.Redirect(http.StatusFound, "/")
}
