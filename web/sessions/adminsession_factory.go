package sessions

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

// AdminSessionFactory is a function that creates an AdminSession for a given request context.
type AdminSessionFactory func(c *gin.Context) AdminSession

// NewAdminSessionFactory creates a new AdminSessionFactory.
func NewAdminSessionFactory(store sessions.Store) AdminSessionFactory {
	return func(c *gin.Context) AdminSession {
		return NewGorillaAdminSession(store, c)
	}
}
