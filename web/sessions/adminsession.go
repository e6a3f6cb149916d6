package sessions

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "myaisells-admin-session"
	adminIDKey  = "admin_id"
)

// AdminSession holds the authentication state of the current request
type AdminSession interface {
	// GetAdminID returns the id of the signed-in admin, or "" if none
	GetAdminID() (string, error)
	// SetAdminID marks the session as signed in
	SetAdminID(adminID string) error
	// Clear signs the session out
	Clear() error
}

// GorillaAdminSession implements the AdminSession interface using gorilla sessions
type GorillaAdminSession struct {
	store   sessions.Store
	request *gin.Context
}

// NewGorillaAdminSession creates a new GorillaAdminSession for a specific request
func NewGorillaAdminSession(store sessions.Store, c *gin.Context) AdminSession {
	return &GorillaAdminSession{
		store:   store,
		request: c,
	}
}

// GetAdminID returns the id of the signed-in admin from the session
func (s *GorillaAdminSession) GetAdminID() (string, error) {
	session, err := s.store.Get(s.request.Request, sessionName)
	if err != nil {
		return "", err
	}

	value, ok := session.Values[adminIDKey]
	if !ok {
		return "", nil
	}

	adminID, ok := value.(string)
	if !ok {
		return "", nil
	}

	return adminID, nil
}

// SetAdminID sets the admin id in the session
func (s *GorillaAdminSession) SetAdminID(adminID string) error {
	session, err := s.store.Get(s.request.Request, sessionName)
	if err != nil {
		return err
	}

	session.Values[adminIDKey] = adminID
	return session.Save(s.request.Request, s.request.Writer)
}

// Clear removes the admin id from the session
func (s *GorillaAdminSession) Clear() error {
	session, err := s.store.Get(s.request.Request, sessionName)
	if err != nil {
		return err
	}

	delete(session.Values, adminIDKey)
	return session.Save(s.request.Request, s.request.Writer)
}
