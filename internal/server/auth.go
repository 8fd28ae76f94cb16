package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Session identifies an authenticated caller for destructive operations.
type Session struct {
	UserID string
	Admin  bool
}

// SessionStore resolves bearer tokens to sessions. A nil session means the
// token is unknown or expired.
type SessionStore interface {
	ValidateSession(token string) *Session
}

// StaticTokenStore validates against a single admin token from
// configuration. An empty configured token rejects everything.
type StaticTokenStore struct {
	Token string
}

func (s *StaticTokenStore) ValidateSession(token string) *Session {
	if s.Token == "" || token == "" || token != s.Token {
		return nil
	}
	return &Session{UserID: "admin", Admin: true}
}

func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if s.sessions == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		session := s.sessions.ValidateSession(token)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set("session", session)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return h
}
