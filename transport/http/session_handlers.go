package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/internal/logger"
	"github.com/academia-alliance/academia/service"
)

// SessionHandlers contains HTTP handlers for the session endpoints
type SessionHandlers struct {
	sessions *service.SessionService
	cookie   CookieConfig
	log      logger.Logger
}

// NewSessionHandlers creates new session handlers
func NewSessionHandlers(sessions *service.SessionService, cookie CookieConfig, log logger.Logger) *SessionHandlers {
	return &SessionHandlers{
		sessions: sessions,
		cookie:   cookie,
		log:      log,
	}
}

// Issue mints a session credential for the posted claim and stores it in the cookie.
// Any JSON object is accepted; only its email is carried in the credential.
func (h *SessionHandlers) Issue(c *gin.Context) {
	var claim map[string]any
	if err := c.ShouldBindJSON(&claim); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgBadRequest})
		return
	}

	token, _, err := h.sessions.Issue(core.Identity{Email: claimEmail(claim)})
	if err != nil {
		abortWithError(c, h.log, err)
		return
	}

	h.cookie.set(c, token, h.sessions.TTL())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// claimEmail reads the email claim; non-string scalars are kept in their text form
func claimEmail(claim map[string]any) string {
	switch v := claim["email"].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64, bool:
		return fmt.Sprint(v)
	}
	return ""
}

// Logout clears the session cookie; it succeeds with or without one
func (h *SessionHandlers) Logout(c *gin.Context) {
	h.log.Debug(c.Request.Context(), "logging out")
	h.cookie.clear(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
