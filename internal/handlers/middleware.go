package handlers

import (
	"net/http"

	"todoapp/internal/models"

	"github.com/gin-gonic/gin"
)

// authHeaderName carries the auth token on requests and echoes freshly
// issued tokens on responses. Tokens never travel in a body.
const authHeaderName = "x-auth"

// gin context keys set by the auth middleware.
const (
	ctxUserKey  = "user"
	ctxTokenKey = "token"
)

// authMiddleware validates the x-auth token, resolves the user, and stores
// user and raw token in the request context. Every failure mode is the same
// 401 so nothing leaks about why the token was rejected.
func (h *Handler) authMiddleware(c *gin.Context) {
	token := c.GetHeader(authHeaderName)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing auth token",
		})
		return
	}

	user, err := h.services.ValidateToken(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid auth token",
		})
		return
	}

	c.Set(ctxUserKey, user)
	c.Set(ctxTokenKey, token)
	c.Next()
}

// currentUserFrom returns the user stored by authMiddleware.
func currentUserFrom(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}

// currentTokenFrom returns the raw token stored by authMiddleware.
func currentTokenFrom(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxTokenKey)
	if !ok {
		return "", false
	}
	t, ok := v.(string)
	return t, ok
}
