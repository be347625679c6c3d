package handlers

import (
	"errors"
	"net/http"

	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both registration and login.
type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

const (
	errInvalidCredentials = "invalid credentials"
	errRegistrationFailed = "registration failed"
	errLogoutFailed       = "failed to revoke token"
)

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  credentialsRequest  true  "Credentials"
// @Success      200  {object}  models.User  "token in x-auth response header"
// @Failure      400  {object}  map[string]string
// @Router       /users [post]
func (h *Handler) register(c *gin.Context) {
	var input credentialsRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, token, err := h.services.Register(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			if h.log != nil {
				h.log.Errorw("register_failed", "err", err)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": errRegistrationFailed})
		}
		return
	}

	c.Header(authHeaderName, token)
	c.JSON(http.StatusOK, user)
}

// @Summary      Log in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  credentialsRequest  true  "Credentials"
// @Success      200  {object}  models.User  "token in x-auth response header"
// @Failure      400  {object}  map[string]string
// @Router       /users/login [post]
func (h *Handler) login(c *gin.Context) {
	var input credentialsRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, token, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("login_failed", "email", input.Email)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCredentials})
		return
	}

	c.Header(authHeaderName, token)
	c.JSON(http.StatusOK, user)
}

// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
// @Security     XAuth
func (h *Handler) currentUser(c *gin.Context) {
	user, ok := currentUserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth token"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Log out (revoke the current token)
// @Tags         users
// @Success      200
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /users/me/token [delete]
// @Security     XAuth
func (h *Handler) logout(c *gin.Context) {
	user, okUser := currentUserFrom(c)
	token, okToken := currentTokenFrom(c)
	if !okUser || !okToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth token"})
		return
	}

	if err := h.services.RevokeToken(c.Request.Context(), user.ID, token); err != nil {
		if h.log != nil {
			h.log.Errorw("logout_failed", "userId", user.ID, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errLogoutFailed})
		return
	}
	c.Status(http.StatusOK)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
