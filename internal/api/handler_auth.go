package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rockfall-console-backend/internal/auth"
	"rockfall-console-backend/internal/kvstore"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/login against the demo credentials.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.session.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		var aerr *auth.AuthError
		if errors.As(err, &aerr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": req.Email})
}

// Logout handles POST /api/logout.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.session.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSession handles GET /api/session, reporting the route-gating flags.
func (h *Handler) GetSession(c *gin.Context) {
	loggedIn, err := h.session.LoggedIn(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	email, _, err := h.store.Get(c.Request.Context(), kvstore.KeyUserEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isLoggedIn": loggedIn, "userEmail": email})
}
