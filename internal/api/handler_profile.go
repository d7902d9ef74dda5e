package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rockfall-console-backend/internal/kvstore"
	"rockfall-console-backend/internal/model"
)

// GetProfile handles GET /api/profile. The default profile is seeded and
// persisted on first read, matching the console's first-run behavior.
func (h *Handler) GetProfile(c *gin.Context) {
	var profile model.UserProfile
	found, err := h.store.GetJSON(c.Request.Context(), kvstore.KeyUserProfile, &profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		profile = model.DefaultProfile()
		if err := h.store.SetJSON(c.Request.Context(), kvstore.KeyUserProfile, profile); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, profile)
}

// PutProfile handles PUT /api/profile. Last write wins; there is no
// versioning on the slot.
func (h *Handler) PutProfile(c *gin.Context) {
	var profile model.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SetJSON(c.Request.Context(), kvstore.KeyUserProfile, profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}
