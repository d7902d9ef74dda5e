package api

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"rockfall-console-backend/internal/dialog"
)

// GetDialogs handles GET /api/dialogs.
func (h *Handler) GetDialogs(c *gin.Context) {
	c.JSON(http.StatusOK, h.dialogs.Snapshot())
}

type openDialogRequest struct {
	DeviceID *int64 `json:"deviceId"`
	Extra    any    `json:"extra"`
}

// OpenDialog handles POST /api/dialogs/:name/open.
func (h *Handler) OpenDialog(c *gin.Context) {
	name := dialog.Name(c.Param("name"))
	if !slices.Contains(dialog.Names, name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown dialog"})
		return
	}

	var req openDialogRequest
	// An empty body opens the dialog unbound.
	_ = c.ShouldBindJSON(&req)

	var device *openDeviceRef
	if req.DeviceID != nil {
		d, found := h.registry.Get(*req.DeviceID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
			return
		}
		h.dialogs.Open(name, &d, req.Extra)
		device = &openDeviceRef{ID: d.ID, Name: d.Name}
	} else {
		h.dialogs.Open(name, nil, req.Extra)
	}

	c.JSON(http.StatusOK, gin.H{"dialog": name, "device": device})
}

type openDeviceRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CloseDialog handles POST /api/dialogs/:name/close. Closing a dialog that
// is already closed succeeds with the same resulting state.
func (h *Handler) CloseDialog(c *gin.Context) {
	name := dialog.Name(c.Param("name"))
	if !slices.Contains(dialog.Names, name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown dialog"})
		return
	}
	h.dialogs.Close(name)
	c.JSON(http.StatusOK, h.dialogs.Get(name))
}
