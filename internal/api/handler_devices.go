package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rockfall-console-backend/internal/dialog"
	"rockfall-console-backend/internal/model"
	"rockfall-console-backend/internal/notification"
	"rockfall-console-backend/internal/registry"
)

// ListDevices handles GET /api/devices.
func (h *Handler) ListDevices(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.List())
}

// AddDevice handles POST /api/devices.
func (h *Handler) AddDevice(c *gin.Context) {
	var draft model.DeviceDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, err := h.registry.Add(draft)
	if err != nil {
		var verr *registry.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.dialogs.Close(dialog.AddDevice)
	c.JSON(http.StatusCreated, device)
}

// UpdateDeviceConfig handles PUT /api/devices/:id/config. An unknown id is
// reported as 404 even though the registry treats it as a no-op.
func (h *Handler) UpdateDeviceConfig(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
		return
	}

	var patch model.ConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, ok := h.registry.UpdateConfig(id, patch)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}

	h.dialogs.Close(dialog.Config)
	c.JSON(http.StatusOK, device)
}

type deleteDeviceRequest struct {
	Password string `json:"password" binding:"required"`
}

// DeleteDevice handles DELETE /api/devices/:id. The admin secret travels in
// the body; a wrong secret keeps the confirmation dialog open and nothing is
// removed.
func (h *Handler) DeleteDevice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
		return
	}

	var req deleteDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.verifier.Verify(req.Password) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Incorrect admin password"})
		return
	}

	// Simulated server latency between confirmation and removal.
	if h.deleteDelay > 0 {
		time.Sleep(h.deleteDelay)
	}

	if !h.registry.Delete(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}

	h.dialogs.Close(dialog.PasswordConfirm)
	if h.pool != nil {
		h.pool.Dispatch(notification.Job{DeviceID: id, Event: notification.EventDeviceDeleted})
	}
	c.Status(http.StatusNoContent)
}

// DetachFile handles DELETE /api/devices/:id/files/:index.
func (h *Handler) DetachFile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file index"})
		return
	}

	device, removed, ok := h.registry.DetachFile(id, index)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File \"" + removed.Name + "\" has been successfully deleted.",
		"device":  device,
	})
}
