package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rockfall-console-backend/internal/dialog"
	"rockfall-console-backend/internal/model"
	"rockfall-console-backend/internal/task"
)

// StartUpload handles POST /api/devices/:id/files. The file arrives as
// multipart form data; the simulated upload runs in the background and the
// task id is returned for progress polling. The FileRecord is attached to
// the device when the simulation completes.
func (h *Handler) StartUpload(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
		return
	}
	device, found := h.registry.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading file. Please try again."})
		return
	}
	defer f.Close()

	meta := task.UploadMeta{
		Name:        fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}

	up, err := h.uploader.Start(device.ID, meta, device.ImportType, f,
		func(deviceID int64, file model.FileRecord) {
			h.registry.AttachFile(deviceID, file)
			h.dialogs.Close(dialog.Import)
		})
	if err != nil {
		var rerr *task.UploadReadError
		if errors.As(err, &rerr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error reading file. Please try again."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.mu.Lock()
	h.uploads[up.ID()] = up
	h.mu.Unlock()
	go h.evictUpload(up)

	c.JSON(http.StatusAccepted, gin.H{"taskId": up.ID()})
}

// GetUpload handles GET /api/uploads/:taskId.
func (h *Handler) GetUpload(c *gin.Context) {
	h.mu.Lock()
	up, ok := h.uploads[c.Param("taskId")]
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Upload not found"})
		return
	}
	c.JSON(http.StatusOK, up.Snapshot())
}

// CancelUpload handles DELETE /api/uploads/:taskId. A cancelled upload never
// attaches a file.
func (h *Handler) CancelUpload(c *gin.Context) {
	h.mu.Lock()
	up, ok := h.uploads[c.Param("taskId")]
	if ok {
		delete(h.uploads, c.Param("taskId"))
	}
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Upload not found"})
		return
	}
	up.Cancel()
	c.Status(http.StatusNoContent)
}
