package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rockfall-console-backend/internal/notification"
	"rockfall-console-backend/internal/task"
)

type startAnalysisBody struct {
	// Flow selects the simulated backend: "drone" (simple processing) or
	// "deep" (deep mining analysis).
	Flow string `json:"flow"`
}

// StartAnalysis handles POST /api/devices/:id/analysis. It starts the
// simulated backend flow and begins polling its progress endpoint. A start
// failure is terminal: the response carries the status message and no
// polling happens.
func (h *Handler) StartAnalysis(c *gin.Context) {
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

	// An absent or malformed body falls back to the simple drone flow.
	var body startAnalysisBody
	if err := c.ShouldBindJSON(&body); err != nil {
		body.Flow = "drone"
	}

	var poll *task.Poll
	switch body.Flow {
	case "deep":
		req := task.StartAnalysisRequest{
			DeviceID:                fmt.Sprintf("%d", device.ID),
			AnalysisType:            "deep_mining_analysis",
			IncludeCharts:           true,
			IncludeTables:           true,
			GenerateMultipleOutputs: true,
		}
		// The poll outlives this request, so it cannot run on the request
		// context.
		poll, err = h.deepPoller.Start(context.Background(),
			h.analysisURL+"/api/start-analysis", h.analysisURL+"/api/progress", req)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"status": "Connection error - Make sure the analysis server is running",
			})
			return
		}
	default:
		poll, err = h.dronePoller.Start(context.Background(),
			h.droneURL+"/api/start", h.droneURL+"/api/progress", nil)
		if err != nil {
			var nerr *task.NetworkError
			status := "Connection error"
			if errors.As(err, &nerr) && nerr.Err != nil {
				status = "Failed to start processing"
			}
			c.JSON(http.StatusBadGateway, gin.H{"status": status})
			return
		}
	}

	h.mu.Lock()
	h.polls[poll.ID()] = poll
	h.mu.Unlock()
	go h.evictPoll(poll)

	// Notify subscribers once the analysis lands.
	go func(deviceID int64, p *task.Poll) {
		<-p.Done()
		if p.Cancelled() || h.pool == nil {
			return
		}
		h.pool.Dispatch(notification.Job{DeviceID: deviceID, Event: notification.EventAnalysisComplete})
	}(device.ID, poll)

	c.JSON(http.StatusAccepted, gin.H{"taskId": poll.ID()})
}

// GetAnalysis handles GET /api/analysis/:taskId.
func (h *Handler) GetAnalysis(c *gin.Context) {
	h.mu.Lock()
	poll, ok := h.polls[c.Param("taskId")]
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}
	c.JSON(http.StatusOK, poll.Snapshot())
}

// CancelAnalysis handles DELETE /api/analysis/:taskId. All progress state
// resets; no partial result is retained.
func (h *Handler) CancelAnalysis(c *gin.Context) {
	h.mu.Lock()
	poll, ok := h.polls[c.Param("taskId")]
	if ok {
		delete(h.polls, c.Param("taskId"))
	}
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}
	poll.Cancel()
	c.Status(http.StatusNoContent)
}
