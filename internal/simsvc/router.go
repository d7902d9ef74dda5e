package simsvc

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rockfall-console-backend/internal/task"
)

// NewDroneRouter serves the simple drone-processing flow:
// POST /api/start and GET /api/progress.
func NewDroneRouter(s *Service) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	{
		api.POST("/start", func(c *gin.Context) {
			s.Begin("drone-1")
			c.JSON(http.StatusOK, gin.H{"message": "processing started"})
		})
		api.GET("/progress", Progress(s))
	}
	return r
}

// NewAnalysisRouter serves the deep-analysis flow:
// POST /api/start-analysis and GET /api/progress.
func NewAnalysisRouter(s *Service) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	{
		api.POST("/start-analysis", func(c *gin.Context) {
			var req task.StartAnalysisRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if req.DeviceID == "" {
				req.DeviceID = "drone-1"
			}
			s.Begin(req.DeviceID)
			c.JSON(http.StatusOK, gin.H{"message": "analysis started"})
		})
		api.GET("/progress", Progress(s))
	}
	return r
}

// Progress reports the current simulation state.
func Progress(s *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Progress())
	}
}
