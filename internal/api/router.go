package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"rockfall-console-backend/internal/mw"
)

// NewRouter creates and configures the console's Gin router.
func NewRouter(h *Handler, rateLimitPerSec float64, cacheTTL time.Duration) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(rateLimitPerSec), 5)

	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/login", h.Login)
		api.POST("/logout", h.Logout)
		api.GET("/session", h.GetSession)

		api.GET("/devices", h.ListDevices)
		api.POST("/devices", h.AddDevice)
		api.PUT("/devices/:id/config", h.UpdateDeviceConfig)
		api.DELETE("/devices/:id", h.DeleteDevice)

		api.POST("/devices/:id/files", h.StartUpload)
		api.DELETE("/devices/:id/files/:index", h.DetachFile)
		api.GET("/uploads/:taskId", h.GetUpload)
		api.DELETE("/uploads/:taskId", h.CancelUpload)

		api.POST("/devices/:id/analysis", h.StartAnalysis)
		api.GET("/analysis/:taskId", h.GetAnalysis)
		api.DELETE("/analysis/:taskId", h.CancelAnalysis)

		api.GET("/dialogs", h.GetDialogs)
		api.POST("/dialogs/:name/open", h.OpenDialog)
		api.POST("/dialogs/:name/close", h.CloseDialog)

		api.GET("/profile", h.GetProfile)
		api.PUT("/profile", h.PutProfile)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", caching, h.GetVAPIDPublicKey)
	}

	return r
}
