package middleware

import (
	"anicards-backend/internal/cache"
	"anicards-backend/internal/models"
	"anicards-backend/internal/store"

	"github.com/gin-gonic/gin"
)

// TrackRequests bumps the persistent analytics counter for a named
// metric and the in-memory frequency tracker for the concrete route.
// Both increments are best-effort and never block the request.
func TrackRequests(st store.Store, tracker *cache.FrequencyTracker, metric string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tracker.Hit(c.FullPath())
		go func(ctx *gin.Context) {
			_, _ = st.Incr(ctx, models.AnalyticsKey(metric))
		}(c.Copy())
		c.Next()
	}
}
