package statusserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin.Engine exposing tracker and hub over HTTP.
func NewRouter(tracker *Tracker, hub *Hub) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", handleHealthz)
	r.GET("/stream", hub.Subscribe)

	api := r.Group("/api/v1")
	{
		api.GET("/status", handleStatusAll(tracker))
		api.GET("/status/:runId", handleStatusOne(tracker))
	}

	return r
}

func handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func handleStatusAll(tracker *Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"runs": tracker.All()})
	}
}

func handleStatusOne(tracker *Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		runID := c.Param("runId")
		snap, ok := tracker.Latest(runID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown run id"})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}
