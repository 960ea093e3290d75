package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventpage/guestbook/internal/guestbook/repository"
)

var startTime = time.Now()

// Probe checks a single dependency.
type Probe func(ctx context.Context) error

// RegisterHealth registers /health (liveness) and /ready (readiness).
// The store is probed when it implements repository.Pinger; extra probes
// (e.g. the rate limiter's Redis) are checked by name.
func RegisterHealth(r *gin.Engine, store repository.Store, extra map[string]Probe) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		ready := true
		deps := map[string]bool{}

		storeOK := store != nil
		if p, ok := store.(repository.Pinger); ok && storeOK {
			storeOK = p.Ping(ctx) == nil
		}
		deps["store"] = storeOK
		ready = ready && storeOK

		for name, probe := range extra {
			ok := probe(ctx) == nil
			deps[name] = ok
			ready = ready && ok
		}

		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		body := gin.H{"status": status, "deps": deps, "uptime": time.Since(startTime).String()}
		if store != nil {
			body["backend"] = store.Name()
		}
		c.JSON(code, body)
	})
}
