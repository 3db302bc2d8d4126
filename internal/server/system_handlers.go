package server

import (
	"context"
	"net/http"
	"time"

	"turfbook/internal/api"
	"turfbook/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger is a dependency checked by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// @Summary      Health check
// @Description  Reports "ok" when every dependency answers, "degraded" otherwise.
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Failure      503 {object} api.HealthResponse
// @Router       /health [get]
func Health(checks map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := api.HealthResponse{Status: "ok"}
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		for name, p := range checks {
			if err := p.Ping(ctx); err != nil {
				logger.WithError(err).Warn("health check failed", "component", name)
				resp.Checks[name] = "down"
				resp.Status = "degraded"
				continue
			}
			resp.Checks[name] = "up"
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, resp)
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
