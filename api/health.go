package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthProbe interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	probe HealthProbe
}

func NewHealthHandler(probe HealthProbe) *HealthHandler {
	return &HealthHandler{probe: probe}
}

func (h *HealthHandler) Register(router *gin.RouterGroup) {
	router.GET("/health", h.check)
}

// check reports both the gateway's own liveness and whether the upstream API
// answers its health endpoint.
func (h *HealthHandler) check(c *gin.Context) {
	if err := h.probe.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"gateway":  "ok",
			"upstream": "unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"gateway":  "ok",
		"upstream": "ok",
	})
}
