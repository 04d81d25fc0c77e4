package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"cadastro/internal/models"
)

// HealthHandler answers liveness probes. It never touches the database.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// @Summary      Verifica o status da API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  models.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "OK", Message: "API is running"})
}

// Pinger reports whether a backing service answers.
type Pinger func(ctx context.Context) error

// ReadyHandler checks the dependencies the API cannot serve without.
type ReadyHandler struct {
	checks map[string]Pinger
}

func NewReadyHandler(checks map[string]Pinger) *ReadyHandler {
	return &ReadyHandler{checks: checks}
}

// @Summary      Verifica as dependências da API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /ready [get]
func (h *ReadyHandler) Ready(c *gin.Context) {
	status := http.StatusOK
	res := gin.H{}
	for name, ping := range h.checks {
		if err := ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			res[name] = "down"
			continue
		}
		res[name] = "up"
	}
	c.JSON(status, res)
}
