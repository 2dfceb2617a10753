package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jasonfurnell/narrative-set-engine/internal/llm"
)

// HealthHandler reports service readiness. There is no database in this
// service (spec.md places persistence behind an external SetStore the core
// only calls through) so readiness reduces to "can we reach an LLM
// provider".
type HealthHandler struct {
	capability llm.Capability
}

func NewHealthHandler(capability llm.Capability) *HealthHandler {
	return &HealthHandler{capability: capability}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"llm": gin.H{
			"creative_model":   h.capability.Creative.Name,
			"mechanical_model": h.capability.Mechanical.Name,
		},
	})
}
