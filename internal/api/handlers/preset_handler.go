// internal/api/handlers/preset_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/talvik-analytics/shipkpi/internal/domain"
	"github.com/talvik-analytics/shipkpi/internal/service"
)

type PresetHandler struct {
	presets *service.PresetService
}

func NewPresetHandler(presets *service.PresetService) *PresetHandler {
	return &PresetHandler{presets: presets}
}

func (h *PresetHandler) List(c *gin.Context) {
	presets, err := h.presets.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list presets")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch presets"})
		return
	}
	c.JSON(http.StatusOK, presets)
}

func (h *PresetHandler) Save(c *gin.Context) {
	var preset domain.Preset
	if err := c.ShouldBindJSON(&preset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preset"})
		return
	}

	if err := h.presets.Save(c.Request.Context(), &preset); err != nil {
		log.Error().Err(err).Str("preset", preset.Name).Msg("failed to save preset")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preset"})
		return
	}
	c.JSON(http.StatusCreated, preset)
}

func (h *PresetHandler) Delete(c *gin.Context) {
	if err := h.presets.Delete(c.Request.Context(), c.Param("id")); err != nil {
		log.Error().Err(err).Str("id", c.Param("id")).Msg("failed to delete preset")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete preset"})
		return
	}
	c.Status(http.StatusNoContent)
}
