package handler

import (
	"net/http"

	"quotepanel/internal/model"
	"quotepanel/internal/service"
	"quotepanel/pkg/response"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	configService service.ConfigService
}

func NewConfigHandler(configService service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

func (h *ConfigHandler) RegisterRoutes(router *gin.RouterGroup) {
	cfg := router.Group("/api/config")
	{
		cfg.GET("", h.GetConfig)
		cfg.PUT("", h.SaveConfig)
	}
}

// GetConfig returns the effective settings
// @Summary      Get config
// @Description  Returns stored settings merged over the shipped defaults
// @Tags         config
// @Produce      json
// @Success      200  {object}  response.Response{data=model.Config}
// @Router       /api/config [get]
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.configService.Load(c.Request.Context())))
}

// SaveConfig validates and stores new settings
// @Summary      Save config
// @Description  Persists settings and applies the new defaults to the in-progress quote
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        payload  body      model.Config  true  "Settings payload"
// @Success      200      {object}  response.Response{data=model.Config}
// @Failure      400      {object}  response.Response
// @Router       /api/config [put]
func (h *ConfigHandler) SaveConfig(c *gin.Context) {
	var cfg model.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	saved, err := h.configService.Save(c.Request.Context(), cfg)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, saved))
}
