package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/internal/settings"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type SettingsHandler struct {
	uc     settings.UseCase
	logger logger.ZapLogger
}

func NewSettingsHandler(uc settings.UseCase, log logger.ZapLogger) *SettingsHandler {
	return &SettingsHandler{uc: uc, logger: log}
}

func (h *SettingsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/settings", h.getSettings)
	r.GET("/nav-links", h.listNavLinks)
	r.GET("/site-images", h.listImages)
}

func (h *SettingsHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.PUT("/settings", h.updateSettings)
	r.POST("/site-images", h.saveImage)
	r.DELETE("/site-images/:id", h.deleteImage)
	r.GET("/nav-links", h.listAllNavLinks)
	r.POST("/nav-links", h.saveNavLink)
	r.DELETE("/nav-links/:id", h.deleteNavLink)
}

func (h *SettingsHandler) getSettings(c *gin.Context) {
	s, err := h.uc.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) updateSettings(c *gin.Context) {
	var s model.SiteSettings
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	updated, err := h.uc.Update(c.Request.Context(), &s)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *SettingsHandler) listImages(c *gin.Context) {
	images, err := h.uc.ListImages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, images)
}

type imageReq struct {
	Key     string `json:"key"`
	URL     string `json:"url"`
	AltText string `json:"alt_text"`
}

func (h *SettingsHandler) saveImage(c *gin.Context) {
	var req imageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	img, err := h.uc.SaveImage(c.Request.Context(), req.Key, req.URL, req.AltText)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, img)
}

func (h *SettingsHandler) deleteImage(c *gin.Context) {
	if err := h.uc.DeleteImage(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SettingsHandler) listNavLinks(c *gin.Context) {
	links, err := h.uc.ListNavLinks(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, links)
}

func (h *SettingsHandler) listAllNavLinks(c *gin.Context) {
	links, err := h.uc.ListNavLinks(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, links)
}

func (h *SettingsHandler) saveNavLink(c *gin.Context) {
	var link model.NavLink
	if err := c.ShouldBindJSON(&link); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	saved, err := h.uc.SaveNavLink(c.Request.Context(), &link)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *SettingsHandler) deleteNavLink(c *gin.Context) {
	if err := h.uc.DeleteNavLink(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
