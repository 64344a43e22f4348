package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/talkoren/shift-template-api/pkg/database"
	"github.com/talkoren/shift-template-api/pkg/models"
)

// ListTemplates returns all active templates as domain objects
func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := database.LoadActiveTemplates(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// GetTemplate returns a single template by id
func (h *Handler) GetTemplate(c *gin.Context) {
	id := c.Param("id")

	var record database.TemplateRecord
	if err := h.DB.Where("id = ?", id).First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found: " + id})
		return
	}
	c.JSON(http.StatusOK, record.ToModel())
}

// CreateTemplate persists a new job template
func (h *Handler) CreateTemplate(c *gin.Context) {
	var tpl models.JobTemplate
	if err := c.ShouldBindJSON(&tpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if tpl.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if tpl.MinHoursPerShift > tpl.MaxHoursPerShift {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_hours_per_shift cannot exceed max_hours_per_shift"})
		return
	}

	if tpl.ID == "" {
		tpl.ID = "tpl-" + uuid.NewString()
	}

	record := database.RecordFromModel(tpl)
	if err := h.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create template"})
		return
	}
	c.JSON(http.StatusOK, record.ToModel())
}

// UpdateTemplate replaces an existing template's constraint set
func (h *Handler) UpdateTemplate(c *gin.Context) {
	id := c.Param("id")

	var existing database.TemplateRecord
	if err := h.DB.Where("id = ?", id).First(&existing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found: " + id})
		return
	}

	var tpl models.JobTemplate
	if err := c.ShouldBindJSON(&tpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if tpl.MinHoursPerShift > tpl.MaxHoursPerShift {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_hours_per_shift cannot exceed max_hours_per_shift"})
		return
	}

	tpl.ID = id
	record := database.RecordFromModel(tpl)
	record.CreatedAt = existing.CreatedAt

	if err := h.DB.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update template"})
		return
	}
	c.JSON(http.StatusOK, record.ToModel())
}

// DeleteTemplate removes a template
func (h *Handler) DeleteTemplate(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Where("id = ?", id).Delete(&database.TemplateRecord{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}
