package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talkoren/shift-template-api/pkg/database"
	"github.com/talkoren/shift-template-api/pkg/models"
	"github.com/talkoren/shift-template-api/pkg/validation"
)

// resolveTemplate returns the inline template when supplied, otherwise
// loads the referenced record. A nil return means the response has
// already been written.
func (h *Handler) resolveTemplate(c *gin.Context, inline *models.JobTemplate, templateID string) *models.JobTemplate {
	if inline != nil {
		return inline
	}
	if templateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "template or template_id is required"})
		return nil
	}

	var record database.TemplateRecord
	if err := h.DB.Where("id = ?", templateID).First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found: " + templateID})
		return nil
	}
	tpl := record.ToModel()
	return &tpl
}

// ValidateShift runs the template constraint checks for a proposed shift
func (h *Handler) ValidateShift(c *gin.Context) {
	var input models.ValidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl := h.resolveTemplate(c, input.Template, input.TemplateID)
	if tpl == nil {
		return
	}

	violations := validation.ValidateShiftAssignment(input.Employee, input.NewShift, *tpl)
	h.RecordUsage(c, 1, 0)

	c.JSON(http.StatusOK, models.ValidateResponse{
		Valid:      len(violations) == 0,
		Violations: violations,
	})
}

// SuggestShifts returns up to five scored open slots for the employee
func (h *Handler) SuggestShifts(c *gin.Context) {
	var input models.SuggestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl := h.resolveTemplate(c, input.Template, input.TemplateID)
	if tpl == nil {
		return
	}

	suggestions := validation.GenerateSmartSuggestions(input.Employee, *tpl, input.WeekSchedule)
	h.RecordUsage(c, 0, 1)

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// WeeklyHours reports the employee's hour budget against a template
func (h *Handler) WeeklyHours(c *gin.Context) {
	var input models.HoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl := h.resolveTemplate(c, input.Template, input.TemplateID)
	if tpl == nil {
		return
	}

	h.RecordUsage(c, 0, 0)

	c.JSON(http.StatusOK, models.HoursResponse{
		WeeklyHours:    validation.CalculateWeeklyHours(input.Employee),
		WeeklyLimit:    tpl.WeeklyHoursLimit,
		RemainingHours: validation.GetRemainingWeeklyHours(input.Employee, *tpl),
		LimitReached:   validation.HasReachedWeeklyLimit(input.Employee, *tpl),
	})
}

// CheckDay reports whether the employee may work a given weekday. The
// template is optional here: no template means no restrictions.
func (h *Handler) CheckDay(c *gin.Context) {
	var input models.CheckDayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Day == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day is required"})
		return
	}

	tpl := input.Template
	if tpl == nil && input.TemplateID != "" {
		tpl = h.resolveTemplate(c, nil, input.TemplateID)
		if tpl == nil {
			return
		}
	}

	h.RecordUsage(c, 0, 0)

	c.JSON(http.StatusOK, gin.H{
		"day":      input.Day,
		"can_work": validation.CanEmployeeWorkOnDay(input.Employee, input.Day, tpl),
	})
}
