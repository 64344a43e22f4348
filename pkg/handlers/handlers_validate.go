package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talkoren/shift-template-api/pkg/models"
)

// CheckValidatePayload runs structural checks over a validation payload
// without touching the constraint engine. It returns an empty string when
// the payload is usable.
func CheckValidatePayload(input *models.ValidateInput) string {
	if input.Employee.ID == "" {
		return "employee.id is required"
	}
	if input.NewShift.ID == "" {
		return "new_shift.id is required"
	}
	if input.NewShift.DayOfWeek == "" {
		return "new_shift.day_of_week is required"
	}
	if input.NewShift.Duration <= 0 {
		return "new_shift.duration must be positive"
	}
	if input.Template == nil && input.TemplateID == "" {
		return "template or template_id is required"
	}

	seen := make(map[string]bool)
	for _, s := range input.Employee.CurrentWeekShifts {
		if seen[s.ID] {
			return "Duplicate shift ID: " + s.ID
		}
		seen[s.ID] = true
	}
	if seen[input.NewShift.ID] {
		return "Duplicate shift ID: " + input.NewShift.ID
	}

	return ""
}

// ValidatePayload handles the JSON-based structural validation request
func (h *Handler) ValidatePayload(c *gin.Context) {
	var input models.ValidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if msg := CheckValidatePayload(&input); msg != "" {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": msg,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"committed_shift_count": len(input.Employee.CurrentWeekShifts),
		},
	})
}
