package models

import "time"

// Severity levels carried by validation results
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Employee represents a person who can be assigned shifts
type Employee struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	AssignedTemplate  *JobTemplate `json:"assigned_template,omitempty"`
	CurrentWeekShifts []Shift      `json:"current_week_shifts"`
}

// Shift represents a proposed or committed work shift
type Shift struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"` // "HH:MM" 24-hour
	EndTime   string    `json:"end_time"`   // "HH:MM" 24-hour
	Duration  float64   `json:"duration"`   // hours
	DayOfWeek string    `json:"day_of_week"`
}

// JobTemplate is the constraint contract governing which shifts are legal
// for employees assigned to it. Templates are immutable inputs to
// validation; the engine never mutates them.
type JobTemplate struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	MaxShiftsPerWeek     int      `json:"max_shifts_per_week"`
	MaxHoursPerShift     float64  `json:"max_hours_per_shift"`
	MinHoursPerShift     float64  `json:"min_hours_per_shift"`
	WeeklyHoursLimit     float64  `json:"weekly_hours_limit"`
	AllowedDays          []string `json:"allowed_days,omitempty"`
	ForbiddenDays        []string `json:"forbidden_days,omitempty"`
	IsFlexible           bool     `json:"is_flexible"`
	MaxConsecutiveDays   int      `json:"max_consecutive_days"`
	MinRestBetweenShifts float64  `json:"min_rest_between_shifts"` // hours
	CanWorkWeekends      bool     `json:"can_work_weekends"`
	CanWorkNights        bool     `json:"can_work_nights"`
	PreferredTimeSlots   []string `json:"preferred_time_slots,omitempty"`
	CanWorkOvertime      bool     `json:"can_work_overtime"`
	IsActive             bool     `json:"is_active"`
	IsDefault            bool     `json:"is_default"`
}

// ValidationResult represents one rule violation. The engine only emits
// violations, so IsValid is always false on returned entries.
type ValidationResult struct {
	IsValid    bool   `json:"is_valid"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// TimeSlot is one of the canonical periods a suggested shift can occupy
type TimeSlot struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Duration float64 `json:"duration"`
	Period   string  `json:"period"` // morning/afternoon/evening/night
}

// ShiftSuggestion is a scored (day, slot) proposal
type ShiftSuggestion struct {
	Day      string   `json:"day"`
	TimeSlot TimeSlot `json:"time_slot"`
	Score    int      `json:"score"`
	Reason   string   `json:"reason"`
}

// ValidateInput is the payload for the shift validation endpoint
type ValidateInput struct {
	Employee   Employee     `json:"employee"`
	NewShift   Shift        `json:"new_shift"`
	Template   *JobTemplate `json:"template,omitempty"`
	TemplateID string       `json:"template_id,omitempty"`
}

// ValidateResponse is the result envelope for shift validation
type ValidateResponse struct {
	Valid      bool               `json:"valid"`
	Violations []ValidationResult `json:"violations"`
}

// SuggestionInput is the payload for the smart suggestion endpoint
type SuggestionInput struct {
	Employee     Employee     `json:"employee"`
	Template     *JobTemplate `json:"template,omitempty"`
	TemplateID   string       `json:"template_id,omitempty"`
	WeekSchedule []Shift      `json:"week_schedule"`
}

// HoursInput is the payload for the weekly hours endpoint
type HoursInput struct {
	Employee   Employee     `json:"employee"`
	Template   *JobTemplate `json:"template,omitempty"`
	TemplateID string       `json:"template_id,omitempty"`
}

// HoursResponse summarizes an employee's weekly hour budget
type HoursResponse struct {
	WeeklyHours    float64 `json:"weekly_hours"`
	WeeklyLimit    float64 `json:"weekly_limit"`
	RemainingHours float64 `json:"remaining_hours"`
	LimitReached   bool    `json:"limit_reached"`
}

// CheckDayInput is the payload for the day eligibility endpoint
type CheckDayInput struct {
	Employee   Employee     `json:"employee"`
	Day        string       `json:"day"`
	Template   *JobTemplate `json:"template,omitempty"`
	TemplateID string       `json:"template_id,omitempty"`
}
