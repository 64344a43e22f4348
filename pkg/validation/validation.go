// Package validation implements the shift template constraint engine.
// Every operation is a pure function of its arguments: the engine reads
// employee, shift and template data supplied by callers and reports rule
// violations as data, never as errors.
package validation

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/talkoren/shift-template-api/pkg/models"
)

// DefaultWeekendDays is the weekend assumed when callers do not supply
// their own. Deployments with a Saturday/Sunday work week pass an
// explicit set to CanEmployeeWorkOnDayWithWeekend instead.
var DefaultWeekendDays = []string{"Friday", "Saturday"}

// ValidateShiftAssignment evaluates a proposed shift against a template's
// constraints and the employee's already-committed week. It returns one
// entry per violated rule; an empty slice means the assignment is clean.
// CurrentWeekShifts must describe the week before the new shift is added.
func ValidateShiftAssignment(employee models.Employee, newShift models.Shift, template models.JobTemplate) []models.ValidationResult {
	results := []models.ValidationResult{}

	// Shift cap. Fires when the employee is already at the cap, before
	// the new shift is even counted.
	if len(employee.CurrentWeekShifts) >= template.MaxShiftsPerWeek {
		results = append(results, models.ValidationResult{
			Severity: models.SeverityError,
			Message: fmt.Sprintf("Employee already has %d shifts this week (maximum %d per week)",
				len(employee.CurrentWeekShifts), template.MaxShiftsPerWeek),
			Suggestion: "Assign this shift to another employee or move it to next week",
		})
	}

	// Hard upper duration bound. CanWorkOvertime only relaxes suggestion
	// scoring, never this check.
	if newShift.Duration > template.MaxHoursPerShift {
		results = append(results, models.ValidationResult{
			Severity: models.SeverityError,
			Message: fmt.Sprintf("Shift duration %gh exceeds the maximum of %gh per shift",
				newShift.Duration, template.MaxHoursPerShift),
			Suggestion: "Shorten the shift or split it across two employees",
		})
	}

	if newShift.Duration < template.MinHoursPerShift {
		results = append(results, models.ValidationResult{
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("Shift duration %gh is below the minimum of %gh per shift",
				newShift.Duration, template.MinHoursPerShift),
			Suggestion: "Extend the shift to meet the template minimum",
		})
	}

	// A nil slice means the template carries no allowed-day restriction at
	// all; an empty non-nil slice is a restriction nothing satisfies.
	if template.AllowedDays != nil && !contains(template.AllowedDays, newShift.DayOfWeek) {
		results = append(results, models.ValidationResult{
			Severity:   models.SeverityError,
			Message:    fmt.Sprintf("%s is not an allowed working day for this template", newShift.DayOfWeek),
			Suggestion: "Pick one of the template's allowed days",
		})
	}

	// Evaluated independently of the allowed-day check; both can fire for
	// the same shift.
	if contains(template.ForbiddenDays, newShift.DayOfWeek) {
		results = append(results, models.ValidationResult{
			Severity:   models.SeverityError,
			Message:    fmt.Sprintf("%s is a forbidden working day for this template", newShift.DayOfWeek),
			Suggestion: "Pick a different day for this shift",
		})
	}

	currentHours := CalculateWeeklyHours(employee)
	newTotal := currentHours + newShift.Duration
	if newTotal > template.WeeklyHoursLimit {
		results = append(results, models.ValidationResult{
			Severity: models.SeverityError,
			Message: fmt.Sprintf("Weekly hours limit exceeded: employee has %gh scheduled, this shift brings the total to %gh (limit %gh)",
				currentHours, newTotal, template.WeeklyHoursLimit),
			Suggestion: "Reduce existing shifts or assign this shift next week",
		})
	}

	if run := longestConsecutiveRun(employee.CurrentWeekShifts, newShift.Date); run > template.MaxConsecutiveDays {
		results = append(results, models.ValidationResult{
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("This shift creates a run of %d consecutive working days (maximum %d)",
				run, template.MaxConsecutiveDays),
			Suggestion: "Schedule a rest day before adding this shift",
		})
	}

	// Rest check stops at the first conflicting shift, so at most one
	// rest violation is ever reported per call.
	newStart, newEnd := shiftBounds(newShift)
	for _, existing := range employee.CurrentWeekShifts {
		exStart, exEnd := shiftBounds(existing)
		gapAfter := math.Abs(newStart.Sub(exEnd).Hours())
		gapBefore := math.Abs(exStart.Sub(newEnd).Hours())
		if (gapAfter > 0 && gapAfter < template.MinRestBetweenShifts) ||
			(gapBefore > 0 && gapBefore < template.MinRestBetweenShifts) {
			results = append(results, models.ValidationResult{
				Severity: models.SeverityWarning,
				Message: fmt.Sprintf("Less than %gh of rest between this shift and the shift on %s",
					template.MinRestBetweenShifts, existing.DayOfWeek),
				Suggestion: "Leave a longer break between the two shifts",
			})
			return results
		}
	}

	return results
}

// CanEmployeeWorkOnDay reports whether a day is eligible under the
// template, assuming the default Friday/Saturday weekend.
func CanEmployeeWorkOnDay(employee models.Employee, day string, template *models.JobTemplate) bool {
	return CanEmployeeWorkOnDayWithWeekend(employee, day, template, DefaultWeekendDays)
}

// CanEmployeeWorkOnDayWithWeekend is CanEmployeeWorkOnDay with an explicit
// weekend-day set for deployments whose work week differs.
func CanEmployeeWorkOnDayWithWeekend(employee models.Employee, day string, template *models.JobTemplate, weekendDays []string) bool {
	if template == nil {
		return true
	}
	if len(template.AllowedDays) > 0 && !contains(template.AllowedDays, day) {
		return false
	}
	if contains(template.ForbiddenDays, day) {
		return false
	}
	if !template.CanWorkWeekends && contains(weekendDays, day) {
		return false
	}
	return true
}

// CalculateWeeklyHours sums the durations of the employee's committed week.
func CalculateWeeklyHours(employee models.Employee) float64 {
	var total float64
	for _, s := range employee.CurrentWeekShifts {
		total += s.Duration
	}
	return total
}

// HasReachedWeeklyLimit reports whether the employee is at or over the
// template's weekly hour cap.
func HasReachedWeeklyLimit(employee models.Employee, template models.JobTemplate) bool {
	return CalculateWeeklyHours(employee) >= template.WeeklyHoursLimit
}

// GetRemainingWeeklyHours returns how many hours the employee can still
// work this week, never negative.
func GetRemainingWeeklyHours(employee models.Employee, template models.JobTemplate) float64 {
	return math.Max(0, template.WeeklyHoursLimit-CalculateWeeklyHours(employee))
}

// GetTemplateByID looks a template up by id, returning nil when absent.
func GetTemplateByID(templateID string, templates []models.JobTemplate) *models.JobTemplate {
	for i := range templates {
		if templates[i].ID == templateID {
			return &templates[i]
		}
	}
	return nil
}

// longestConsecutiveRun returns the longest streak of calendar-adjacent
// dates across the committed shifts plus the proposed date.
func longestConsecutiveRun(shifts []models.Shift, newDate time.Time) int {
	dates := make([]time.Time, 0, len(shifts)+1)
	for _, s := range shifts {
		dates = append(dates, dayOf(s.Date))
	}
	dates = append(dates, dayOf(newDate))

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, streak := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == 24*time.Hour {
			streak++
		} else {
			streak = 1
		}
		if streak > longest {
			longest = streak
		}
	}
	return longest
}

// dayOf truncates a timestamp to its calendar date in UTC
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// shiftBounds combines a shift's date with its clock strings. End times
// are taken on the shift's own date; overnight spill-over is not modeled.
func shiftBounds(s models.Shift) (time.Time, time.Time) {
	return atClock(s.Date, s.StartTime), atClock(s.Date, s.EndTime)
}

func atClock(date time.Time, clock string) time.Time {
	t, _ := time.Parse("15:04", clock)
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
