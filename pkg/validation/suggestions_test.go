package validation

import (
	"testing"

	"github.com/talkoren/shift-template-api/pkg/models"
)

func TestGenerateSmartSuggestions_TopFiveSortedDescending(t *testing.T) {
	tpl := studentTemplate()
	emp := models.Employee{ID: "e1"}

	// 5 allowed days x 4 slots = 20 candidates before the cap
	suggestions := GenerateSmartSuggestions(emp, tpl, nil)

	if len(suggestions) != 5 {
		t.Fatalf("Expected exactly 5 suggestions, got %d", len(suggestions))
	}
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].Score > suggestions[i-1].Score {
			t.Errorf("Expected scores sorted descending, got %d before %d",
				suggestions[i-1].Score, suggestions[i].Score)
		}
	}
}

func TestGenerateSmartSuggestions_Scoring(t *testing.T) {
	tpl := studentTemplate()
	tpl.AllowedDays = []string{"Monday"}
	emp := models.Employee{ID: "e1"}

	suggestions := GenerateSmartSuggestions(emp, tpl, nil)
	if len(suggestions) != 4 {
		t.Fatalf("Expected one suggestion per slot, got %d", len(suggestions))
	}

	// morning: 100 +30 preferred +20 flexible +25 duration = 175
	// afternoon: same as morning = 175
	// evening: 100 +20 +25 = 145
	// night: 100 +20 -40 +25 = 105
	byPeriod := make(map[string]models.ShiftSuggestion)
	for _, s := range suggestions {
		byPeriod[s.TimeSlot.Period] = s
	}

	expected := map[string]int{"morning": 175, "afternoon": 175, "evening": 145, "night": 105}
	for period, want := range expected {
		got, ok := byPeriod[period]
		if !ok {
			t.Errorf("Expected a %s suggestion", period)
			continue
		}
		if got.Score != want {
			t.Errorf("Expected %s score %d, got %d", period, want, got.Score)
		}
	}

	if byPeriod["morning"].Reason != "Matches preferred time slot, Optimal shift duration, Flexible scheduling allowed, Compatible with work restrictions" {
		t.Errorf("Unexpected morning reason: %q", byPeriod["morning"].Reason)
	}
	if byPeriod["night"].Reason != "Optimal shift duration, Flexible scheduling allowed" {
		t.Errorf("Unexpected night reason: %q", byPeriod["night"].Reason)
	}
}

func TestGenerateSmartSuggestions_ScoreFloor(t *testing.T) {
	tpl := models.JobTemplate{
		ID:               "tpl-strict",
		MaxShiftsPerWeek: 5,
		MaxHoursPerShift: 4, // every 8h slot is over-duration
		MinHoursPerShift: 4,
		WeeklyHoursLimit: 20,
		AllowedDays:      []string{"Monday"},
		CanWorkOvertime:  false,
		CanWorkNights:    false,
	}
	emp := models.Employee{ID: "e1"}

	suggestions := GenerateSmartSuggestions(emp, tpl, nil)
	if len(suggestions) != 4 {
		t.Fatalf("Expected 4 suggestions, got %d", len(suggestions))
	}
	for _, s := range suggestions {
		if s.Score < 0 {
			t.Errorf("Expected scores clamped at 0, got %d for %s", s.Score, s.TimeSlot.Period)
		}
	}

	// night takes both the over-duration and the night penalty
	for _, s := range suggestions {
		if s.TimeSlot.Period == "night" && s.Score != 10 {
			t.Errorf("Expected the doubly-penalized night slot to score 10, got %d", s.Score)
		}
		if s.TimeSlot.Period == "night" && s.Reason != "Available slot" {
			t.Errorf("Expected the default reason for a slot with nothing going for it, got %q", s.Reason)
		}
	}
}

func TestGenerateSmartSuggestions_OverlapEndpointsOnly(t *testing.T) {
	tpl := studentTemplate()
	tpl.AllowedDays = []string{"Tuesday"}
	emp := models.Employee{ID: "e1"}

	// Partial overlap: the morning slot's 09:00 start falls inside this
	// shift, so morning is dropped.
	week := []models.Shift{shiftOn("2026-01-06", "08:00", "10:00", 2)}
	suggestions := GenerateSmartSuggestions(emp, tpl, week)
	for _, s := range suggestions {
		if s.TimeSlot.Period == "morning" {
			t.Errorf("Expected the morning slot to be dropped for an endpoint overlap")
		}
	}

	// Full containment: neither endpoint of the morning slot lands inside
	// a 10:00-12:00 shift, so the conflict goes undetected.
	week = []models.Shift{shiftOn("2026-01-06", "10:00", "12:00", 2)}
	suggestions = GenerateSmartSuggestions(emp, tpl, week)
	foundMorning := false
	for _, s := range suggestions {
		if s.TimeSlot.Period == "morning" {
			foundMorning = true
		}
	}
	if !foundMorning {
		t.Error("Expected a fully-contained shift to slip past the endpoint-only overlap test")
	}
}

func TestGenerateSmartSuggestions_OtherDaysDoNotConflict(t *testing.T) {
	tpl := studentTemplate()
	tpl.AllowedDays = []string{"Tuesday"}
	emp := models.Employee{ID: "e1"}

	// A Monday shift must not block Tuesday slots
	week := []models.Shift{shiftOn("2026-01-05", "08:00", "10:00", 2)}
	suggestions := GenerateSmartSuggestions(emp, tpl, week)
	if len(suggestions) != 4 {
		t.Errorf("Expected all 4 Tuesday slots to survive a Monday shift, got %d", len(suggestions))
	}
}
