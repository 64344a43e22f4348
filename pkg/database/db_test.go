package database

import (
	"testing"

	"github.com/talkoren/shift-template-api/pkg/models"
)

func TestTemplateRecordRoundTrip(t *testing.T) {
	tpl := models.JobTemplate{
		ID:                 "tpl-x",
		Name:               "Weekend Crew",
		MaxShiftsPerWeek:   3,
		MaxHoursPerShift:   8,
		AllowedDays:        []string{"Friday", "Saturday"},
		ForbiddenDays:      []string{"Monday"},
		PreferredTimeSlots: []string{"evening", "night"},
		CanWorkWeekends:    true,
		IsActive:           true,
	}

	got := RecordFromModel(tpl)
	back := got.ToModel()

	if len(back.AllowedDays) != 2 || back.AllowedDays[0] != "Friday" || back.AllowedDays[1] != "Saturday" {
		t.Errorf("Expected allowed days to survive the round trip, got %v", back.AllowedDays)
	}
	if len(back.ForbiddenDays) != 1 || back.ForbiddenDays[0] != "Monday" {
		t.Errorf("Expected forbidden days to survive the round trip, got %v", back.ForbiddenDays)
	}
	if len(back.PreferredTimeSlots) != 2 {
		t.Errorf("Expected preferred slots to survive the round trip, got %v", back.PreferredTimeSlots)
	}
}

// A nil day set (no restriction) and an empty one (nothing allowed) mean
// different things to the validator and must stay distinct in storage.
func TestTemplateRecordNilVersusEmptyDaySet(t *testing.T) {
	nilSet := RecordFromModel(models.JobTemplate{ID: "tpl-nil"})
	if back := nilSet.ToModel(); back.AllowedDays != nil {
		t.Errorf("Expected a nil allowed set to stay nil, got %v", back.AllowedDays)
	}

	emptySet := RecordFromModel(models.JobTemplate{ID: "tpl-empty", AllowedDays: []string{}})
	back := emptySet.ToModel()
	if back.AllowedDays == nil || len(back.AllowedDays) != 0 {
		t.Errorf("Expected an empty allowed set to stay empty but non-nil, got %#v", back.AllowedDays)
	}
}
