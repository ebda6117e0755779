package validator

import (
	"errors"
	"testing"

	"trailhead/pkg/model"
)

func validDestination() *model.Destination {
	return &model.Destination{
		Name:        "Valley of Flowers",
		Description: "Alpine valley famed for its meadows",
		Duration:    "6 days",
		Difficulty:  "moderate",
		BestTime:    "July to September",
		Category:    "trekking",
		Slug:        "valley-of-flowers",
	}
}

func TestValidateAcceptsValidDestination(t *testing.T) {
	v := NewDestinationValidator()

	if err := v.Validate(validDestination()); err != nil {
		t.Errorf("valid destination rejected: %v", err)
	}
}

func TestValidateRejectsMissingRequiredFields(t *testing.T) {
	v := NewDestinationValidator()

	d := validDestination()
	d.Duration = ""
	d.Category = ""

	err := v.Validate(d)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 2 {
		t.Errorf("error count = %d, want 2: %v", len(verrs), verrs)
	}
}

func TestValidateRejectsShortName(t *testing.T) {
	v := NewDestinationValidator()

	d := validDestination()
	d.Name = "X"

	if err := v.Validate(d); err == nil {
		t.Error("expected validation error for one-character name")
	}
}

func TestValidateRejectsMismatchedEntryKey(t *testing.T) {
	v := NewDestinationValidator()

	d := validDestination()
	d.PlacesToVisit = map[string]model.Place{
		"key-a": {ID: "key-b", Name: "Ghangaria", Description: "Base village"},
	}

	if err := v.Validate(d); err == nil {
		t.Error("expected validation error for id/key mismatch")
	}
}

func TestValidateRejectsInvalidDayNumber(t *testing.T) {
	v := NewDestinationValidator()

	d := validDestination()
	d.Itinerary = map[string]model.DayPlan{
		"d1": {ID: "d1", Day: 0, Title: "Arrival"},
	}

	if err := v.Validate(d); err == nil {
		t.Error("expected validation error for day < 1")
	}
}
