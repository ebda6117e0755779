package editor

import (
	"fmt"

	apperrors "trailhead/pkg/errors"
)

// Partial-update carriers. Nil means "leave the field alone"; a set pointer
// overwrites, including to the zero value.

type PlaceUpdate struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Highlights  *[]string `json:"highlights,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
}

type ActivityUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

type DayPlanUpdate struct {
	Day        *int      `json:"day,omitempty"`
	Title      *string   `json:"title,omitempty"`
	Activities *[]string `json:"activities,omitempty"`
	ImageURL   *string   `json:"image_url,omitempty"`
}

type FAQUpdate struct {
	Question *string `json:"question,omitempty"`
	Answer   *string `json:"answer,omitempty"`
}

func errMissingEntryFields(c Collection, fields ...string) error {
	return apperrors.Validation(
		fmt.Sprintf("entry for %s is missing required fields", c),
		map[string]any{
			"collection": string(c),
			"required":   fields,
		},
	)
}
