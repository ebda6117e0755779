package validator

import (
	"errors"
	"fmt"
	"strings"

	"trailhead/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

type DestinationValidator struct {
	validate *validator.Validate
}

func NewDestinationValidator() *DestinationValidator {
	v := validator.New()

	return &DestinationValidator{
		validate: v,
	}
}

func (v *DestinationValidator) Validate(d *model.Destination) error {
	if err := v.validate.Struct(d); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return v.validateContentRules(d)
}

func (v *DestinationValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   strings.ToLower(err.Field()),
			Message: messageForTag(err),
		})
	}

	return validationErrors
}

func messageForTag(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	case "mongodb":
		return "must be a valid object id"
	default:
		return fmt.Sprintf("failed on '%s' validation", err.Tag())
	}
}

func (v *DestinationValidator) validateContentRules(d *model.Destination) error {
	var errs ValidationErrors

	for id, p := range d.PlacesToVisit {
		if p.ID != id {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("places_to_visit.%s", id),
				Message: "entry id does not match its key",
			})
		}
	}
	for id, day := range d.Itinerary {
		if day.ID != id {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("itinerary.%s", id),
				Message: "entry id does not match its key",
			})
		}
		if day.Day < 1 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("itinerary.%s.day", id),
				Message: "day number must be at least 1",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
