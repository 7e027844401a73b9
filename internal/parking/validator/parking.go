package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"parq/pkg/model"
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

// ParkingValidator checks request DTOs at the transport boundary. The
// engine itself only enforces hours >= 1; the configurable upper cap
// (PARQ_MAX_RESERVATION_HOURS) lives here.
type ParkingValidator struct {
	validate *validator.Validate
	maxHours int
}

func NewParkingValidator(maxHours int) *ParkingValidator {
	return &ParkingValidator{
		validate: validator.New(),
		maxHours: maxHours,
	}
}

func (v *ParkingValidator) ValidateReservation(req *model.ReservationRequest) error {
	if err := v.check(req); err != nil {
		return err
	}
	if req.Hours > v.maxHours {
		return ValidationErrors{{
			Field:   "Hours",
			Message: fmt.Sprintf("must be at most %d", v.maxHours),
		}}
	}
	return nil
}

func (v *ParkingValidator) ValidatePayment(p *model.Payment) error {
	return v.check(p)
}

func (v *ParkingValidator) ValidateAddSpot(req *model.AddSpotRequest) error {
	return v.check(req)
}

func (v *ParkingValidator) ValidateAddZone(req *model.AddZoneRequest) error {
	return v.check(req)
}

func (v *ParkingValidator) check(target any) error {
	if err := v.validate.Struct(target); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: messageFor(err),
		})
	}

	return validationErrors
}

func messageFor(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "e164":
		return "must be a valid phone number in E.164 format"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}
