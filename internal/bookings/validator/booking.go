package validator

import (
	"errors"
	"fmt"
	"strings"

	"fleetbook/pkg/logger"
	"fleetbook/pkg/model"

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
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if err := validateWindow("PickupWindow", booking.PickupWindow); err != nil {
		return err
	}
	if err := validateWindow("DropoffWindow", booking.DropoffWindow); err != nil {
		return err
	}

	if booking.DropoffWindow.End.Before(booking.PickupWindow.Start) {
		return ValidationErrors{
			ValidationError{
				Field:   "DropoffWindow",
				Message: "dropoff window cannot end before the pickup window starts",
			},
		}
	}

	return nil
}

func validateWindow(field string, w model.TimeWindow) error {
	if w.Start.IsZero() || w.End.IsZero() {
		return ValidationErrors{
			ValidationError{
				Field:   field,
				Message: "start and end are required",
			},
		}
	}
	if !w.End.After(w.Start) {
		return ValidationErrors{
			ValidationError{
				Field:   field,
				Message: "end must be after start",
			},
		}
	}
	return nil
}

func (v *BookingValidator) ValidateUpdate(update *model.BookingUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if update.PickupWindow != nil {
		if err := validateWindow("PickupWindow", *update.PickupWindow); err != nil {
			return err
		}
	}
	if update.DropoffWindow != nil {
		if err := validateWindow("DropoffWindow", *update.DropoffWindow); err != nil {
			return err
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +972501234567)", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
