package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"fleetbook/pkg/logger"
	"fleetbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

// plateRegex accepts normalized plates: uppercase letters, digits and
// dashes, e.g. "FL-1234" or "12-345-67".
var plateRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{1,15}$`)

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

// FleetValidator validates vehicles and drivers against their structural
// constraints plus the plate format rule.
type FleetValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewFleetValidator(log *logger.Logger) *FleetValidator {
	v := validator.New()

	if err := v.RegisterValidation("plate", validatePlate); err != nil {
		log.Fatal("Failed to register plate validation", "error", err)
	}

	log.Info("Fleet validator initialized successfully")

	return &FleetValidator{
		validate: v,
		logger:   log,
	}
}

func validatePlate(fl validator.FieldLevel) bool {
	return plateRegex.MatchString(fl.Field().String())
}

func (v *FleetValidator) ValidateVehicle(vehicle *model.Vehicle) error {
	if err := v.validate.Struct(vehicle); err != nil {
		return v.translate(err)
	}
	return nil
}

func (v *FleetValidator) ValidateVehicleUpdate(update *model.VehicleUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		return v.translate(err)
	}
	return nil
}

func (v *FleetValidator) ValidateDriver(driver *model.Driver) error {
	if err := v.validate.Struct(driver); err != nil {
		return v.translate(err)
	}
	return nil
}

func (v *FleetValidator) ValidateDriverUpdate(update *model.DriverUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		return v.translate(err)
	}
	return nil
}

func (v *FleetValidator) translate(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var validationErrors ValidationErrors
	for _, fieldErr := range validationErrs {
		message := fieldErr.Error()

		switch fieldErr.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fieldErr.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", fieldErr.Field(), fieldErr.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", fieldErr.Field(), fieldErr.Param())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +972501234567)", fieldErr.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", fieldErr.Field(), fieldErr.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", fieldErr.Field())
		case "plate":
			message = fmt.Sprintf("%s must contain only uppercase letters, digits and dashes", fieldErr.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   fieldErr.Field(),
			Message: message,
		})
	}
	return validationErrors
}
