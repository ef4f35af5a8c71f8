package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Flag target kind
	validate.RegisterValidation("flag_type", func(fl validator.FieldLevel) bool {
		t := fl.Field().String()
		validTypes := []string{"video", "account", "comment"}
		for _, v := range validTypes {
			if t == v {
				return true
			}
		}
		return false
	})

	// Flag lifecycle status
	validate.RegisterValidation("flag_status", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		validStatuses := []string{"open", "in_review", "resolved"}
		for _, v := range validStatuses {
			if s == v {
				return true
			}
		}
		return false
	})

	// Admin verdict on a flag
	validate.RegisterValidation("flag_outcome", func(fl validator.FieldLevel) bool {
		o := fl.Field().String()
		validOutcomes := []string{"accepted", "denied"}
		for _, v := range validOutcomes {
			if o == v {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "url":
			errors[field] = "Invalid URL format"
		case "flag_type":
			errors[field] = "Invalid type. Must be: video, account, or comment"
		case "flag_status":
			errors[field] = "Invalid status. Must be: open, in_review, or resolved"
		case "flag_outcome":
			errors[field] = "Invalid outcome. Must be: accepted or denied"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
