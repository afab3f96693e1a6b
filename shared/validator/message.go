package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const fallbackMessage = "{field} is invalid"

var messages = map[string]string{
	"required": "{field} is required",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be at least {param}",
	"max":      "{field} must be at most {param}",
	"oneof":    "{field} must be one of {param}",
	"email":    "{field} must be a valid email address",
	"e164":     "{field} must be a phone number in E.164 format",
	"date":     "{field} must be a calendar date in YYYY-MM-DD format",
	"gtfield":  "{field} must be after {param}",
	"money":    "{field} must have at most two decimal places",
}

// message renders the first failed rule of a validation error for API clients.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return err.Error()
	}

	first := valErrors[0]

	template, ok := messages[first.Tag()]
	if !ok {
		template = fallbackMessage
	}

	field := first.Field()
	if field == "" {
		field = "value"
	}

	return strings.NewReplacer("{field}", field, "{param}", first.Param()).Replace(template)
}
