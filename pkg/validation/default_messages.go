package validation

import (
	"fmt"
	"strings"
)

func DefaultMessage(field, tag string) string {
	field = strings.ToLower(field)

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "numeric":
		return fmt.Sprintf("%s must be numeric", field)
	case "min":
		return fmt.Sprintf("%s is below the minimum length or value", field)
	case "max":
		return fmt.Sprintf("%s exceeds the maximum length or value", field)
	case "len":
		return fmt.Sprintf("%s must have the exact required length", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to the minimum", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than the minimum", field)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to the maximum", field)
	case "lt":
		return fmt.Sprintf("%s must be less than the maximum", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "boolean":
		return fmt.Sprintf("%s must be true or false", field)
	case "datetime":
		return fmt.Sprintf("%s must be a valid date/time", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of the allowed values", field)
	case "json":
		return fmt.Sprintf("%s must be valid JSON", field)
	case "alphanum":
		return fmt.Sprintf("%s may only contain letters and digits", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
