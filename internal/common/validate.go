package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMissingRequiredField is returned when a configuration field is empty
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrInvalidOption is returned when a configuration value is not offered
	ErrInvalidOption = errors.New("invalid option")
)

var validate = validator.New()

// fieldNames maps struct fields to the names shown to users
var fieldNames = map[string]string{
	"OutputFormat": "output format",
	"QueryTypes":   "query types",
	"Complexity":   "complexity",
	"CommentLevel": "comments",
}

// ValidateTestConfig checks that every field is populated with an offered value
func ValidateTestConfig(cfg *TestConfig) error {
	if cfg == nil {
		return fmt.Errorf("test config: %w", ErrMissingRequiredField)
	}

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("test config: %w", err)
	}

	var missing, invalid []string
	for _, fe := range verrs {
		name := fieldName(fe.StructNamespace())
		switch fe.Tag() {
		case "required", "min":
			missing = append(missing, name)
		default:
			invalid = append(invalid, fmt.Sprintf("%s=%v", name, fe.Value()))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequiredField, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: %s", ErrInvalidOption, strings.Join(invalid, ", "))
}

// fieldName turns "TestConfig.QueryTypes[0]" into "query types"
func fieldName(namespace string) string {
	field := namespace
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}
	if i := strings.Index(field, "["); i >= 0 {
		field = field[:i]
	}
	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
