package common

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// Validator collects every failing rule instead of stopping at the first one.
type Validator struct {
	errors []ValidationError
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		errors: make([]ValidationError, 0),
	}
}

// Field validates a field and collects errors
func (v *Validator) Field(fieldName string, value interface{}, rules ...ValidationRule) *Validator {
	for _, rule := range rules {
		if err := rule(fieldName, value); err != nil {
			v.errors = append(v.errors, *err)
		}
	}
	return v
}

// FieldIf applies the rules only when cond holds.
func (v *Validator) FieldIf(cond bool, fieldName string, value interface{}, rules ...ValidationRule) *Validator {
	if !cond {
		return v
	}
	return v.Field(fieldName, value, rules...)
}

// Errors returns all validation errors
func (v *Validator) Errors() []ValidationError {
	return v.errors
}

// Fields returns the names of the failing fields in the order they were checked.
func (v *Validator) Fields() []string {
	var out []string
	seen := make(map[string]struct{}, len(v.errors))
	for _, err := range v.errors {
		if _, ok := seen[err.Field]; ok {
			continue
		}
		seen[err.Field] = struct{}{}
		out = append(out, err.Field)
	}
	return out
}

// ValidationRule represents a single validation rule
type ValidationRule func(fieldName string, value interface{}) *ValidationError

// Required - Common validation rules
func Required(fieldName string, value interface{}) *ValidationError {
	if value == nil {
		return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
	}

	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
		}
	case *string:
		if v == nil || strings.TrimSpace(*v) == "" {
			return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
		}
	case fmt.Stringer:
		if strings.TrimSpace(v.String()) == "" {
			return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
		}
	}
	return nil
}

var mobileRegex = regexp.MustCompile(`^\+?\d{10,13}$`)

// MobileNumber accepts 10 digit Indian numbers with an optional country prefix.
// Empty values pass; pair it with Required when the field is mandatory.
func MobileNumber(fieldName string, value interface{}) *ValidationError {
	str, ok := value.(string)
	if !ok {
		return &ValidationError{Field: fieldName, Value: value, Message: "must be a string"}
	}
	compact := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(str))
	if compact == "" {
		return nil
	}
	if !mobileRegex.MatchString(compact) {
		return &ValidationError{Field: fieldName, Value: value, Message: "must be a 10 digit mobile number"}
	}
	return nil
}
