package validation

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/shopspring/decimal"
)

// Rule describes the declarative checks applied to a single field.
// All options are independent and additive; checks run in a fixed
// priority order (required, then type-specific bounds and formats,
// then custom) and the first failing check's message wins.
type Rule struct {
	Required    bool
	Min         *float64
	Max         *float64
	MinLength   int
	MaxLength   int
	Pattern     *regexp.Regexp
	PatternDesc string
	Email       bool
	URL         bool
	Positive    bool
	NonNegative bool
	// Custom returns a non-empty message to fail the field
	Custom func(value interface{}) string
}

// RuleSet maps field names to their rules. Fields present in the data
// but absent from the rule set are never validated.
type RuleSet map[string]Rule

// Result is the outcome of validating a data object against a rule set
type Result struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors"`
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	urlPattern   = regexp.MustCompile(`^https?://.+`)
)

// ValidateField evaluates a single value against a rule. It returns the
// error message for the first failing check, or the empty string when the
// value passes. Failures are data, never panics or Go errors.
func ValidateField(value interface{}, rule Rule, fieldName string) string {
	if rule.Required && isEmpty(value) {
		return fmt.Sprintf("%s is required", fieldName)
	}

	// Absence is not a format violation: an empty optional field passes
	// without running the type-specific checks.
	if isEmpty(value) {
		return ""
	}

	switch v := value.(type) {
	case string:
		if msg := validateString(v, rule, fieldName); msg != "" {
			return msg
		}
	default:
		if n, ok := toFloat(value); ok {
			if msg := validateNumber(n, rule, fieldName); msg != "" {
				return msg
			}
		} else if length, ok := sliceLen(value); ok {
			if msg := validateLength(length, rule, fieldName); msg != "" {
				return msg
			}
		}
	}

	if rule.Custom != nil {
		if msg := rule.Custom(value); msg != "" {
			return msg
		}
	}

	return ""
}

// ValidateForm evaluates every field named in rules against the
// corresponding entry of data and collects the failures. It is a pure
// function over its inputs.
func ValidateForm(data map[string]interface{}, rules RuleSet) Result {
	errors := make(map[string]string)
	for field, rule := range rules {
		if msg := ValidateField(data[field], rule, field); msg != "" {
			errors[field] = msg
		}
	}
	return Result{
		IsValid: len(errors) == 0,
		Errors:  errors,
	}
}

func validateString(v string, rule Rule, fieldName string) string {
	if rule.MinLength > 0 && len(v) < rule.MinLength {
		return fmt.Sprintf("%s must be at least %d characters", fieldName, rule.MinLength)
	}
	if rule.MaxLength > 0 && len(v) > rule.MaxLength {
		return fmt.Sprintf("%s must be at most %d characters", fieldName, rule.MaxLength)
	}
	if rule.Email && !emailPattern.MatchString(v) {
		return fmt.Sprintf("%s must be a valid email address", fieldName)
	}
	if rule.URL && !urlPattern.MatchString(v) {
		return fmt.Sprintf("%s must be a valid URL", fieldName)
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(v) {
		if rule.PatternDesc != "" {
			return fmt.Sprintf("%s must be %s", fieldName, rule.PatternDesc)
		}
		return fmt.Sprintf("%s format is invalid", fieldName)
	}
	return ""
}

func validateNumber(v float64, rule Rule, fieldName string) string {
	if rule.Min != nil && v < *rule.Min {
		return fmt.Sprintf("%s must be at least %s", fieldName, trimFloat(*rule.Min))
	}
	if rule.Max != nil && v > *rule.Max {
		return fmt.Sprintf("%s must be at most %s", fieldName, trimFloat(*rule.Max))
	}
	if rule.Positive && v <= 0 {
		return fmt.Sprintf("%s must be greater than 0", fieldName)
	}
	if rule.NonNegative && v < 0 {
		return fmt.Sprintf("%s must be 0 or greater", fieldName)
	}
	return ""
}

func validateLength(length int, rule Rule, fieldName string) string {
	if rule.Min != nil && float64(length) < *rule.Min {
		return fmt.Sprintf("%s must have at least %s items", fieldName, trimFloat(*rule.Min))
	}
	if rule.Max != nil && float64(length) > *rule.Max {
		return fmt.Sprintf("%s must have at most %s items", fieldName, trimFloat(*rule.Max))
	}
	return ""
}

// isEmpty reports whether a value counts as absent: nil or the empty
// string. Zero numbers are present values and still run numeric checks.
func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case decimal.Decimal:
		f, _ := v.Float64()
		return f, true
	}
	return 0, false
}

func sliceLen(value interface{}) (int, bool) {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len(), true
	}
	return 0, false
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%v", f)
	return s
}
