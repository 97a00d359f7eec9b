package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Enrollment number pattern - 4 to 20 alphanumeric characters
	EnrollmentNumberPattern = `^[0-9A-Za-z]{4,20}$`

	// Join code pattern - 6 uppercase alphanumeric characters
	JoinCodePattern = `^[0-9A-Z]{6}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100

	// Score range for grading
	ScoreMin = 0.0
	ScoreMax = 10.0
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email            *regexp.Regexp
	EnrollmentNumber *regexp.Regexp
	JoinCode         *regexp.Regexp
}{
	Email:            regexp.MustCompile(EmailPattern),
	EnrollmentNumber: regexp.MustCompile(EnrollmentNumberPattern),
	JoinCode:         regexp.MustCompile(JoinCodePattern),
}

// StringValidation validates a string field
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// ScoreValidation validates a grading score
type ScoreValidation struct {
	Value float64
	Min   float64
	Max   float64
}

// NewScoreValidation creates a score validation with the standard grading range
func NewScoreValidation(value float64) *ScoreValidation {
	return &ScoreValidation{
		Value: value,
		Min:   ScoreMin,
		Max:   ScoreMax,
	}
}

// Validate performs validation
func (v *ScoreValidation) Validate() bool {
	return v.Value >= v.Min && v.Value <= v.Max
}
