package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailPattern(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ana@school.edu", true},
		{"ana.romero+1@school.edu", true},
		{"not-an-email", false},
		{"@school.edu", false},
		{"ana@", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompiledPatterns.Email.MatchString(tt.email), tt.email)
	}
}

func TestJoinCodePattern(t *testing.T) {
	assert.True(t, CompiledPatterns.JoinCode.MatchString("A1B2C3"))
	assert.False(t, CompiledPatterns.JoinCode.MatchString("a1b2c3"))
	assert.False(t, CompiledPatterns.JoinCode.MatchString("A1B2C"))
	assert.False(t, CompiledPatterns.JoinCode.MatchString("A1B2C3D"))
}

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("Maths").WithMinLength(2).WithMaxLength(100).Validate())
	assert.False(t, NewStringValidation("M").WithMinLength(2).Validate())
	assert.False(t, NewStringValidation("").Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).Validate())
}

func TestScoreValidation(t *testing.T) {
	assert.True(t, NewScoreValidation(0).Validate())
	assert.True(t, NewScoreValidation(10).Validate())
	assert.True(t, NewScoreValidation(7.5).Validate())
	assert.False(t, NewScoreValidation(-0.5).Validate())
	assert.False(t, NewScoreValidation(10.5).Validate())
}
