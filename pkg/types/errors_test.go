package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorAddFirstFailureWins(t *testing.T) {
	ve := NewValidationError(KindCourse)
	ve.Add("name", "Course name is required")
	ve.Add("name", "Course name must be at least 2 characters")

	assert.Equal(t, "Course name is required", ve.Fields["name"])
	assert.True(t, ve.Has("name"))
	assert.False(t, ve.Has("email"))
}

func TestValidationErrorErr(t *testing.T) {
	t.Run("empty returns untyped nil", func(t *testing.T) {
		ve := NewValidationError(KindCourse)
		assert.NoError(t, ve.Err())
	})

	t.Run("nil receiver returns nil", func(t *testing.T) {
		var ve *ValidationError
		assert.NoError(t, ve.Err())
	})

	t.Run("field failure returns error", func(t *testing.T) {
		ve := NewValidationError(KindCourse)
		ve.Add("name", "Course name is required")
		assert.Error(t, ve.Err())
	})
}

func TestValidationErrorIs(t *testing.T) {
	tests := []struct {
		name          string
		fields        map[string]string
		duplicate     string
		wantDuplicate bool
	}{
		{
			name:   "field failure matches ErrValidation only",
			fields: map[string]string{"name": "Course name is required"},
		},
		{
			name:          "duplicate matches both",
			fields:        map[string]string{},
			duplicate:     "This course already exists",
			wantDuplicate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Kind: KindCourse, Fields: tt.fields, Duplicate: tt.duplicate}
			wrapped := fmt.Errorf("create course: %w", ve)

			assert.ErrorIs(t, wrapped, ErrValidation)
			assert.Equal(t, tt.wantDuplicate, errors.Is(wrapped, ErrDuplicate))
			assert.NotErrorIs(t, wrapped, ErrInUse)

			var got *ValidationError
			assert.True(t, errors.As(wrapped, &got))
			assert.Equal(t, tt.duplicate, got.Duplicate)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	ve := NewValidationError(KindRegistration)
	ve.Add("name", "Student name is required")
	ve.Add("email", "Please enter a valid email address")
	ve.Duplicate = "This student is already registered for this offering"

	assert.Equal(t,
		"invalid registration: email: Please enter a valid email address; "+
			"name: Student name is required; "+
			"This student is already registered for this offering",
		ve.Error())
}
