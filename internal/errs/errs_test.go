package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
)

func TestValidationError_Is(t *testing.T) {
	err := fmt.Errorf("creating helper: %w", errs.Required("name"))

	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.NotErrorIs(t, err, errs.ErrNotFound)

	var ve *errs.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "name", ve.Field)
	assert.Equal(t, "name: is required", ve.Error())
}

func TestTransitionError_Is(t *testing.T) {
	err := &errs.TransitionError{Entity: "booking", From: "Completed", To: "Approved"}

	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Contains(t, err.Error(), `"Completed"`)
}

func TestNotFound(t *testing.T) {
	err := errs.NotFound("review", 7)

	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, "review 7: not found", err.Error())
}
