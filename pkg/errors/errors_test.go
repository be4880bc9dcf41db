package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsIdentity(t *testing.T) {
	err := Clone(ErrNotFound, "datesheet not found")
	assert.Equal(t, "datesheet not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, stdErrors.Is(err, ErrNotFound))
	assert.False(t, stdErrors.Is(err, ErrValidation))
	assert.Equal(t, "resource not found", ErrNotFound.Message)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	raw := fmt.Errorf("boom")
	err := FromError(raw)
	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.ErrorIs(t, err, raw)

	wrapped := fmt.Errorf("outer: %w", Clone(ErrCapacityExceeded, "3 students unseated"))
	assert.Equal(t, "CAPACITY_EXCEEDED", FromError(wrapped).Code)
	assert.Nil(t, FromError(nil))
}
