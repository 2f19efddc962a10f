package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(http.StatusBadGateway, "upstream failed", cause)

	assert.Equal(t, "upstream failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "not here", NotFound("not here").Error())
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Conflict("Email already registered"))

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Status)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{BadRequest("x"), http.StatusBadRequest},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Forbidden("x"), http.StatusForbidden},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{Unavailable("x"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Status)
	}
}
