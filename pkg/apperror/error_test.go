package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		err  *AppError
		code int
	}{
		{BadRequest("x"), http.StatusBadRequest},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Forbidden("x"), http.StatusForbidden},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{TooManyRequests("x"), http.StatusTooManyRequests},
		{ServiceUnavailable("x"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.Code)
		assert.Equal(t, "x", tt.err.Error())
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, "Internal Server Error", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", NotFound("missing"))
	assert.Equal(t, http.StatusNotFound, CodeOf(wrapped))
	assert.Equal(t, http.StatusInternalServerError, CodeOf(errors.New("boom")))
}

func TestValidationCarriesDetails(t *testing.T) {
	err := Validation([]string{"email: must be a valid email address"})
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, []string{"email: must be a valid email address"}, err.Details)
}
