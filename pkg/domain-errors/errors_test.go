package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "claim type not found")))
	assert.Equal(t, CodeUnavailable, CodeOf(Wrap(errors.New("dial tcp: refused"), CodeUnavailable, "store unreachable")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain error")))
	assert.Equal(t, CodeInternal, CodeOf(nil))
}

func TestCodeSurvivesWrapping(t *testing.T) {
	inner := New(CodeValidation, "custodian is required")
	outer := fmt.Errorf("add entry: %w", inner)
	assert.Equal(t, CodeValidation, CodeOf(outer))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(cause, CodeUnavailable, "store unreachable")
	assert.ErrorIs(t, err, cause)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(New(CodeUnavailable, "store unreachable")))
	assert.False(t, IsRetryable(New(CodeNotFound, "missing")))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
		{Code("mystery"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToHTTPStatus(tt.code), string(tt.code))
	}
}
