package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{code: ErrCodeNotFound, want: http.StatusNotFound},
		{code: ErrCodeIntegrationMissing, want: http.StatusNotFound},
		{code: ErrCodeIdentityMismatch, want: http.StatusUnauthorized},
		{code: ErrCodeNotReturnable, want: http.StatusBadRequest},
		{code: ErrCodeUpstreamFailure, want: http.StatusInternalServerError},
		{code: ErrCodeAlreadyExists, want: http.StatusConflict},
		{code: ErrCodeUnauthorized, want: http.StatusUnauthorized},
		{code: ErrCodeInvalidInput, want: http.StatusBadRequest},
		{code: "SOMETHING_NEW", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Resource not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Nil(t, resp.Data)
}

func TestNewSuccessResponseWithTotal(t *testing.T) {
	resp := NewSuccessResponseWithTotal([]string{"a", "b"}, 2)

	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.Equal(t, int64(2), resp.Meta.Total)
}
