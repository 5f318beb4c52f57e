package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("Product"), http.StatusNotFound},
		{"duplicate is a bad request", AlreadyExists("User already exists"), http.StatusBadRequest},
		{"invalid input", InvalidInput("bad"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("Token is not valid"), http.StatusUnauthorized},
		{"forbidden", Forbidden("Access denied"), http.StatusForbidden},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("get order: %w", NotFound("Order")), http.StatusNotFound},
		{"bare sentinel", fmt.Errorf("lookup: %w", ErrForbidden), http.StatusForbidden},
		{"plain error", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Product not found", Message(NotFound("Product")))
	assert.Equal(t, "Server error", Message(errors.New("driver: connection reset")))
	assert.Equal(t, "Server error", Message(Internal(errors.New("boom"))))
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Internal(cause)

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
}
