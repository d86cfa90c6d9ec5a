package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "validation", err: NewValidationError("Invalid task ID"), want: KindValidation},
		{name: "wrapped not found", err: fmt.Errorf("lookup: %w", NewNotFoundError("Task not found")), want: KindNotFound},
		{name: "plain error", err: errors.New("boom"), want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindValidation))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(KindUnauthorized))
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindConflict))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindInternal))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError("failed to load task", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load task: connection reset", err.Error())
}
