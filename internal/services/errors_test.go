package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorHTTPStatus(t *testing.T) {
	tests := []struct {
		kind string
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindDuplicateContribution, http.StatusConflict},
		{KindNotReady, http.StatusBadRequest},
		{KindAlreadyDrawn, http.StatusConflict},
		{KindGroupExhausted, http.StatusBadRequest},
		{KindInvalidState, http.StatusBadRequest},
		{"UNKNOWN", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			err := NewDomainError(tt.kind, "boom")
			assert.Equal(t, tt.want, err.HTTPStatus())
		})
	}
}

func TestAsDomainError(t *testing.T) {
	derr := NewDomainError(KindNotReady, "not ready")
	wrapped := fmt.Errorf("run draw: %w", derr)

	got, ok := AsDomainError(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotReady, got.Kind)

	_, ok = AsDomainError(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("plain")))
	assert.False(t, isUniqueViolation(nil))
}
