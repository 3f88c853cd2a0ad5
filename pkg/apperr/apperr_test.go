package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusByKind(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{Validation, http.StatusBadRequest},
		{NotFound, http.StatusNotFound},
		{Conflict, http.StatusConflict},
		{InsufficientStock, http.StatusConflict},
		{Internal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, New(tc.kind, "X", "x").Status())
	}
}

func TestFrom(t *testing.T) {
	appErr := New(Conflict, CodeAlreadyVoided, "Venta ya está anulada")
	assert.Same(t, appErr, From(appErr))

	wrapped := fmt.Errorf("handler: %w", appErr)
	assert.Same(t, appErr, From(wrapped))

	// Unknown errors become internal and hide the cause from the message.
	cause := errors.New("pq: connection refused")
	internal := From(cause)
	assert.Equal(t, Internal, internal.Kind)
	assert.Equal(t, CodeInternal, internal.Code)
	assert.NotContains(t, internal.Message, "pq:")
	assert.ErrorIs(t, internal, cause)
}
