package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetErrorStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"sentinel", ErrProductNotFound, http.StatusNotFound},
		{"wrapped", fmt.Errorf("add to cart: %w", ErrOutOfStock), http.StatusConflict},
		{"checkout in progress", ErrCheckoutInProgress, http.StatusConflict},
		{"quantity limit", fmt.Errorf("%w: at most 99 per item", ErrInvalidQuantity), http.StatusBadRequest},
		{"validation", ValidationErrors{{Field: "email", Tag: "required"}}, http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetErrorStatusCode(tc.err))
		})
	}
}

func TestValidationErrors(t *testing.T) {
	v := ValidationErrors{{Field: "email", Tag: "email"}, {Field: "cvv", Tag: "len"}}

	assert.ErrorIs(t, v, ErrInvalidCheckout)
	assert.True(t, v.Has("cvv"))
	assert.False(t, v.Has("city"))
	assert.Contains(t, v.Error(), "email:email")
}
