package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"inventory-tracker/internal/apperr"
)

func TestError(t *testing.T) {
	t.Run("Should match predefined error after wrapping", func(t *testing.T) {
		cause := errors.New("record not found")
		err := fmt.Errorf("get product: %w", apperr.ErrProductNotFound.WrapParent(cause))

		assert.ErrorIs(t, err, apperr.ErrProductNotFound)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, apperr.ErrIssuanceNotFound)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("Should not mutate predefined errors", func(t *testing.T) {
		_ = apperr.ErrValidation.WithDetails(apperr.FieldError{Field: "Name", Message: "field is required"})
		_ = apperr.ErrValidation.Msgf("changed")

		assert.Empty(t, apperr.ErrValidation.Details())
		assert.Equal(t, "validation error", apperr.ErrValidation.Msg())
	})

	t.Run("Should report available quantity on insufficient stock", func(t *testing.T) {
		err := apperr.InsufficientStock(4, 5)

		assert.Equal(t, apperr.KindInsufficientStock, err.Kind())
		assert.Equal(t, "INSUFFICIENT_STOCK", err.Code())
		assert.Contains(t, err.Msg(), "available 4")
	})

	t.Run("Should default to internal for foreign errors", func(t *testing.T) {
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(errors.New("boom")))
		assert.Equal(t, "Internal", apperr.KindOf(nil).String())
	})
}
