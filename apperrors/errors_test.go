package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIsMatchesOnKind(t *testing.T) {
	custom := NotFound("booking")
	assert.ErrorIs(t, custom, ErrNotFound)
	assert.NotErrorIs(t, custom, ErrPermissionDenied)

	wrapped := fmt.Errorf("while checking out: %w", ErrFolioClosed)
	assert.ErrorIs(t, wrapped, ErrFolioClosed)
}

func TestValidationHelpers(t *testing.T) {
	err := Validationf("unknown sector %q", "casino")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "casino")
}

func TestFrom(t *testing.T) {
	appErr := From(ErrDuplicateReceipt)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, "duplicate_receipt", appErr.Kind)

	wrapped := From(fmt.Errorf("outer: %w", ErrNoFolio))
	assert.Equal(t, "no_folio", wrapped.Kind)

	plain := From(errors.New("disk on fire"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, "internal", plain.Kind)
}
