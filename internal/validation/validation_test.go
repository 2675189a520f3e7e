package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/validation"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Count int    `json:"count" validate:"gte=1,lte=10"`
}

func TestStructReportsWireFieldNames(t *testing.T) {
	errs := validation.Struct(sample{Email: "not-an-email", Count: 0})
	require.Len(t, errs, 2)

	fields := []string{errs[0].Field, errs[1].Field}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "count")
}

func TestStructPassesValidInput(t *testing.T) {
	errs := validation.Struct(sample{Email: "a@b.co", Count: 5})
	assert.Nil(t, errs)
}

func TestErrorsAddAndOrNil(t *testing.T) {
	var errs validation.Errors
	assert.NoError(t, errs.OrNil())

	errs = errs.Add("starts_at", "must be before ends_at")
	require.Error(t, errs.OrNil())
	assert.Equal(t, "starts_at: must be before ends_at", errs.Error())
}

func TestIsDetectsFieldErrors(t *testing.T) {
	err := validation.Errors{{Field: "name", Message: "is required"}}.OrNil()
	assert.True(t, validation.Is(err))
	assert.False(t, validation.Is(assert.AnError))
}
