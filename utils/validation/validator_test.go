package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `form:"name" validate:"required"`
	Count string `form:"count" validate:"required,integer"`
	Extra string `form:"extra" validate:"omitempty,integer"`
}

func TestFieldErrorsSplitsMissingFromInvalid(t *testing.T) {
	v := NewValidator()

	err := v.ValidateStruct(&sample{Count: "three", Extra: "4"})
	require.Error(t, err)

	missing, invalid := FieldErrors(err)
	assert.Equal(t, []string{"name"}, missing)
	assert.Equal(t, []string{"count"}, invalid)
}

func TestIntegerTag(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateStruct(&sample{Name: "a", Count: "-12"}))
	assert.Error(t, v.ValidateStruct(&sample{Name: "a", Count: "1.5"}))
	assert.Error(t, v.ValidateStruct(&sample{Name: "a", Count: "7", Extra: "x"}))
}

func TestSanitizeStruct(t *testing.T) {
	s := sample{Name: "  hello\x00 ", Count: " 3 "}
	SanitizeStruct(&s)

	assert.Equal(t, "hello", s.Name)
	assert.Equal(t, "3", s.Count)
}

func TestIntegerTagRejectsOutOfRange(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateStruct(&sample{Name: "a", Count: "2147483647"}))
	err := v.ValidateStruct(&sample{Name: "a", Count: "99999999999999999999"})
	require.Error(t, err)
	_, invalid := FieldErrors(err)
	assert.Equal(t, []string{"count"}, invalid)

	_, err = ParseInt("2147483648")
	assert.Error(t, err)
	n, err := ParseInt("+7")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.ValidateStruct(&sample{Count: "x", Extra: "1e3"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{
		"name":  "name is required",
		"count": "count must be a whole number",
		"extra": "extra must be a whole number",
	}, FormatValidationErrors(err))

	assert.Empty(t, FormatValidationErrors(nil))
}
