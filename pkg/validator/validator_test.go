package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name         string `json:"name" validate:"required,min=2"`
	StartTime    string `json:"start_time" validate:"required,clock"`
	Date         string `json:"date" validate:"omitempty,date"`
	NationalCode string `json:"national_code" validate:"required,national_code"`
	Gender       string `json:"gender" validate:"omitempty,oneof=M F"`
}

func TestValidateCustomTags(t *testing.T) {
	v := NewValidator()

	ok := sample{Name: "Dr", StartTime: "08:30", Date: "2026-01-31", NationalCode: "0012345678", Gender: "F"}
	require.NoError(t, v.Validate(&ok))

	bad := sample{Name: "D", StartTime: "24:00", Date: "31/01/2026", NationalCode: "12ab", Gender: "X"}
	err := v.Validate(&bad)
	require.Error(t, err)

	fields := v.FormatValidationErrors(err)
	assert.Equal(t, "name must be at least 2 characters", fields["name"])
	assert.Equal(t, "start_time must use HH:MM format", fields["start_time"])
	assert.Equal(t, "date must use YYYY-MM-DD format", fields["date"])
	assert.Equal(t, "national_code must be 10 digits", fields["national_code"])
	assert.Equal(t, "gender must be one of M F", fields["gender"])
}
