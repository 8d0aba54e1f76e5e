package usecase

import (
	"strings"
	"time"

	"clinic-admin/pkg/apperror"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var ErrInvalidDateFormat = apperror.Validation("invalid date format, use YYYY-MM-DD")

// actor turns the acting user id into the nullable audit column value.
func actor(userID uuid.UUID) *uuid.UUID {
	if userID == uuid.Nil {
		return nil
	}
	return &userID
}

// parseDate parses an optional YYYY-MM-DD value. Empty input yields nil.
func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	return &t, nil
}

// dateOr parses value, falling back to the start of fallback's day.
func dateOr(value string, fallback time.Time) (time.Time, error) {
	t, err := parseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		y, m, d := fallback.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, fallback.Location()), nil
	}
	return *t, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
