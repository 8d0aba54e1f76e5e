package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesSentinelThroughWrapping(t *testing.T) {
	sentinel := NotFound("doctor not found")
	wrapped := fmt.Errorf("load doctor: %w", sentinel.Wrap(errors.New("boom")))

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.False(t, errors.Is(wrapped, NotFound("department not found")))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestKindOfPlainErrorIsInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestFromDB(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "uq_doctors_national_code"}, KindConflict},
		{"foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "fk_doctor"}, KindValidation},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "chk_price"}, KindValidation},
		{"other pg", &pgconn.PgError{Code: "57014"}, KindInternal},
		{"plain", errors.New("connection reset"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDB("create doctor", tt.err)
			assert.Equal(t, tt.kind, KindOf(got))
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.NoError(t, FromDB("noop", nil))

	existing := Conflict("already there")
	assert.Same(t, existing, FromDB("op", existing))
}

func TestIsDuplicate(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_doctors_Medical_Council_Number"})
	assert.True(t, IsDuplicate(err, "medical_council_number"))
	assert.False(t, IsDuplicate(err, "national_code"))
	assert.False(t, IsDuplicate(errors.New("x"), "national_code"))
}

func TestWithFieldsCopies(t *testing.T) {
	base := Validation("validation failed")
	withFields := base.WithFields(map[string]string{"policy_number": "required"})

	assert.Nil(t, base.Fields)
	assert.Equal(t, "required", withFields.Fields["policy_number"])
	assert.True(t, errors.Is(withFields, base))
}
