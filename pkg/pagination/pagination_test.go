package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, Limit: DefaultLimit}},
		{"?page=3&limit=5", Params{Page: 3, Limit: 5}},
		{"?page=2&page_size=15", Params{Page: 2, Limit: 15}},
		{"?page=-1&limit=1000", Params{Page: 1, Limit: MaxLimit}},
		{"?page=abc&limit=xyz", Params{Page: 1, Limit: DefaultLimit}},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/doctors"+tt.query, nil)
		assert.Equal(t, tt.want, FromRequest(r), tt.query)
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, New(1, 10).Offset())
	assert.Equal(t, 40, New(5, 10).Offset())
}
