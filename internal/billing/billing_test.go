package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var serviceDay = time.Date(2026, 5, 10, 11, 0, 0, 0, time.UTC)

func TestCalculate(t *testing.T) {
	yesterday := serviceDay.AddDate(0, 0, -1)
	sameDay := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	lines := []Line{
		{ServiceID: 1, Title: "Visit", UnitPrice: d("150000"), Quantity: 1},
		{ServiceID: 2, Title: "Injection", UnitPrice: d("33333.33"), Quantity: 3},
	}

	tests := []struct {
		name          string
		primary       *Coverage
		supplementary *Coverage
		insurance     string
		supp          string
		patient       string
	}{
		{"uninsured", nil, nil, "0", "0", "249999.99"},
		{"basic only", &Coverage{Percent: d("70"), Active: true}, nil, "174999.99", "0", "75000"},
		{
			"basic and supplementary",
			&Coverage{Percent: d("70"), Active: true},
			&Coverage{Percent: d("50"), Active: true},
			"174999.99", "37500", "37500",
		},
		{"expired basic", &Coverage{Percent: d("70"), Active: true, ExpiresAt: &yesterday}, nil, "0", "0", "249999.99"},
		{"expires on service day", &Coverage{Percent: d("10"), Active: true, ExpiresAt: &sameDay}, nil, "25000", "0", "224999.99"},
		{"inactive insurer", &Coverage{Percent: d("70"), Active: false}, nil, "0", "0", "249999.99"},
		{
			"supplementary without basic",
			nil,
			&Coverage{Percent: d("20"), Active: true},
			"0", "50000", "199999.99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Calculate(lines, tt.primary, tt.supplementary, serviceDay)

			assert.True(t, d("249999.99").Equal(b.Total), "total %s", b.Total)
			assert.True(t, d(tt.insurance).Equal(b.InsuranceShare), "insurance %s", b.InsuranceShare)
			assert.True(t, d(tt.supp).Equal(b.SupplementaryShare), "supplementary %s", b.SupplementaryShare)
			assert.True(t, d(tt.patient).Equal(b.PatientShare), "patient %s", b.PatientShare)
			assert.True(t, b.Total.Equal(b.InsuranceShare.Add(b.SupplementaryShare).Add(b.PatientShare)))
		})
	}
}

func TestCalculateLineTotals(t *testing.T) {
	b := Calculate([]Line{{ServiceID: 9, UnitPrice: d("12.50"), Quantity: 4}}, nil, nil, serviceDay)

	assert.Len(t, b.Lines, 1)
	assert.True(t, d("50").Equal(b.Lines[0].Total))
}

func TestCalculateEmpty(t *testing.T) {
	b := Calculate(nil, &Coverage{Percent: d("70"), Active: true}, nil, serviceDay)

	assert.True(t, b.Total.IsZero())
	assert.True(t, b.PatientShare.IsZero())
	assert.Empty(t, b.Lines)
}
