// Package billing splits the cost of reception services between the basic
// insurer, the supplementary insurer and the patient.
package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Line is one priced service with its quantity.
type Line struct {
	ServiceID int
	Title     string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Coverage is an insurer's share as applied to one patient policy.
type Coverage struct {
	InsurerID int
	Percent   decimal.Decimal
	Active    bool
	ExpiresAt *time.Time
}

// ValidOn reports whether the policy covers services performed on day at.
func (c *Coverage) ValidOn(at time.Time) bool {
	if c == nil || !c.Active {
		return false
	}
	if c.ExpiresAt == nil {
		return true
	}
	y, m, d := at.Date()
	ey, em, ed := c.ExpiresAt.Date()
	return !time.Date(y, m, d, 0, 0, 0, 0, time.UTC).After(time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC))
}

// LineTotal is a priced line.
type LineTotal struct {
	ServiceID int             `json:"service_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// Breakdown is the result of Calculate. Total always equals the sum of the
// three shares.
type Breakdown struct {
	Lines              []LineTotal     `json:"lines"`
	Total              decimal.Decimal `json:"total"`
	InsuranceShare     decimal.Decimal `json:"insurance_share"`
	SupplementaryShare decimal.Decimal `json:"supplementary_share"`
	PatientShare       decimal.Decimal `json:"patient_share"`
}

// Calculate prices lines on day at. The supplementary insurer covers its
// percentage of what the basic insurer leaves over.
func Calculate(lines []Line, primary, supplementary *Coverage, at time.Time) Breakdown {
	b := Breakdown{Lines: make([]LineTotal, 0, len(lines))}
	total := decimal.Zero
	for _, l := range lines {
		lineTotal := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
		total = total.Add(lineTotal)
		b.Lines = append(b.Lines, LineTotal{
			ServiceID: l.ServiceID,
			Title:     l.Title,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Total:     lineTotal,
		})
	}

	b.Total = total.Round(2)
	b.InsuranceShare = share(b.Total, primary, at)
	b.SupplementaryShare = share(b.Total.Sub(b.InsuranceShare), supplementary, at)
	b.PatientShare = b.Total.Sub(b.InsuranceShare).Sub(b.SupplementaryShare)
	return b
}

func share(amount decimal.Decimal, c *Coverage, at time.Time) decimal.Decimal {
	if !c.ValidOn(at) || !c.Percent.IsPositive() {
		return decimal.Zero
	}
	percent := decimal.Min(c.Percent, hundred)
	return amount.Mul(percent).Div(hundred).Round(2)
}
