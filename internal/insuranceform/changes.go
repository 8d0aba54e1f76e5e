package insuranceform

import (
	"strconv"
	"strings"
	"time"
)

// Change is one edited field.
type Change struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

const dateLayout = "2006-01-02"

// DetectChanges compares the stored snapshot with a submission field by field.
// Strings are compared trimmed, dates by calendar day and ids by value.
func DetectChanges(stored, submitted Form) []Change {
	var changes []Change
	add := func(field, old, new string) {
		if old != new {
			changes = append(changes, Change{Field: field, Old: old, New: new})
		}
	}

	add("primary_insurer_id", idString(stored.PrimaryInsurerID), idString(submitted.PrimaryInsurerID))
	add("policy_number", strings.TrimSpace(stored.PolicyNumber), strings.TrimSpace(submitted.PolicyNumber))
	add("primary_expiry_date", dateString(stored.PrimaryExpiryDate), dateString(submitted.PrimaryExpiryDate))
	add("supplementary_insurer_id", idString(stored.SupplementaryInsurerID), idString(submitted.SupplementaryInsurerID))
	add("supplementary_policy_number", strings.TrimSpace(stored.SupplementaryPolicyNumber), strings.TrimSpace(submitted.SupplementaryPolicyNumber))
	add("supplementary_expiry_date", dateString(stored.SupplementaryExpiryDate), dateString(submitted.SupplementaryExpiryDate))
	add("notes", strings.TrimSpace(stored.Notes), strings.TrimSpace(submitted.Notes))
	return changes
}

func idString(id *int) string {
	if id == nil || *id == 0 {
		return ""
	}
	return strconv.Itoa(*id)
}

func dateString(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
