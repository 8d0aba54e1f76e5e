package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHandlerExposesRecordedMetrics(t *testing.T) {
	c := NewCollector("clinic")
	c.RecordHTTPRequest(http.MethodGet, "/api/v1/admin/doctors", http.StatusOK, 20*time.Millisecond)
	c.RecordSlotCache(true)
	c.RecordSlotCache(false)
	c.RecordInsuranceSave("saved")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `clinic_http_requests_total{method="GET",route="/api/v1/admin/doctors",status_code="200"} 1`)
	assert.Contains(t, body, `clinic_slot_cache_lookups_total{result="hit"} 1`)
	assert.Contains(t, body, `clinic_slot_cache_lookups_total{result="miss"} 1`)
	assert.Contains(t, body, `clinic_insurance_saves_total{outcome="saved"} 1`)
}
