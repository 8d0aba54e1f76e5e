package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clinic-admin/config"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/usecase"
	"clinic-admin/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newAuthFixture(t *testing.T) (*AuthMiddleware, *jwt.JWTService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
	return NewAuthMiddleware(jwtService, client, quietLogger()), jwtService, mr
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	rec := httptest.NewRecorder()
	auth.Authenticate(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateAcceptsLiveToken(t *testing.T) {
	auth, jwtService, mr := newAuthFixture(t)
	userID := uuid.New()

	token, tokenID, err := jwtService.GenerateAccessToken(userID, "desk@clinic.test", entity.RoleIDReceptionist)
	require.NoError(t, err)
	require.NoError(t, mr.Set(usecase.AccessTokenKey(userID, tokenID), "1"))

	var seen uuid.UUID
	var role int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserIDFromContext(r.Context())
		role, _ = GetRoleIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	auth.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, seen)
	assert.Equal(t, entity.RoleIDReceptionist, role)
}

func TestAuthenticateRejectsRevokedToken(t *testing.T) {
	auth, jwtService, _ := newAuthFixture(t)

	token, _, err := jwtService.GenerateAccessToken(uuid.New(), "desk@clinic.test", entity.RoleIDAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	auth.Authenticate(okHandler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	auth, jwtService, mr := newAuthFixture(t)
	userID := uuid.New()

	token, tokenID, err := jwtService.GenerateRefreshToken(userID, "desk@clinic.test", entity.RoleIDAdmin)
	require.NoError(t, err)
	require.NoError(t, mr.Set(usecase.AccessTokenKey(userID, tokenID), "1"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	auth.Authenticate(okHandler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func withRole(r *http.Request, roleID int) *http.Request {
	return r.WithContext(WithPrincipal(r.Context(), Principal{UserID: uuid.New(), RoleID: roleID}))
}

func TestRequireAdminOrReceptionist(t *testing.T) {
	tests := []struct {
		name   string
		roleID int
		want   int
	}{
		{"admin", entity.RoleIDAdmin, http.StatusOK},
		{"receptionist", entity.RoleIDReceptionist, http.StatusOK},
		{"doctor", entity.RoleIDDoctor, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := withRole(httptest.NewRequest(http.MethodGet, "/", nil), tt.roleID)
			RequireAdminOrReceptionist(okHandler).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireRoleWithoutClaims(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireAdmin(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type fakeVerifier struct {
	subject, token string
	err            error
}

func (v *fakeVerifier) Verify(_ context.Context, subject, token string) (bool, error) {
	if v.err != nil {
		return false, v.err
	}
	return subject == v.subject && token == v.token, nil
}

func TestAntiForgeryProtect(t *testing.T) {
	userID := uuid.New()
	verifier := &fakeVerifier{subject: userID.String(), token: "tok-123"}
	protected := NewAntiForgeryMiddleware(verifier, quietLogger()).Protect(okHandler)

	newRequest := func(token string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/reception/insurance/save", nil)
		if token != "" {
			req.Header.Set(AntiForgeryHeader, token)
		}
		return req.WithContext(WithPrincipal(req.Context(), Principal{UserID: userID, RoleID: entity.RoleIDReceptionist}))
	}

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, newRequest("tok-123"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, newRequest("forged"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, newRequest(""))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	verifier.err = errors.New("redis down")
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, newRequest("tok-123"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAntiForgeryRequiresAuthenticatedUser(t *testing.T) {
	protected := NewAntiForgeryMiddleware(&fakeVerifier{}, quietLogger()).Protect(okHandler)

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type requestLog struct {
	method, route string
	status        int
}

type fakeRequestRecorder struct {
	requests []requestLog
}

func (f *fakeRequestRecorder) RecordHTTPRequest(method, route string, statusCode int, _ time.Duration) {
	f.requests = append(f.requests, requestLog{method, route, statusCode})
}

func TestMetricsMiddlewareLabelsByRouteTemplate(t *testing.T) {
	recorder := &fakeRequestRecorder{}
	router := mux.NewRouter()
	router.Use(NewMetricsMiddleware(recorder).Handle)
	router.HandleFunc("/doctors/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doctors/42", nil))

	require.Len(t, recorder.requests, 1)
	assert.Equal(t, requestLog{http.MethodGet, "/doctors/{id:[0-9]+}", http.StatusNotFound}, recorder.requests[0])
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/reception/insurance/save", nil)
	NewCORSMiddleware(nil).Handle(okHandler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), AntiForgeryHeader)
}

func TestCORSAllowList(t *testing.T) {
	cors := NewCORSMiddleware([]string{"https://desk.clinic.test/"})

	tests := []struct {
		name   string
		origin string
		want   string
	}{
		{"listed origin is echoed", "https://desk.clinic.test", "https://desk.clinic.test"},
		{"unlisted origin gets no grant", "https://evil.test", ""},
		{"same-origin request", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			cors.Handle(okHandler).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	for _, header := range []string{"Bearer", "Bearer   ", "Basic abc", "token-only"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		auth.Authenticate(okHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestAntiForgeryBodyTokenLeavesBodyReadable(t *testing.T) {
	userID := uuid.New()
	verifier := &fakeVerifier{subject: userID.String(), token: "tok-123"}

	tests := []struct {
		name        string
		contentType string
		body        string
		want        int
	}{
		{"form field", "application/x-www-form-urlencoded", "__RequestVerificationToken=tok-123&patient_id=7", http.StatusOK},
		{"json field", "application/json", `{"__RequestVerificationToken":"tok-123","patient_id":7}`, http.StatusOK},
		{"wrong form token", "application/x-www-form-urlencoded", "__RequestVerificationToken=nope&patient_id=7", http.StatusForbidden},
		{"no token", "application/json", `{"patient_id":7}`, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				raw, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				seen = string(raw)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/reception/insurance/save", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			req = req.WithContext(WithPrincipal(req.Context(), Principal{UserID: userID, RoleID: entity.RoleIDReceptionist}))
			rec := httptest.NewRecorder()
			NewAntiForgeryMiddleware(verifier, quietLogger()).Protect(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, tt.body, seen)
			}
		})
	}
}

func TestAntiForgeryRejectsOversizedBody(t *testing.T) {
	userID := uuid.New()
	protected := NewAntiForgeryMiddleware(&fakeVerifier{subject: userID.String(), token: "t"}, quietLogger()).Protect(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", maxProtectedBody+1)))
	req = req.WithContext(WithPrincipal(req.Context(), Principal{UserID: userID}))
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
