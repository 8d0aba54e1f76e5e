package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"

	"clinic-admin/pkg/response"

	"github.com/sirupsen/logrus"
)

const (
	AntiForgeryHeader    = "X-CSRF-Token"
	AntiForgeryFormField = "__RequestVerificationToken"

	maxProtectedBody = 1 << 20
)

// TokenVerifier checks a request verification token issued to subject.
type TokenVerifier interface {
	Verify(ctx context.Context, subject, token string) (bool, error)
}

type AntiForgeryMiddleware struct {
	verifier TokenVerifier
	log      *logrus.Logger
}

func NewAntiForgeryMiddleware(verifier TokenVerifier, log *logrus.Logger) *AntiForgeryMiddleware {
	return &AntiForgeryMiddleware{verifier: verifier, log: log}
}

// Protect rejects requests whose token does not match the one issued to the
// authenticated user. It must run after AuthMiddleware.Authenticate.
func (m *AntiForgeryMiddleware) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Invalid token")
			return
		}

		token := r.Header.Get(AntiForgeryHeader)
		if token == "" {
			var err error
			if token, err = bodyToken(w, r); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					response.Error(w, http.StatusRequestEntityTooLarge, "Request body too large", nil)
					return
				}
				response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
				return
			}
		}

		valid, err := m.verifier.Verify(r.Context(), userID.String(), token)
		if err != nil {
			m.log.Warnf("Failed to verify anti-forgery token: %+v", err)
			response.InternalServerError(w, "Failed to verify request token")
			return
		}
		if !valid {
			response.Forbidden(w, "Invalid or missing request verification token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// bodyToken reads the token from a form-encoded or JSON body and puts the body
// back so the handler can decode it again.
func bodyToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", nil
	}
	buf, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxProtectedBody))
	_ = r.Body.Close()
	if err != nil {
		return "", err
	}
	r.Body = io.NopCloser(bytes.NewReader(buf))

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		values, err := url.ParseQuery(string(buf))
		if err != nil {
			return "", nil
		}
		return values.Get(AntiForgeryFormField), nil
	}

	var body struct {
		Token string `json:"__RequestVerificationToken"`
	}
	if err := json.Unmarshal(buf, &body); err != nil {
		return "", nil
	}
	return body.Token, nil
}
