package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return s
}

func organizerClaims(exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  "organizer",
		"role": "organizer",
		"exp":  exp.Unix(),
		"iat":  time.Now().Unix(),
	}
}

func protected() http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, err := GetSubjectFromContext(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Write([]byte(sub))
	})
	return Authenticate(testSecret)(Authorize(models.RoleOrganizer)(ok))
}

func TestAuthenticateAndAuthorize(t *testing.T) {
	valid := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), organizerClaims(time.Now().Add(time.Hour)))
	expired := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), organizerClaims(time.Now().Add(-time.Hour)))
	wrongKey := signToken(t, jwt.SigningMethodHS256, []byte("other"), organizerClaims(time.Now().Add(time.Hour)))
	viewer := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "guest", "role": "viewer", "exp": time.Now().Add(time.Hour).Unix(),
	})
	unknownRole := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "x", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid organizer", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"garbage", "Bearer not-a-token", http.StatusUnauthorized},
		{"viewer role", "Bearer " + viewer, http.StatusForbidden},
		{"unknown role", "Bearer " + unknownRole, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/players", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected().ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %q)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK && rec.Body.String() != "organizer" {
				t.Errorf("subject = %q", rec.Body.String())
			}
		})
	}
}

func TestAuthenticateRejectsNoneAlgorithm(t *testing.T) {
	token := signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, organizerClaims(time.Now().Add(time.Hour)))
	req := httptest.NewRequest(http.MethodPost, "/players", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
