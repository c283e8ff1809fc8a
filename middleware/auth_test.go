package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quickdel/utils"

	"github.com/dgrijalva/jwt-go"
)

const testSecret = "test-secret-key-for-unit-tests"

// guardedEcho returns the guard wrapped around a handler that records the
// claims it received.
func guardedEcho(t *testing.T, got **utils.Claims) http.Handler {
	t.Helper()
	auth := NewAuth([]byte(testSecret))
	return auth.Guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok {
			t.Fatal("ClaimsFrom() returned no claims inside a guarded handler")
		}
		*got = claims
		w.WriteHeader(http.StatusOK)
	}))
}

func unauthorizedBody(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	var body utils.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Message != "unauthorized access" {
		t.Errorf("message = %q, want %q", body.Message, "unauthorized access")
	}
}

func TestGuard(t *testing.T) {
	t.Parallel()

	t.Run("valid cookie passes claims to the handler", func(t *testing.T) {
		t.Parallel()

		token, err := utils.GenerateJWT([]byte(testSecret), "a@x.com", "user")
		if err != nil {
			t.Fatalf("GenerateJWT() error: %v", err)
		}

		var got *utils.Claims
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		rec := httptest.NewRecorder()
		guardedEcho(t, &got).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if got == nil || got.Email != "a@x.com" {
			t.Errorf("claims = %+v, want email a@x.com", got)
		}
	})

	t.Run("missing cookie is rejected", func(t *testing.T) {
		t.Parallel()

		var got *utils.Claims
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec := httptest.NewRecorder()
		guardedEcho(t, &got).ServeHTTP(rec, req)

		unauthorizedBody(t, rec)
		if got != nil {
			t.Error("handler ran despite missing cookie")
		}
	})

	t.Run("tampered token is rejected the same way", func(t *testing.T) {
		t.Parallel()

		token, err := utils.GenerateJWT([]byte("some-other-secret"), "a@x.com", "user")
		if err != nil {
			t.Fatalf("GenerateJWT() error: %v", err)
		}

		var got *utils.Claims
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		rec := httptest.NewRecorder()
		guardedEcho(t, &got).ServeHTTP(rec, req)

		unauthorizedBody(t, rec)
		if got != nil {
			t.Error("handler ran despite tampered cookie")
		}
	})

	t.Run("expired token is rejected the same way", func(t *testing.T) {
		t.Parallel()

		claims := &utils.Claims{
			Email: "late@x.com",
			StandardClaims: jwt.StandardClaims{
				ExpiresAt: time.Now().Add(-time.Hour).Unix(),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("signing test token: %v", err)
		}

		var got *utils.Claims
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		rec := httptest.NewRecorder()
		guardedEcho(t, &got).ServeHTTP(rec, req)

		unauthorizedBody(t, rec)
		if got != nil {
			t.Error("handler ran despite expired cookie")
		}
	})
}
