package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateJWT(t *testing.T) {
	t.Parallel()

	t.Run("issued claims survive a verify round trip", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := GenerateJWT([]byte(testSecret), "a@x.com", "user")
		if err != nil {
			t.Fatalf("GenerateJWT() error: %v", err)
		}
		if tokenStr == "" {
			t.Fatal("GenerateJWT() returned an empty token")
		}

		claims, err := ParseJWT([]byte(testSecret), tokenStr)
		if err != nil {
			t.Fatalf("ParseJWT() error: %v", err)
		}
		if claims.Email != "a@x.com" {
			t.Errorf("Email = %q, want %q", claims.Email, "a@x.com")
		}
		if claims.Role != "user" {
			t.Errorf("Role = %q, want %q", claims.Role, "user")
		}
	})

	t.Run("expiry is ten hours out", func(t *testing.T) {
		t.Parallel()

		before := time.Now()
		tokenStr, err := GenerateJWT([]byte(testSecret), "exp@x.com", "")
		if err != nil {
			t.Fatalf("GenerateJWT() error: %v", err)
		}

		claims, err := ParseJWT([]byte(testSecret), tokenStr)
		if err != nil {
			t.Fatalf("ParseJWT() error: %v", err)
		}

		want := before.Add(TokenLifetime)
		got := time.Unix(claims.ExpiresAt, 0)
		if got.Before(want.Add(-time.Minute)) || got.After(want.Add(time.Minute)) {
			t.Errorf("ExpiresAt = %v, want about %v", got, want)
		}
	})

	t.Run("signing algorithm is HS256", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := GenerateJWT([]byte(testSecret), "alg@x.com", "")
		if err != nil {
			t.Fatalf("GenerateJWT() error: %v", err)
		}

		token, _, err := new(jwt.Parser).ParseUnverified(tokenStr, &Claims{})
		if err != nil {
			t.Fatalf("ParseUnverified() error: %v", err)
		}
		if token.Method.Alg() != "HS256" {
			t.Errorf("alg = %q, want %q", token.Method.Alg(), "HS256")
		}
	})
}

func TestParseJWT(t *testing.T) {
	t.Parallel()

	t.Run("wrong secret fails as invalid", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := GenerateJWT([]byte(testSecret), "a@x.com", "")
		if err != nil {
			t.Fatalf("GenerateJWT() error: %v", err)
		}

		if _, err := ParseJWT([]byte("some-other-secret"), tokenStr); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("ParseJWT() error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("malformed token fails as invalid", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseJWT([]byte(testSecret), "not.a.token"); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("ParseJWT() error = %v, want ErrTokenInvalid", err)
		}
	})

	t.Run("expired token fails as expired", func(t *testing.T) {
		t.Parallel()

		claims := &Claims{
			Email: "late@x.com",
			StandardClaims: jwt.StandardClaims{
				ExpiresAt: time.Now().Add(-time.Hour).Unix(),
			},
		}
		tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("signing test token: %v", err)
		}

		if _, err := ParseJWT([]byte(testSecret), tokenStr); !errors.Is(err, ErrTokenExpired) {
			t.Errorf("ParseJWT() error = %v, want ErrTokenExpired", err)
		}
	})

	t.Run("token signed with the wrong algorithm fails as invalid", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Email: "none@x.com"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatalf("signing test token: %v", err)
		}

		if _, err := ParseJWT([]byte(testSecret), tokenStr); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("ParseJWT() error = %v, want ErrTokenInvalid", err)
		}
	})
}
