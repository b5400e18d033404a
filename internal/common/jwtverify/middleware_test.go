package jwtverify_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aburtocampos/taskmanager/internal/common/jwtverify"
	"github.com/aburtocampos/taskmanager/internal/common/logger"
)

const testSecret = "test-secret-that-is-long-enough-123"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func setupMiddleware(t *testing.T) (http.Handler, *jwtverify.Claims) {
	t.Helper()

	log, err := logger.New("", "test", "ERROR")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	var seen jwtverify.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := jwtverify.FromContext(r.Context())
		if !ok {
			t.Error("expected claims in request context")
		}
		seen = claims
		w.WriteHeader(http.StatusOK)
	})

	return jwtverify.Middleware(testSecret, log)(next), &seen
}

func do(t *testing.T, handler http.Handler, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func assertMessage(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != want {
		t.Errorf("expected message %q, got %v", want, body)
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	handler, _ := setupMiddleware(t)

	rec := do(t, handler, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	assertMessage(t, rec, "No token provided")
}

func TestMiddleware_NonBearerHeader(t *testing.T) {
	handler, _ := setupMiddleware(t)

	rec := do(t, handler, "Basic dXNlcjpwYXNz")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	assertMessage(t, rec, "No token provided")
}

func TestMiddleware_ValidToken(t *testing.T) {
	handler, seen := setupMiddleware(t)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"usr": "someone",
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})

	rec := do(t, handler, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if seen.UserID != "user-1" || seen.Username != "someone" {
		t.Errorf("unexpected claims: %+v", seen)
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	handler, _ := setupMiddleware(t)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"usr": "someone",
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
	})

	rec := do(t, handler, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	assertMessage(t, rec, "Invalid token")
}

func TestMiddleware_WrongSecret(t *testing.T) {
	handler, _ := setupMiddleware(t)

	token := signToken(t, "another-secret-that-is-long-enough", jwt.MapClaims{
		"sub": "user-1",
		"usr": "someone",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec := do(t, handler, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	assertMessage(t, rec, "Invalid token")
}

func TestMiddleware_TamperedToken(t *testing.T) {
	handler, _ := setupMiddleware(t)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"usr": "someone",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec := do(t, handler, "Bearer "+token+"x")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	assertMessage(t, rec, "Invalid token")
}

func TestMiddleware_WrongSigningMethod(t *testing.T) {
	handler, _ := setupMiddleware(t)

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user-1",
		"usr": "someone",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := do(t, handler, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	assertMessage(t, rec, "Invalid token")
}

func TestParseToken_MissingClaims(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := jwtverify.ParseToken(token, []byte(testSecret)); err == nil {
		t.Fatal("expected error for token without identity claims")
	}
}
