package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/aburtocampos/taskmanager/internal/auth/domain"
	authhttp "github.com/aburtocampos/taskmanager/internal/auth/http"
	"github.com/aburtocampos/taskmanager/internal/auth/repository"
	"github.com/aburtocampos/taskmanager/internal/auth/service"
	"github.com/aburtocampos/taskmanager/internal/common/clock"
	commoncrypto "github.com/aburtocampos/taskmanager/internal/common/crypto"
	commonerrors "github.com/aburtocampos/taskmanager/internal/common/errors"
	"github.com/aburtocampos/taskmanager/internal/common/jwtverify"
	"github.com/aburtocampos/taskmanager/internal/common/logger"
)

const testSecret = "test-secret-that-is-long-enough-123"

type mockUserRepo struct {
	createFunc         func(ctx context.Context, user domain.User) error
	findByUsernameFunc func(ctx context.Context, username string) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return domain.User{}, repository.ErrUserNotFound
}

func setupRouter(t *testing.T) (*mux.Router, *mockUserRepo) {
	t.Helper()

	repo := &mockUserRepo{}
	log, err := logger.New("", "test", "ERROR")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	svc := service.NewAuthService(
		repo,
		&commoncrypto.BcryptHasher{},
		commoncrypto.NewUUIDGenerator(),
		testSecret,
		10*time.Hour,
		clock.NewRealClock(),
		log,
	)

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	authhttp.NewHandler(svc, 5*time.Second, log).RegisterRoutes(api)
	return router, repo
}

func postJSON(t *testing.T, router *mux.Router, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestRegister_Success(t *testing.T) {
	router, repo := setupRouter(t)

	var created domain.User
	repo.createFunc = func(ctx context.Context, user domain.User) error {
		created = user
		return nil
	}

	rec := postJSON(t, router, "/api/auth/register", map[string]string{
		"username": "newuser",
		"password": "password123",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "User registered successfully" {
		t.Errorf("unexpected body: %v", body)
	}
	if created.PasswordHash == "password123" || created.PasswordHash == "" {
		t.Error("expected password to be stored hashed")
	}
}

func TestRegister_UserAlreadyExists(t *testing.T) {
	router, repo := setupRouter(t)

	repo.createFunc = func(ctx context.Context, user domain.User) error {
		return commonerrors.ErrUsernameAlreadyExists
	}

	rec := postJSON(t, router, "/api/auth/register", map[string]string{
		"username": "existing",
		"password": "password123",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "User already exists" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	router, _ := setupRouter(t)

	rec := postJSON(t, router, "/api/auth/login", map[string]string{
		"username": "someone",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Username and password are required" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	rec := postJSON(t, router, "/api/auth/login", map[string]string{
		"username": "ghost",
		"password": "password123",
	})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "User not found" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestLogin_InvalidPassword(t *testing.T) {
	router, repo := setupRouter(t)

	hasher := &commoncrypto.BcryptHasher{}
	hash, err := hasher.Hash("correct-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	repo.findByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		return domain.User{ID: "user-1", Username: username, PasswordHash: hash}, nil
	}

	rec := postJSON(t, router, "/api/auth/login", map[string]string{
		"username": "someone",
		"password": "wrong-password",
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Invalid credentials" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestLogin_Success(t *testing.T) {
	router, repo := setupRouter(t)

	hasher := &commoncrypto.BcryptHasher{}
	hash, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	repo.findByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		return domain.User{ID: "user-1", Username: username, PasswordHash: hash}, nil
	}

	rec := postJSON(t, router, "/api/auth/login", map[string]string{
		"username": "someone",
		"password": "password123",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	token, ok := body["token"].(string)
	if !ok || token == "" {
		t.Fatalf("expected token in body, got %v", body)
	}

	claims, err := jwtverify.ParseToken(token, []byte(testSecret))
	if err != nil {
		t.Fatalf("expected issued token to verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "someone" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestLogin_StoreError(t *testing.T) {
	router, repo := setupRouter(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		return domain.User{}, errors.New("connection refused")
	}

	rec := postJSON(t, router, "/api/auth/login", map[string]string{
		"username": "someone",
		"password": "password123",
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Error logging in" {
		t.Errorf("unexpected body: %v", body)
	}
}
