package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/aburtocampos/taskmanager/internal/auth/service"
	commonhttp "github.com/aburtocampos/taskmanager/internal/common/http"
	"github.com/aburtocampos/taskmanager/internal/common/logger"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	auth    *service.AuthService
	timeout time.Duration
	log     *logger.Logger
}

func NewHandler(auth *service.AuthService, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{auth: auth, timeout: timeout, log: log}
}

// RegisterRoutes mounts the public credential endpoints on the given router.
func (h *Handler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	err := h.auth.Register(ctx, service.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			commonhttp.WriteError(w, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, service.ErrUsernameTaken):
			commonhttp.WriteMessage(w, http.StatusBadRequest, "User already exists")
		default:
			h.log.Errorf("register failed: %v", err)
			commonhttp.WriteError(w, http.StatusInternalServerError, "Error registering user")
		}
		return
	}

	commonhttp.WriteMessage(w, http.StatusCreated, "User registered successfully")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token, err := h.auth.Login(ctx, service.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			commonhttp.WriteError(w, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, service.ErrUserNotFound):
			commonhttp.WriteMessage(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			commonhttp.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			h.log.Errorf("login failed: %v", err)
			commonhttp.WriteError(w, http.StatusInternalServerError, "Error logging in")
		}
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}
