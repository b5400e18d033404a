package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	commonhttp "github.com/aburtocampos/taskmanager/internal/common/http"
	"github.com/aburtocampos/taskmanager/internal/common/logger"
	"github.com/aburtocampos/taskmanager/internal/common/validate"
	"github.com/aburtocampos/taskmanager/internal/task/service"
)

type taskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

var taskMessages = map[string]string{
	"Title": "Title is required",
}

type Handler struct {
	tasks   *service.TaskService
	timeout time.Duration
	log     *logger.Logger
}

func NewHandler(tasks *service.TaskService, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{tasks: tasks, timeout: timeout, log: log}
}

// RegisterRoutes mounts the task endpoints on the given router; the caller
// is expected to have attached the bearer-token middleware to it.
func (h *Handler) RegisterRoutes(private *mux.Router) {
	private.HandleFunc("/tasks", h.list).Methods(http.MethodGet)
	private.HandleFunc("/tasks", h.create).Methods(http.MethodPost)
	private.HandleFunc("/tasks/{id}", h.getByID).Methods(http.MethodGet)
	private.HandleFunc("/tasks/{id}", h.update).Methods(http.MethodPut)
	private.HandleFunc("/tasks/{id}", h.delete).Methods(http.MethodDelete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var completed *bool
	if raw := r.URL.Query().Get("completed"); raw != "" {
		value := raw == "true"
		completed = &value
	}

	tasks, err := h.tasks.List(ctx, completed)
	if err != nil {
		h.log.Errorf("list tasks failed: %v", err)
		commonhttp.WriteError(w, http.StatusInternalServerError, "Error fetching tasks")
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tasks)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	task, err := h.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			commonhttp.WriteError(w, http.StatusNotFound, "Task not found")
			return
		}
		h.log.Errorf("get task failed: %v", err)
		commonhttp.WriteError(w, http.StatusInternalServerError, "Error getting task")
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, task)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create task failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if issues := validate.Struct(req, taskMessages); issues != nil {
		commonhttp.WriteValidationErrors(w, issues)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	task, err := h.tasks.Create(ctx, service.CreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.writeMutationError(w, err, "Error creating the task")
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, task)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	var req taskRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("update task failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if issues := validate.Struct(req, taskMessages); issues != nil {
		commonhttp.WriteValidationErrors(w, issues)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	task, err := h.tasks.Update(ctx, id, service.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.writeMutationError(w, err, "Error updating task")
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, task)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			commonhttp.WriteError(w, http.StatusNotFound, "Task not found")
			return
		}
		h.log.Errorf("delete task failed: %v", err)
		commonhttp.WriteError(w, http.StatusInternalServerError, "Error deleting task")
		return
	}

	commonhttp.WriteMessage(w, http.StatusOK, "Task deleted successfully")
}

func (h *Handler) taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, "Invalid task ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeMutationError(w http.ResponseWriter, err error, internalMessage string) {
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		commonhttp.WriteValidationErrors(w, []commonhttp.ValidationIssue{
			{Msg: "Title is required", Param: "title"},
		})
	case errors.Is(err, service.ErrTitleAlreadyExists):
		commonhttp.WriteError(w, http.StatusBadRequest, "The Title already exist")
	case errors.Is(err, service.ErrTaskNotFound):
		commonhttp.WriteError(w, http.StatusNotFound, "Task not found")
	default:
		h.log.Errorf("%s: %v", internalMessage, err)
		commonhttp.WriteError(w, http.StatusInternalServerError, internalMessage)
	}
}
