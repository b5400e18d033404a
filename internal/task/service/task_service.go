package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	commonerrors "github.com/aburtocampos/taskmanager/internal/common/errors"
	"github.com/aburtocampos/taskmanager/internal/common/logger"
	"github.com/aburtocampos/taskmanager/internal/observability/metrics"
	"github.com/aburtocampos/taskmanager/internal/task/domain"
	"github.com/aburtocampos/taskmanager/internal/task/repository"
)

// TaskService is identity-agnostic: authentication happens upstream and any
// authenticated user may read or modify any task.
type TaskService struct {
	repo repository.Repository
	log  *logger.Logger
}

func NewTaskService(repo repository.Repository, log *logger.Logger) *TaskService {
	return &TaskService{repo: repo, log: log}
}

type CreateInput struct {
	Title       string
	Description string
}

type UpdateInput struct {
	Title       string
	Description string
	Completed   bool
}

// List returns all tasks, or only those matching the completion state when
// completed is non-nil. Order is store-natural.
func (s *TaskService) List(ctx context.Context, completed *bool) ([]domain.Task, error) {
	tasks, err := s.repo.List(ctx, completed)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "list_tasks_failed",
		}).Errorf("list tasks failed: %v", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"task_id": id,
			"action":  "get_task_failed",
		}).Errorf("get task failed: %v", err)
		return domain.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// Create validates the title before touching the store; the store assigns
// the id, the false completion flag and the creation timestamp.
func (s *TaskService) Create(ctx context.Context, input CreateInput) (domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return domain.Task{}, ErrTitleRequired
	}

	task, err := s.repo.Create(ctx, input.Title, input.Description)
	if err != nil {
		if errors.Is(err, commonerrors.ErrTitleAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"title":  input.Title,
				"action": "create_task_title_exists",
			}).Warn("create task failed: duplicate title")
			metrics.TaskTitleConflictsTotal.Inc()
			return domain.Task{}, ErrTitleAlreadyExists
		}
		s.log.WithFields(ctx, logger.Fields{
			"title":  input.Title,
			"action": "create_task_failed",
		}).Errorf("create task failed: %v", err)
		return domain.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	metrics.TasksCreatedTotal.Inc()

	s.log.WithFields(ctx, logger.Fields{
		"task_id": task.ID,
		"action":  "create_task_success",
	}).Info("task created")

	return task, nil
}

// Update replaces title, description and completion flag. These are replace
// semantics: a request that omits completed resets the flag to false.
func (s *TaskService) Update(ctx context.Context, id int64, input UpdateInput) (domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return domain.Task{}, ErrTitleRequired
	}

	task, err := s.repo.Update(ctx, domain.Task{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTaskNotFound):
			return domain.Task{}, ErrTaskNotFound
		case errors.Is(err, commonerrors.ErrTitleAlreadyExists):
			s.log.WithFields(ctx, logger.Fields{
				"task_id": id,
				"action":  "update_task_title_exists",
			}).Warn("update task failed: duplicate title")
			metrics.TaskTitleConflictsTotal.Inc()
			return domain.Task{}, ErrTitleAlreadyExists
		}
		s.log.WithFields(ctx, logger.Fields{
			"task_id": id,
			"action":  "update_task_failed",
		}).Errorf("update task failed: %v", err)
		return domain.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	metrics.TasksUpdatedTotal.Inc()

	s.log.WithFields(ctx, logger.Fields{
		"task_id": task.ID,
		"action":  "update_task_success",
	}).Info("task updated")

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"task_id": id,
			"action":  "delete_task_failed",
		}).Errorf("delete task failed: %v", err)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	metrics.TasksDeletedTotal.Inc()

	s.log.WithFields(ctx, logger.Fields{
		"task_id": id,
		"action":  "delete_task_success",
	}).Info("task deleted")

	return nil
}
