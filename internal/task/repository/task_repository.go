package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/aburtocampos/taskmanager/internal/common/db"
	commonerrors "github.com/aburtocampos/taskmanager/internal/common/errors"
	"github.com/aburtocampos/taskmanager/internal/task/domain"
)

var ErrTaskNotFound = errors.New("task not found")

type Repository interface {
	List(ctx context.Context, completed *bool) ([]domain.Task, error)
	FindByID(ctx context.Context, id int64) (domain.Task, error)
	Create(ctx context.Context, title, description string) (domain.Task, error)
	Update(ctx context.Context, task domain.Task) (domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) List(ctx context.Context, completed *bool) ([]domain.Task, error) {
	start := time.Now()

	query := `SELECT task_id, title, description, completed, created_at FROM tasks`
	args := []any{}
	if completed != nil {
		query += ` WHERE completed = $1`
		args = append(args, *completed)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, db.HandleExecError(err, "list tasks", start)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt); err != nil {
			return nil, db.HandleExecError(err, "list tasks", start)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleExecError(err, "list tasks", start)
	}

	db.MeasureQueryDuration("list tasks", start)
	return tasks, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.Task, error) {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`SELECT task_id, title, description, completed, created_at FROM tasks WHERE task_id = $1`,
		id,
	)

	var task domain.Task
	err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt)
	if err != nil {
		return domain.Task{}, db.HandleQueryError(err, ErrTaskNotFound, "find task by id", start)
	}

	db.MeasureQueryDuration("find task by id", start)
	return task, nil
}

// Create inserts the task and lets the store assign the sequence id, the
// completion default and the creation timestamp.
func (r *PgRepository) Create(ctx context.Context, title, description string) (domain.Task, error) {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO tasks (title, description)
		 VALUES ($1, $2)
		 RETURNING task_id, title, description, completed, created_at`,
		title,
		description,
	)

	var task domain.Task
	err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			db.MeasureQueryDuration("create task", start)
			return domain.Task{}, commonerrors.ErrTitleAlreadyExists
		}
		return domain.Task{}, db.HandleExecError(err, "create task", start)
	}

	db.MeasureQueryDuration("create task", start)
	return task, nil
}

func (r *PgRepository) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	start := time.Now()

	row := r.pool.QueryRow(
		ctx,
		`UPDATE tasks
		 SET title = $2, description = $3, completed = $4
		 WHERE task_id = $1
		 RETURNING task_id, title, description, completed, created_at`,
		task.ID,
		task.Title,
		task.Description,
		task.Completed,
	)

	var updated domain.Task
	err := row.Scan(&updated.ID, &updated.Title, &updated.Description, &updated.Completed, &updated.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			db.MeasureQueryDuration("update task", start)
			return domain.Task{}, commonerrors.ErrTitleAlreadyExists
		}
		return domain.Task{}, db.HandleQueryError(err, ErrTaskNotFound, "update task", start)
	}

	db.MeasureQueryDuration("update task", start)
	return updated, nil
}

func (r *PgRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1`, id)
	if err != nil {
		return db.HandleExecError(err, "delete task", start)
	}
	if tag.RowsAffected() == 0 {
		db.MeasureQueryDuration("delete task", start)
		return ErrTaskNotFound
	}

	db.MeasureQueryDuration("delete task", start)
	return nil
}
