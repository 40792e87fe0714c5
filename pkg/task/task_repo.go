package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, task Task) (int, error)
	GetAll(ctx context.Context, userId int) ([]Task, error)
	GetByProject(ctx context.Context, userId int, projectId int) ([]Task, error)
	FindById(ctx context.Context, userId int, id int) (*Task, error)
	Update(ctx context.Context, userId int, task Task) (bool, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const taskColumns = `id, project_id, name, description, status, priority,
	estimated_hours, actual_hours, start_date, due_date, tags, estimated_cost, actual_cost,
	created_at, updated_at`

func (r *RepoImpl) Store(ctx context.Context, userId int, task Task) (int, error) {
	tags, err := json.Marshal(task.Tags)
	if err != nil {
		err := fmt.Errorf("could not marshal tags: %w", err)
		log.Error(err)
		return 0, err
	}

	query := `INSERT INTO tasks (
			user_id, project_id, name, description, status, priority,
			estimated_hours, actual_hours, start_date, due_date, tags, estimated_cost, actual_cost,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		RETURNING id`

	now := time.Now().UTC()
	var id int
	err = r.db.QueryRowContext(ctx, query,
		userId,
		task.ProjectID,
		task.Name,
		task.Description,
		task.Status,
		task.Priority,
		task.EstimatedHours,
		task.ActualHours,
		nullableTime(task.StartDate),
		nullableTime(task.DueDate),
		tags,
		task.EstimatedCost,
		task.ActualCost,
		now,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store task: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`, taskColumns)
	return r.queryTasks(ctx, query, userId)
}

func (r *RepoImpl) GetByProject(ctx context.Context, userId int, projectId int) ([]Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE user_id = $1 AND project_id = $2 ORDER BY created_at DESC`, taskColumns)
	return r.queryTasks(ctx, query, userId, projectId)
}

func (r *RepoImpl) queryTasks(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query tasks: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return tasks, nil
}

func (r *RepoImpl) FindById(ctx context.Context, userId int, id int) (*Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE user_id = $1 AND id = $2`, taskColumns)

	rows, err := r.db.QueryContext(ctx, query, userId, id)
	if err != nil {
		err := fmt.Errorf("could not query task: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	task, err := scanTask(rows)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	return &task, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, task Task) (bool, error) {
	tags, err := json.Marshal(task.Tags)
	if err != nil {
		err := fmt.Errorf("could not marshal tags: %w", err)
		log.Error(err)
		return false, err
	}

	query := `UPDATE tasks SET
			project_id = $1, name = $2, description = $3, status = $4, priority = $5,
			estimated_hours = $6, actual_hours = $7, start_date = $8, due_date = $9, tags = $10,
			estimated_cost = $11, actual_cost = $12, updated_at = $13
		WHERE id = $14 AND user_id = $15`

	result, err := r.db.ExecContext(ctx, query,
		task.ProjectID,
		task.Name,
		task.Description,
		task.Status,
		task.Priority,
		task.EstimatedHours,
		task.ActualHours,
		nullableTime(task.StartDate),
		nullableTime(task.DueDate),
		tags,
		task.EstimatedCost,
		task.ActualCost,
		time.Now().UTC(),
		task.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update task: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete task: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func scanTask(rows *sql.Rows) (Task, error) {
	var task Task
	var tags []byte
	var description sql.NullString
	var startDate, dueDate sql.NullTime
	if err := rows.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Name,
		&description,
		&task.Status,
		&task.Priority,
		&task.EstimatedHours,
		&task.ActualHours,
		&startDate,
		&dueDate,
		&tags,
		&task.EstimatedCost,
		&task.ActualCost,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return Task{}, fmt.Errorf("could not scan task: %w", err)
	}
	if err := json.Unmarshal(tags, &task.Tags); err != nil {
		return Task{}, fmt.Errorf("could not unmarshal tags: %w", err)
	}
	if description.Valid {
		task.Description = description.String
	}
	if startDate.Valid {
		task.StartDate = startDate.Time
	}
	if dueDate.Valid {
		task.DueDate = dueDate.Time
	}
	return task, nil
}
