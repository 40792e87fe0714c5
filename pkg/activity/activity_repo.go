package activity

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, activity Activity) (int, error)
	GetByTask(ctx context.Context, userId int, taskId int) ([]Activity, error)
	FindById(ctx context.Context, userId int, id int) (*Activity, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
	SumEstimatedCost(ctx context.Context, userId int, taskIds []int) (float64, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const activityColumns = `id, task_id, name, description, estimated_cost, actual_cost,
	estimated_hours, actual_hours, status, assigned_to, date, created_at, updated_at`

func (r *RepoImpl) Store(ctx context.Context, userId int, activity Activity) (int, error) {
	query := `INSERT INTO activities (
			user_id, task_id, name, description, estimated_cost, actual_cost,
			estimated_hours, actual_hours, status, assigned_to, date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING id`

	now := time.Now().UTC()
	var id int
	err := r.db.QueryRowContext(ctx, query,
		userId,
		activity.TaskID,
		activity.Name,
		activity.Description,
		activity.EstimatedCost,
		activity.ActualCost,
		activity.EstimatedHours,
		activity.ActualHours,
		activity.Status,
		nullableId(activity.AssignedTo),
		activity.Date,
		now,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store activity: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetByTask(ctx context.Context, userId int, taskId int) ([]Activity, error) {
	query := fmt.Sprintf(`SELECT %s FROM activities WHERE user_id = $1 AND task_id = $2 ORDER BY date`, activityColumns)

	rows, err := r.db.QueryContext(ctx, query, userId, taskId)
	if err != nil {
		err := fmt.Errorf("could not query activities: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return activities, nil
}

func (r *RepoImpl) FindById(ctx context.Context, userId int, id int) (*Activity, error) {
	query := fmt.Sprintf(`SELECT %s FROM activities WHERE user_id = $1 AND id = $2`, activityColumns)

	rows, err := r.db.QueryContext(ctx, query, userId, id)
	if err != nil {
		err := fmt.Errorf("could not query activity: %w", err)
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
	activity, err := scanActivity(rows)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	return &activity, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	query := `DELETE FROM activities WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete activity: %w", err)
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

// SumEstimatedCost totals the estimated cost of all activities belonging to
// the given tasks.
func (r *RepoImpl) SumEstimatedCost(ctx context.Context, userId int, taskIds []int) (float64, error) {
	if len(taskIds) == 0 {
		return 0, nil
	}

	placeholders := make([]string, 0, len(taskIds))
	args := make([]any, 0, len(taskIds)+1)
	args = append(args, userId)
	for i, taskId := range taskIds {
		placeholders = append(placeholders, "$"+strconv.Itoa(i+2))
		args = append(args, taskId)
	}
	query := fmt.Sprintf(`SELECT COALESCE(SUM(estimated_cost), 0) FROM activities
		WHERE user_id = $1 AND task_id IN (%s)`, strings.Join(placeholders, ", "))

	var total float64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		err := fmt.Errorf("could not sum activity costs: %w", err)
		log.Error(err)
		return 0, err
	}
	return total, nil
}

func nullableId(id int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(id), Valid: id != 0}
}

func scanActivity(rows *sql.Rows) (Activity, error) {
	var activity Activity
	var description sql.NullString
	var assignedTo sql.NullInt64
	if err := rows.Scan(
		&activity.ID,
		&activity.TaskID,
		&activity.Name,
		&description,
		&activity.EstimatedCost,
		&activity.ActualCost,
		&activity.EstimatedHours,
		&activity.ActualHours,
		&activity.Status,
		&assignedTo,
		&activity.Date,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	); err != nil {
		return Activity{}, fmt.Errorf("could not scan activity: %w", err)
	}
	if description.Valid {
		activity.Description = description.String
	}
	if assignedTo.Valid {
		activity.AssignedTo = int(assignedTo.Int64)
	}
	return activity, nil
}
