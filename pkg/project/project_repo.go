package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, project Project) (int, error)
	GetAll(ctx context.Context, userId int) ([]Project, error)
	FindById(ctx context.Context, userId int, id int) (*Project, error)
	Update(ctx context.Context, userId int, project Project) (bool, error)
	UpdateStatus(ctx context.Context, userId int, id int, status Status) (bool, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const projectColumns = `id, name, description, start_date, end_date, status, priority,
	estimated_budget, actual_cost, client, team, created_at, updated_at`

func (r *RepoImpl) Store(ctx context.Context, userId int, project Project) (int, error) {
	client, team, err := marshalNested(project)
	if err != nil {
		log.Error(err)
		return 0, err
	}

	query := `INSERT INTO projects (
			user_id, name, description, start_date, end_date, status, priority,
			estimated_budget, actual_cost, client, team, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING id`

	now := time.Now().UTC()
	var id int
	err = r.db.QueryRowContext(ctx, query,
		userId,
		project.Name,
		project.Description,
		project.StartDate,
		project.EndDate,
		project.Status,
		project.Priority,
		project.EstimatedBudget,
		project.ActualCost,
		client,
		team,
		now,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store project: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE user_id = $1 ORDER BY created_at DESC`, projectColumns)

	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query projects: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return projects, nil
}

func (r *RepoImpl) FindById(ctx context.Context, userId int, id int) (*Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE user_id = $1 AND id = $2`, projectColumns)

	rows, err := r.db.QueryContext(ctx, query, userId, id)
	if err != nil {
		err := fmt.Errorf("could not query project: %w", err)
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
	project, err := scanProject(rows)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	return &project, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, project Project) (bool, error) {
	client, team, err := marshalNested(project)
	if err != nil {
		log.Error(err)
		return false, err
	}

	query := `UPDATE projects SET
			name = $1, description = $2, start_date = $3, end_date = $4, status = $5,
			priority = $6, estimated_budget = $7, actual_cost = $8, client = $9, team = $10,
			updated_at = $11
		WHERE id = $12 AND user_id = $13`

	result, err := r.db.ExecContext(ctx, query,
		project.Name,
		project.Description,
		project.StartDate,
		project.EndDate,
		project.Status,
		project.Priority,
		project.EstimatedBudget,
		project.ActualCost,
		client,
		team,
		time.Now().UTC(),
		project.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update project: %w", err)
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

func (r *RepoImpl) UpdateStatus(ctx context.Context, userId int, id int, status Status) (bool, error) {
	query := `UPDATE projects SET status = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id, userId)
	if err != nil {
		err := fmt.Errorf("could not update project status: %w", err)
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
	query := `DELETE FROM projects WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete project: %w", err)
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

func marshalNested(project Project) ([]byte, []byte, error) {
	client, err := json.Marshal(project.Client)
	if err != nil {
		return nil, nil, fmt.Errorf("could not marshal client: %w", err)
	}
	team, err := json.Marshal(project.Team)
	if err != nil {
		return nil, nil, fmt.Errorf("could not marshal team: %w", err)
	}
	return client, team, nil
}

func scanProject(rows *sql.Rows) (Project, error) {
	var project Project
	var client, team []byte
	var description sql.NullString
	if err := rows.Scan(
		&project.ID,
		&project.Name,
		&description,
		&project.StartDate,
		&project.EndDate,
		&project.Status,
		&project.Priority,
		&project.EstimatedBudget,
		&project.ActualCost,
		&client,
		&team,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return Project{}, fmt.Errorf("could not scan project: %w", err)
	}
	if err := json.Unmarshal(client, &project.Client); err != nil {
		return Project{}, fmt.Errorf("could not unmarshal client: %w", err)
	}
	if err := json.Unmarshal(team, &project.Team); err != nil {
		return Project{}, fmt.Errorf("could not unmarshal team: %w", err)
	}
	if description.Valid {
		project.Description = description.String
	}
	return project, nil
}
