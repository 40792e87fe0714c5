package estimation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, estimation Estimation) (int, error)
	GetAll(ctx context.Context, userId int) ([]Estimation, error)
	FindById(ctx context.Context, userId int, id int) (*Estimation, error)
	Update(ctx context.Context, userId int, estimation Estimation) (bool, error)
	UpdateStatus(ctx context.Context, userId int, id int, status Status) (bool, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewEstimationRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const estimationColumns = `id, project_id, project_name, cost_breakdown, resources, timeline,
	contingency, total_cost, final_cost, progress, status, risk_level, team_size, notes,
	created_at, updated_at`

func (r *RepoImpl) Store(ctx context.Context, userId int, estimation Estimation) (int, error) {
	breakdown, resources, timeline, err := marshalNested(estimation)
	if err != nil {
		log.Error(err)
		return 0, err
	}

	query := `INSERT INTO estimations (
			user_id, project_id, project_name, cost_breakdown, resources, timeline,
			contingency, total_cost, final_cost, progress, status, risk_level, team_size, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		RETURNING id`

	now := time.Now().UTC()
	var id int
	err = r.db.QueryRowContext(ctx, query,
		userId,
		estimation.ProjectID,
		estimation.ProjectName,
		breakdown,
		resources,
		timeline,
		estimation.ContingencyPercent,
		estimation.Subtotal,
		estimation.FinalCost,
		estimation.Progress,
		estimation.Status,
		estimation.RiskLevel,
		estimation.TeamSize,
		estimation.Notes,
		now,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store estimation: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Estimation, error) {
	query := fmt.Sprintf(`SELECT %s FROM estimations WHERE user_id = $1 ORDER BY created_at DESC`, estimationColumns)

	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query estimations: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var estimations []Estimation
	for rows.Next() {
		estimation, err := scanEstimation(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		estimations = append(estimations, estimation)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return estimations, nil
}

func (r *RepoImpl) FindById(ctx context.Context, userId int, id int) (*Estimation, error) {
	query := fmt.Sprintf(`SELECT %s FROM estimations WHERE user_id = $1 AND id = $2`, estimationColumns)

	rows, err := r.db.QueryContext(ctx, query, userId, id)
	if err != nil {
		err := fmt.Errorf("could not query estimation: %w", err)
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
	estimation, err := scanEstimation(rows)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	return &estimation, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, estimation Estimation) (bool, error) {
	breakdown, resources, timeline, err := marshalNested(estimation)
	if err != nil {
		log.Error(err)
		return false, err
	}

	query := `UPDATE estimations SET
			project_id = $1, project_name = $2, cost_breakdown = $3, resources = $4, timeline = $5,
			contingency = $6, total_cost = $7, final_cost = $8, progress = $9, status = $10,
			risk_level = $11, team_size = $12, notes = $13, updated_at = $14
		WHERE id = $15 AND user_id = $16`

	result, err := r.db.ExecContext(ctx, query,
		estimation.ProjectID,
		estimation.ProjectName,
		breakdown,
		resources,
		timeline,
		estimation.ContingencyPercent,
		estimation.Subtotal,
		estimation.FinalCost,
		estimation.Progress,
		estimation.Status,
		estimation.RiskLevel,
		estimation.TeamSize,
		estimation.Notes,
		time.Now().UTC(),
		estimation.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update estimation: %w", err)
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
	query := `UPDATE estimations SET status = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id, userId)
	if err != nil {
		err := fmt.Errorf("could not update estimation status: %w", err)
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
	query := `DELETE FROM estimations WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete estimation: %w", err)
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

// marshalNested serializes the nested document parts stored as JSONB.
func marshalNested(estimation Estimation) ([]byte, []byte, []byte, error) {
	breakdown, err := json.Marshal(estimation.Categories)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not marshal cost breakdown: %w", err)
	}
	resources, err := json.Marshal(estimation.Resources)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not marshal resources: %w", err)
	}
	timeline, err := json.Marshal(estimation.Timeline)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not marshal timeline: %w", err)
	}
	return breakdown, resources, timeline, nil
}

func scanEstimation(rows *sql.Rows) (Estimation, error) {
	var estimation Estimation
	var breakdown, resources, timeline []byte
	var notes sql.NullString
	if err := rows.Scan(
		&estimation.ID,
		&estimation.ProjectID,
		&estimation.ProjectName,
		&breakdown,
		&resources,
		&timeline,
		&estimation.ContingencyPercent,
		&estimation.Subtotal,
		&estimation.FinalCost,
		&estimation.Progress,
		&estimation.Status,
		&estimation.RiskLevel,
		&estimation.TeamSize,
		&notes,
		&estimation.CreatedAt,
		&estimation.UpdatedAt,
	); err != nil {
		return Estimation{}, fmt.Errorf("could not scan estimation: %w", err)
	}
	if err := json.Unmarshal(breakdown, &estimation.Categories); err != nil {
		return Estimation{}, fmt.Errorf("could not unmarshal cost breakdown: %w", err)
	}
	if err := json.Unmarshal(resources, &estimation.Resources); err != nil {
		return Estimation{}, fmt.Errorf("could not unmarshal resources: %w", err)
	}
	if err := json.Unmarshal(timeline, &estimation.Timeline); err != nil {
		return Estimation{}, fmt.Errorf("could not unmarshal timeline: %w", err)
	}
	estimation.ContingencyAmount = estimation.FinalCost - estimation.Subtotal
	if notes.Valid {
		estimation.Notes = notes.String
	}
	return estimation, nil
}
