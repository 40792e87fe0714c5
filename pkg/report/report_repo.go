package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, report Report) (int, error)
	GetAll(ctx context.Context, userId int) ([]Report, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewReportRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, report Report) (int, error) {
	data, err := json.Marshal(report.Data)
	if err != nil {
		err := fmt.Errorf("could not marshal report data: %w", err)
		log.Error(err)
		return 0, err
	}

	query := `INSERT INTO reports (user_id, name, type, description, date_range, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id`

	now := time.Now().UTC()
	var id int
	err = r.db.QueryRowContext(ctx, query,
		userId,
		report.Name,
		report.Type,
		report.Description,
		report.DateRange,
		data,
		now,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store report: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Report, error) {
	query := `SELECT id, name, type, description, date_range, data, created_at, updated_at
		FROM reports WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query reports: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var report Report
		var data []byte
		var description sql.NullString
		if err := rows.Scan(
			&report.ID,
			&report.Name,
			&report.Type,
			&description,
			&report.DateRange,
			&data,
			&report.CreatedAt,
			&report.UpdatedAt,
		); err != nil {
			err := fmt.Errorf("could not scan report: %w", err)
			log.Error(err)
			return nil, err
		}
		if err := json.Unmarshal(data, &report.Data); err != nil {
			err := fmt.Errorf("could not unmarshal report data: %w", err)
			log.Error(err)
			return nil, err
		}
		if description.Valid {
			report.Description = description.String
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return reports, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	query := `DELETE FROM reports WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete report: %w", err)
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
