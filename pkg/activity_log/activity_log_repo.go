package activity_log

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, entry ActivityLog) (int, error)
	GetRecent(ctx context.Context, userId int, limit int) ([]ActivityLog, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewActivityLogRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, entry ActivityLog) (int, error) {
	query := `INSERT INTO activity_log (user_id, type, description, entity_type, entity_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id int
	err := r.db.QueryRowContext(ctx, query,
		userId,
		entry.Type,
		entry.Description,
		entry.EntityType,
		entry.EntityID,
		createdAt,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store activity log entry: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetRecent(ctx context.Context, userId int, limit int) ([]ActivityLog, error) {
	query := `SELECT id, type, description, entity_type, entity_id, created_at
		FROM activity_log WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userId, limit)
	if err != nil {
		err := fmt.Errorf("could not query activity log: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var entries []ActivityLog
	for rows.Next() {
		var entry ActivityLog
		if err := rows.Scan(
			&entry.ID,
			&entry.Type,
			&entry.Description,
			&entry.EntityType,
			&entry.EntityID,
			&entry.CreatedAt,
		); err != nil {
			err := fmt.Errorf("could not scan activity log entry: %w", err)
			log.Error(err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return entries, nil
}
