package resource

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, resource Resource) (int, error)
	GetAll(ctx context.Context, userId int) ([]Resource, error)
	FindById(ctx context.Context, userId int, id int) (*Resource, error)
	Update(ctx context.Context, userId int, resource Resource) (bool, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewResourceRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const resourceColumns = `id, name, type, description, unit_cost, available, specifications,
	created_at, updated_at`

func (r *RepoImpl) Store(ctx context.Context, userId int, resource Resource) (int, error) {
	specifications, err := json.Marshal(resource.Specifications)
	if err != nil {
		err := fmt.Errorf("could not marshal specifications: %w", err)
		log.Error(err)
		return 0, err
	}

	query := `INSERT INTO resources (
			user_id, name, type, description, unit_cost, available, specifications,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id`

	now := time.Now().UTC()
	var id int
	err = r.db.QueryRowContext(ctx, query,
		userId,
		resource.Name,
		resource.Type,
		resource.Description,
		resource.UnitCost,
		resource.Available,
		specifications,
		now,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store resource: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Resource, error) {
	query := fmt.Sprintf(`SELECT %s FROM resources WHERE user_id = $1 ORDER BY name`, resourceColumns)

	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query resources: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var resources []Resource
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		resources = append(resources, resource)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return resources, nil
}

func (r *RepoImpl) FindById(ctx context.Context, userId int, id int) (*Resource, error) {
	query := fmt.Sprintf(`SELECT %s FROM resources WHERE user_id = $1 AND id = $2`, resourceColumns)

	rows, err := r.db.QueryContext(ctx, query, userId, id)
	if err != nil {
		err := fmt.Errorf("could not query resource: %w", err)
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
	resource, err := scanResource(rows)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	return &resource, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, resource Resource) (bool, error) {
	specifications, err := json.Marshal(resource.Specifications)
	if err != nil {
		err := fmt.Errorf("could not marshal specifications: %w", err)
		log.Error(err)
		return false, err
	}

	query := `UPDATE resources SET
			name = $1, type = $2, description = $3, unit_cost = $4, available = $5,
			specifications = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9`

	result, err := r.db.ExecContext(ctx, query,
		resource.Name,
		resource.Type,
		resource.Description,
		resource.UnitCost,
		resource.Available,
		specifications,
		time.Now().UTC(),
		resource.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update resource: %w", err)
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
	query := `DELETE FROM resources WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete resource: %w", err)
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

func scanResource(rows *sql.Rows) (Resource, error) {
	var resource Resource
	var specifications []byte
	var description sql.NullString
	if err := rows.Scan(
		&resource.ID,
		&resource.Name,
		&resource.Type,
		&description,
		&resource.UnitCost,
		&resource.Available,
		&specifications,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	); err != nil {
		return Resource{}, fmt.Errorf("could not scan resource: %w", err)
	}
	if err := json.Unmarshal(specifications, &resource.Specifications); err != nil {
		return Resource{}, fmt.Errorf("could not unmarshal specifications: %w", err)
	}
	if description.Valid {
		resource.Description = description.String
	}
	return resource, nil
}
