package team_member

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, member TeamMember) (int, error)
	GetAll(ctx context.Context, userId int) ([]TeamMember, error)
	FindById(ctx context.Context, userId int, id int) (*TeamMember, error)
	Update(ctx context.Context, userId int, member TeamMember) (bool, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewTeamMemberRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const memberColumns = `id, name, email, phone, role, availability, hourly_rate,
	experience_years, skills, current_project, notes, created_at, updated_at`

func (r *RepoImpl) Store(ctx context.Context, userId int, member TeamMember) (int, error) {
	skills, err := json.Marshal(member.Skills)
	if err != nil {
		err := fmt.Errorf("could not marshal skills: %w", err)
		log.Error(err)
		return 0, err
	}

	query := `INSERT INTO team_members (
			user_id, name, email, phone, role, availability, hourly_rate,
			experience_years, skills, current_project, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING id`

	now := time.Now().UTC()
	var id int
	err = r.db.QueryRowContext(ctx, query,
		userId,
		member.Name,
		member.Email,
		member.Phone,
		member.Role,
		member.Availability,
		member.HourlyRate,
		member.ExperienceYears,
		skills,
		member.CurrentProject,
		member.Notes,
		now,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store team member: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]TeamMember, error) {
	query := fmt.Sprintf(`SELECT %s FROM team_members WHERE user_id = $1 ORDER BY name`, memberColumns)

	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query team members: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var members []TeamMember
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return members, nil
}

func (r *RepoImpl) FindById(ctx context.Context, userId int, id int) (*TeamMember, error) {
	query := fmt.Sprintf(`SELECT %s FROM team_members WHERE user_id = $1 AND id = $2`, memberColumns)

	rows, err := r.db.QueryContext(ctx, query, userId, id)
	if err != nil {
		err := fmt.Errorf("could not query team member: %w", err)
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
	member, err := scanMember(rows)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	return &member, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, member TeamMember) (bool, error) {
	skills, err := json.Marshal(member.Skills)
	if err != nil {
		err := fmt.Errorf("could not marshal skills: %w", err)
		log.Error(err)
		return false, err
	}

	query := `UPDATE team_members SET
			name = $1, email = $2, phone = $3, role = $4, availability = $5,
			hourly_rate = $6, experience_years = $7, skills = $8, current_project = $9,
			notes = $10, updated_at = $11
		WHERE id = $12 AND user_id = $13`

	result, err := r.db.ExecContext(ctx, query,
		member.Name,
		member.Email,
		member.Phone,
		member.Role,
		member.Availability,
		member.HourlyRate,
		member.ExperienceYears,
		skills,
		member.CurrentProject,
		member.Notes,
		time.Now().UTC(),
		member.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update team member: %w", err)
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
	query := `DELETE FROM team_members WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete team member: %w", err)
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

func scanMember(rows *sql.Rows) (TeamMember, error) {
	var member TeamMember
	var skills []byte
	var phone, currentProject, notes sql.NullString
	if err := rows.Scan(
		&member.ID,
		&member.Name,
		&member.Email,
		&phone,
		&member.Role,
		&member.Availability,
		&member.HourlyRate,
		&member.ExperienceYears,
		&skills,
		&currentProject,
		&notes,
		&member.CreatedAt,
		&member.UpdatedAt,
	); err != nil {
		return TeamMember{}, fmt.Errorf("could not scan team member: %w", err)
	}
	if err := json.Unmarshal(skills, &member.Skills); err != nil {
		return TeamMember{}, fmt.Errorf("could not unmarshal skills: %w", err)
	}
	if phone.Valid {
		member.Phone = phone.String
	}
	if currentProject.Valid {
		member.CurrentProject = currentProject.String
	}
	if notes.Valid {
		member.Notes = notes.String
	}
	return member, nil
}
