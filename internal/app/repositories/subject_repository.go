package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/models"
)

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// ListByOwner retrieves all subjects belonging to a user, for dropdowns.
func (r *SubjectRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Subject, error) {
	sqlStr, args, err := squirrel.Select("id", "user_id", "name", "created_at").
		From("subjects").
		Where(squirrel.Eq{"user_id": ownerID}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	subjects := make([]models.Subject, 0)
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return subjects, nil
}

// BelongsToOwner reports whether a subject exists and is owned by the user.
func (r *SubjectRepository) BelongsToOwner(ctx context.Context, subjectID, ownerID int64) (bool, error) {
	sqlStr, args, err := squirrel.Select("1").
		Prefix("SELECT EXISTS (").
		From("subjects").
		Where(squirrel.Eq{"id": subjectID, "user_id": ownerID}).
		Suffix(")").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return exists, nil
}

// Create inserts a new subject for a user.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) (int64, error) {
	sqlStr, args, err := squirrel.Insert("subjects").
		Columns("user_id", "name").
		Values(subject.UserID, subject.Name).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}
