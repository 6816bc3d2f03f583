package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/models"
)

// NoteRepository handles database operations for assignment notes
type NoteRepository struct {
	db *pgxpool.Pool
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{db: db}
}

// ListByAssignment retrieves all notes of an assignment in insertion order.
// Callers are expected to have ownership-checked the assignment already.
func (r *NoteRepository) ListByAssignment(ctx context.Context, assignmentID int64) ([]models.Note, error) {
	sqlStr, args, err := squirrel.Select("id", "assignment_id", "note_text", "created_at").
		From("assignment_notes").
		Where(squirrel.Eq{"assignment_id": assignmentID}).
		OrderBy("id ASC").
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

	notes := make([]models.Note, 0)
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.AssignmentID, &n.NoteText, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// CountByAssignment returns the number of notes attached to an assignment.
func (r *NoteRepository) CountByAssignment(ctx context.Context, assignmentID int64) (int64, error) {
	sqlStr, args, err := squirrel.Select("count(*)").
		From("assignment_notes").
		Where(squirrel.Eq{"assignment_id": assignmentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}
