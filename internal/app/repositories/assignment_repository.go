package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/models"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/db"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/pkg/apperrors"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/pkg/dberrors"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/pkg/logger"
)

// assignmentColumns are the columns selected for a full assignment row.
var assignmentColumns = []string{
	"a.id", "a.user_id", "a.subject_id", "a.title", "a.description", "a.type",
	"a.due_date", "a.time_due", "a.weight", "a.status", "a.priority",
	"a.estimated_hours", "a.actual_hours_spent", "a.grade",
	"a.grade_received_date", "a.created_at", "s.name AS subject_name",
}

// AssignmentRepository handles database operations for assignments
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) selectAssignmentQuery() squirrel.SelectBuilder {
	return squirrel.Select(assignmentColumns...).
		From("assignments a").
		Join("subjects s ON a.subject_id = s.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	var a models.Assignment
	err := row.Scan(
		&a.ID, &a.UserID, &a.SubjectID, &a.Title, &a.Description, &a.Type,
		&a.DueDate, &a.TimeDue, &a.Weight, &a.Status, &a.Priority,
		&a.EstimatedHours, &a.ActualHoursSpent, &a.Grade,
		&a.GradeReceivedDate, &a.CreatedAt, &a.SubjectName,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByIDForOwner fetches one assignment filtered by both id and owner in a
// single query. A miss and a foreign-owner row are indistinguishable: both
// come back as (nil, nil).
func (r *AssignmentRepository) GetByIDForOwner(ctx context.Context, id, ownerID int64) (*models.Assignment, error) {
	sqlStr, args, err := r.selectAssignmentQuery().
		Where(squirrel.Eq{"a.id": id, "a.user_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	a, err := scanAssignment(r.db.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return a, nil
}

// GetAllForOwner retrieves a page of the owner's assignments with optional
// subject and status filters.
func (r *AssignmentRepository) GetAllForOwner(ctx context.Context, ownerID int64, subjectID *int64, status *string, offset uint64, limit int) ([]models.Assignment, int64, error) {
	query := r.selectAssignmentQuery().Where(squirrel.Eq{"a.user_id": ownerID})
	countQuery := squirrel.Select("count(*)").
		From("assignments a").
		Where(squirrel.Eq{"a.user_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar)

	if subjectID != nil {
		query = query.Where(squirrel.Eq{"a.subject_id": *subjectID})
		countQuery = countQuery.Where(squirrel.Eq{"a.subject_id": *subjectID})
	}
	if status != nil {
		query = query.Where(squirrel.Eq{"a.status": *status})
		countQuery = countQuery.Where(squirrel.Eq{"a.status": *status})
	}

	countSql, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error executing count query: %w", err)
	}

	if total == 0 {
		return []models.Assignment{}, 0, nil
	}

	query = query.OrderBy("a.due_date ASC", "a.id ASC").
		Limit(uint64(limit)).Offset(offset)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	assignments := make([]models.Assignment, 0, limit)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		assignments = append(assignments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return assignments, total, nil
}

// CreateCopy inserts the candidate assignment and, when copyNotes is set,
// duplicates the source assignment's notes under the new identity. Both run
// in one transaction: either the assignment and all its notes exist, or
// nothing does. Copied notes get a fresh created_at, not the source's.
func (r *AssignmentRepository) CreateCopy(ctx context.Context, a *models.Assignment, sourceID int64, copyNotes bool) (int64, error) {
	var newID int64

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		insertSQL, args, err := squirrel.Insert("assignments").
			Columns("user_id", "subject_id", "title", "description", "type",
				"due_date", "time_due", "weight", "status", "priority",
				"estimated_hours", "actual_hours_spent", "grade",
				"grade_received_date", "created_at").
			Values(a.UserID, a.SubjectID, a.Title, a.Description, a.Type,
				a.DueDate, a.TimeDue, a.Weight, a.Status, a.Priority,
				a.EstimatedHours, a.ActualHoursSpent, a.Grade,
				a.GradeReceivedDate, a.CreatedAt).
			Suffix("RETURNING id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		if err := tx.QueryRow(ctx, insertSQL, args...).Scan(&newID); err != nil {
			return fmt.Errorf("error inserting assignment: %w", err)
		}

		if !copyNotes {
			return nil
		}

		// Fan-out insert keyed on the new identity; created_at falls back to
		// the column default (now) per note.
		copySQL, copyArgs, err := squirrel.Insert("assignment_notes").
			Columns("assignment_id", "note_text").
			Select(squirrel.Select(fmt.Sprintf("%d", newID), "note_text").
				From("assignment_notes").
				Where(squirrel.Eq{"assignment_id": sourceID}).
				OrderBy("id ASC")).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		tag, err := tx.Exec(ctx, copySQL, copyArgs...)
		if err != nil {
			return fmt.Errorf("error copying notes: %w", err)
		}
		logger.Debug().Int64("sourceID", sourceID).Int64("newID", newID).
			Int64("notesCopied", tag.RowsAffected()).Msg("Copied assignment notes")

		return nil
	})
	if err != nil {
		// The subject can vanish between the ownership check and the insert.
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrSubjectNotFound
		}
		return 0, err
	}

	return newID, nil
}
