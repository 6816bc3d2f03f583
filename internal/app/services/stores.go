package services

import (
	"context"
	"time"

	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/models"
)

// Store interfaces consumed by the services. The pgx repositories satisfy
// them; tests substitute in-memory fakes.

// AssignmentStore is the record store surface for assignments.
type AssignmentStore interface {
	GetByIDForOwner(ctx context.Context, id, ownerID int64) (*models.Assignment, error)
	GetAllForOwner(ctx context.Context, ownerID int64, subjectID *int64, status *string, offset uint64, limit int) ([]models.Assignment, int64, error)
	CreateCopy(ctx context.Context, a *models.Assignment, sourceID int64, copyNotes bool) (int64, error)
}

// NoteStore is the record store surface for assignment notes.
type NoteStore interface {
	ListByAssignment(ctx context.Context, assignmentID int64) ([]models.Note, error)
	CountByAssignment(ctx context.Context, assignmentID int64) (int64, error)
}

// SubjectStore is the record store surface for subjects.
type SubjectStore interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Subject, error)
	BelongsToOwner(ctx context.Context, subjectID, ownerID int64) (bool, error)
}

// UserStore is the record store surface for user accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// TokenStore is the record store surface for refresh tokens.
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
}
