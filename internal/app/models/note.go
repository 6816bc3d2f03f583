package models

import "time"

// Note is a free-text annotation owned by exactly one assignment.
// Deleting the assignment cascades at the store level.
type Note struct {
	ID           int64     `db:"id" json:"id"`
	AssignmentID int64     `db:"assignment_id" json:"assignmentId"`
	NoteText     string    `db:"note_text" json:"noteText"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
