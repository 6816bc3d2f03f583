package models

import "time"

// Assignment represents a gradable academic task owned by a single user.
// Grade, actual hours and the grade date are pointers because they stay
// NULL until the work has been marked.
type Assignment struct {
	ID                int64              `db:"id" json:"id"`
	UserID            int64              `db:"user_id" json:"userId"`
	SubjectID         int64              `db:"subject_id" json:"subjectId"`
	Title             string             `db:"title" json:"title"`
	Description       string             `db:"description" json:"description"`
	Type              AssignmentType     `db:"type" json:"type"`
	DueDate           time.Time          `db:"due_date" json:"dueDate"`
	TimeDue           *string            `db:"time_due" json:"timeDue,omitempty"`
	Weight            float64            `db:"weight" json:"weight"`
	Status            AssignmentStatus   `db:"status" json:"status"`
	Priority          AssignmentPriority `db:"priority" json:"priority"`
	EstimatedHours    *float64           `db:"estimated_hours" json:"estimatedHours,omitempty"`
	ActualHoursSpent  *float64           `db:"actual_hours_spent" json:"actualHoursSpent,omitempty"`
	Grade             *float64           `db:"grade" json:"grade,omitempty"`
	GradeReceivedDate *time.Time         `db:"grade_received_date" json:"gradeReceivedDate,omitempty"`
	CreatedAt         time.Time          `db:"created_at" json:"createdAt"`

	// Populated on detail reads only.
	SubjectName string  `db:"subject_name" json:"subjectName,omitempty"`
	Notes       []*Note `json:"notes,omitempty"`
}
