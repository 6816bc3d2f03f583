package dto

import "time"

// AssignmentResponse represents a stored assignment
type AssignmentResponse struct {
	ID                int64          `json:"id"`
	SubjectID         int64          `json:"subjectId"`
	SubjectName       string         `json:"subjectName,omitempty"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Type              string         `json:"type"`
	DueDate           string         `json:"dueDate" example:"2025-09-01"`
	TimeDue           *string        `json:"timeDue,omitempty" example:"23:59"`
	Weight            float64        `json:"weight"`
	Status            string         `json:"status"`
	Priority          string         `json:"priority"`
	EstimatedHours    *float64       `json:"estimatedHours,omitempty"`
	ActualHoursSpent  *float64       `json:"actualHoursSpent,omitempty"`
	Grade             *float64       `json:"grade,omitempty"`
	GradeReceivedDate *string        `json:"gradeReceivedDate,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	Notes             []NoteResponse `json:"notes,omitempty"`
}

// NoteResponse represents a note attached to an assignment
type NoteResponse struct {
	ID           int64     `json:"id"`
	AssignmentID int64     `json:"assignmentId"`
	NoteText     string    `json:"noteText"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CopyDefaultsResponse is the pre-filled form payload for duplicating an
// assignment. Status and due date are policy defaults, everything else is
// carried from the source for display.
type CopyDefaultsResponse struct {
	SourceID       int64    `json:"sourceId"`
	Title          string   `json:"title" example:"Copy of Essay 1"`
	Description    string   `json:"description"`
	SubjectID      int64    `json:"subjectId"`
	Type           string   `json:"type"`
	DueDate        string   `json:"dueDate" example:"2025-09-01"`
	TimeDue        *string  `json:"timeDue,omitempty"`
	Weight         float64  `json:"weight"`
	Status         string   `json:"status" example:"Not Started"`
	Priority       string   `json:"priority"`
	EstimatedHours *float64 `json:"estimatedHours,omitempty"`
	NoteCount      int64    `json:"noteCount"`
}

// CopyAssignmentRequest carries the submitted fields for committing a copy.
// Enum fields are re-validated against the closed sets in the service layer.
type CopyAssignmentRequest struct {
	Title          string   `json:"title" binding:"required,max=255"`
	Description    string   `json:"description" binding:"required"`
	SubjectID      int64    `json:"subjectId" binding:"required,gt=0"`
	Type           string   `json:"type" binding:"required"`
	DueDate        string   `json:"dueDate" binding:"required,datetime=2006-01-02"`
	TimeDue        *string  `json:"timeDue,omitempty" binding:"omitempty,datetime=15:04"`
	Weight         *float64 `json:"weight" binding:"required,gte=0,lte=100"`
	Status         string   `json:"status" binding:"required"`
	Priority       string   `json:"priority" binding:"required"`
	EstimatedHours *float64 `json:"estimatedHours,omitempty" binding:"omitempty,gte=0"`
	CopyNotes      string   `json:"copyNotes,omitempty"`
}

// AssignmentFilterRequest represents assignment listing filter parameters
type AssignmentFilterRequest struct {
	SubjectID *int64  `form:"subjectId,omitempty"`
	Status    *string `form:"status,omitempty"`
	Page      int     `form:"page,default=1" binding:"min=1"`
	PageSize  int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// AssignmentListResponse represents a page of assignments
type AssignmentListResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	PaginationInfo
}
