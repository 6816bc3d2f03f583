package models

// AssignmentStatus is the lifecycle state of an assignment.
type AssignmentStatus string

const (
	StatusNotStarted AssignmentStatus = "Not Started"
	StatusInProgress AssignmentStatus = "In Progress"
	StatusCompleted  AssignmentStatus = "Completed"
	StatusSubmitted  AssignmentStatus = "Submitted"
)

// AssignmentPriority is the urgency ranking of an assignment.
type AssignmentPriority string

const (
	PriorityHigh   AssignmentPriority = "High"
	PriorityMedium AssignmentPriority = "Medium"
	PriorityLow    AssignmentPriority = "Low"
)

// AssignmentType categorizes the kind of academic work.
type AssignmentType string

const (
	TypeHomework     AssignmentType = "Homework"
	TypeEssay        AssignmentType = "Essay"
	TypeProject      AssignmentType = "Project"
	TypeExam         AssignmentType = "Exam"
	TypePresentation AssignmentType = "Presentation"
	TypeOther        AssignmentType = "Other"
)

// ParseStatus validates a status string against the closed set.
func ParseStatus(s string) (AssignmentStatus, bool) {
	switch AssignmentStatus(s) {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusSubmitted:
		return AssignmentStatus(s), true
	}
	return "", false
}

// ParsePriority validates a priority string against the closed set.
func ParsePriority(s string) (AssignmentPriority, bool) {
	switch AssignmentPriority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return AssignmentPriority(s), true
	}
	return "", false
}

// ParseType validates an assignment type string against the closed set.
func ParseType(s string) (AssignmentType, bool) {
	switch AssignmentType(s) {
	case TypeHomework, TypeEssay, TypeProject, TypeExam, TypePresentation, TypeOther:
		return AssignmentType(s), true
	}
	return "", false
}
