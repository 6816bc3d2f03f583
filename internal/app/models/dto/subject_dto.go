package dto

// SubjectResponse represents a subject for dropdown population
type SubjectResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SubjectListResponse represents the requester's subjects
type SubjectListResponse struct {
	Subjects []SubjectResponse `json:"subjects"`
}
