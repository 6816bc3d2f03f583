package services

import (
	"context"
	"fmt"

	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/models/dto"
)

// SubjectService defines the interface for subject operations
type SubjectService interface {
	GetSubjects(ctx context.Context, ownerID int64) (*dto.SubjectListResponse, error)
}

type subjectServiceImpl struct {
	subjects SubjectStore
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(subjects SubjectStore) SubjectService {
	return &subjectServiceImpl{subjects: subjects}
}

// GetSubjects retrieves the owner's subjects for dropdown population.
func (s *subjectServiceImpl) GetSubjects(ctx context.Context, ownerID int64) (*dto.SubjectListResponse, error) {
	subjects, err := s.subjects.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error getting subjects: %w", err)
	}

	responses := make([]dto.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		responses = append(responses, dto.SubjectResponse{
			ID:   subject.ID,
			Name: subject.Name,
		})
	}

	return &dto.SubjectListResponse{Subjects: responses}, nil
}
