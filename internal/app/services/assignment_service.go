package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/models"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/models/dto"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/pkg/apperrors"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/pkg/helpers"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/pkg/logger"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/pkg/validation"
)

// copyTitlePrefix seeds the proposed title of a duplicated assignment.
const copyTitlePrefix = "Copy of "

// copyNotesFlag is the literal submission value that triggers note
// duplication. Anything else copies nothing.
const copyNotesFlag = "yes"

// AssignmentService defines the assignment operations, the copy flow
// included.
type AssignmentService interface {
	GetAllAssignments(ctx context.Context, ownerID int64, filter *dto.AssignmentFilterRequest) (*dto.AssignmentListResponse, error)
	GetAssignmentByID(ctx context.Context, ownerID, id int64) (*dto.AssignmentResponse, error)
	GetAssignmentNotes(ctx context.Context, ownerID, id int64) ([]dto.NoteResponse, error)
	GetCopyDefaults(ctx context.Context, ownerID, sourceID int64) (*dto.CopyDefaultsResponse, error)
	CommitCopy(ctx context.Context, ownerID, sourceID int64, req *dto.CopyAssignmentRequest) (*dto.AssignmentResponse, error)
}

// assignmentServiceImpl implements AssignmentService
type assignmentServiceImpl struct {
	assignments AssignmentStore
	notes       NoteStore
	subjects    SubjectStore
	now         func() time.Time
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(assignments AssignmentStore, notes NoteStore, subjects SubjectStore) AssignmentService {
	return &assignmentServiceImpl{
		assignments: assignments,
		notes:       notes,
		subjects:    subjects,
		now:         time.Now,
	}
}

func toAssignmentResponse(a *models.Assignment) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		ID:                a.ID,
		SubjectID:         a.SubjectID,
		SubjectName:       a.SubjectName,
		Title:             a.Title,
		Description:       a.Description,
		Type:              string(a.Type),
		DueDate:           helpers.FormatDate(a.DueDate),
		TimeDue:           a.TimeDue,
		Weight:            a.Weight,
		Status:            string(a.Status),
		Priority:          string(a.Priority),
		EstimatedHours:    a.EstimatedHours,
		ActualHoursSpent:  a.ActualHoursSpent,
		Grade:             a.Grade,
		GradeReceivedDate: helpers.FormatDatePtr(a.GradeReceivedDate),
		CreatedAt:         a.CreatedAt,
	}
	for _, n := range a.Notes {
		resp.Notes = append(resp.Notes, toNoteResponse(*n))
	}
	return resp
}

func toNoteResponse(n models.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:           n.ID,
		AssignmentID: n.AssignmentID,
		NoteText:     n.NoteText,
		CreatedAt:    n.CreatedAt,
	}
}

// getOwned is the ownership guard: one query filtered by id and owner, with
// no distinction between missing and foreign-owned rows.
func (s *assignmentServiceImpl) getOwned(ctx context.Context, ownerID, id int64) (*models.Assignment, error) {
	a, err := s.assignments.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error getting assignment: %w", err)
	}
	if a == nil {
		return nil, apperrors.ErrAssignmentNotFound
	}
	return a, nil
}

// GetAllAssignments retrieves a page of the owner's assignments.
func (s *assignmentServiceImpl) GetAllAssignments(ctx context.Context, ownerID int64, filter *dto.AssignmentFilterRequest) (*dto.AssignmentListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	assignments, total, err := s.assignments.GetAllForOwner(ctx, ownerID, filter.SubjectID, filter.Status, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error getting assignments: %w", err)
	}

	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		responses = append(responses, toAssignmentResponse(&assignments[i]))
	}

	return &dto.AssignmentListResponse{
		Assignments:    responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetAssignmentByID retrieves an owned assignment with its notes.
func (s *assignmentServiceImpl) GetAssignmentByID(ctx context.Context, ownerID, id int64) (*dto.AssignmentResponse, error) {
	a, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.ListByAssignment(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("error getting notes: %w", err)
	}

	resp := toAssignmentResponse(a)
	for _, n := range notes {
		resp.Notes = append(resp.Notes, toNoteResponse(n))
	}
	return &resp, nil
}

// GetAssignmentNotes retrieves the notes of an owned assignment.
func (s *assignmentServiceImpl) GetAssignmentNotes(ctx context.Context, ownerID, id int64) ([]dto.NoteResponse, error) {
	a, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.ListByAssignment(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("error getting notes: %w", err)
	}

	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		responses = append(responses, toNoteResponse(n))
	}
	return responses, nil
}

// GetCopyDefaults builds the pre-filled form payload for duplicating an
// assignment. Status and due date come from policy, never from the source:
// a fresh copy always proposes "Not Started" and a due date one week out.
func (s *assignmentServiceImpl) GetCopyDefaults(ctx context.Context, ownerID, sourceID int64) (*dto.CopyDefaultsResponse, error) {
	src, err := s.getOwned(ctx, ownerID, sourceID)
	if err != nil {
		return nil, err
	}

	noteCount, err := s.notes.CountByAssignment(ctx, src.ID)
	if err != nil {
		return nil, fmt.Errorf("error counting notes: %w", err)
	}

	return &dto.CopyDefaultsResponse{
		SourceID:       src.ID,
		Title:          copyTitlePrefix + src.Title,
		Description:    src.Description,
		SubjectID:      src.SubjectID,
		Type:           string(src.Type),
		DueDate:        helpers.FormatDate(helpers.DefaultDueDate(s.now())),
		TimeDue:        src.TimeDue,
		Weight:         src.Weight,
		Status:         string(models.StatusNotStarted),
		Priority:       string(src.Priority),
		EstimatedHours: src.EstimatedHours,
		NoteCount:      noteCount,
	}, nil
}

// CommitCopy validates a submission and persists the new assignment, fanning
// out the source's notes when requested. The candidate is built from the
// submission alone; the source is consulted only for ownership and for the
// note-copy decision.
func (s *assignmentServiceImpl) CommitCopy(ctx context.Context, ownerID, sourceID int64, req *dto.CopyAssignmentRequest) (*dto.AssignmentResponse, error) {
	src, err := s.getOwned(ctx, ownerID, sourceID)
	if err != nil {
		return nil, err
	}

	owned, err := s.subjects.BelongsToOwner(ctx, req.SubjectID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error checking subject ownership: %w", err)
	}
	if !owned {
		return nil, apperrors.NewValidationError("subjectId", "subject does not exist for this account")
	}

	candidate, err := s.buildCandidate(ownerID, req)
	if err != nil {
		return nil, err
	}

	copyNotes := req.CopyNotes == copyNotesFlag
	newID, err := s.assignments.CreateCopy(ctx, candidate, src.ID, copyNotes)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, apperrors.NewValidationError("subjectId", "subject does not exist for this account")
		}
		logger.Error().Err(err).Int64("sourceID", src.ID).Int64("ownerID", ownerID).
			Msg("Failed to persist assignment copy")
		return nil, apperrors.NewPersistenceError(err)
	}

	// The copy is committed. Read failures past this point must not be
	// reported as a failed commit, so fall back to the candidate we wrote.
	created, err := s.assignments.GetByIDForOwner(ctx, newID, ownerID)
	if err != nil || created == nil {
		logger.Warn().Err(err).Int64("newID", newID).Msg("Could not re-read committed copy")
		candidate.ID = newID
		resp := toAssignmentResponse(candidate)
		return &resp, nil
	}

	resp := toAssignmentResponse(created)
	notes, err := s.notes.ListByAssignment(ctx, newID)
	if err != nil {
		logger.Warn().Err(err).Int64("newID", newID).Msg("Could not read notes of committed copy")
		return &resp, nil
	}
	for _, n := range notes {
		resp.Notes = append(resp.Notes, toNoteResponse(n))
	}
	return &resp, nil
}

// buildCandidate turns a validated submission into a candidate record.
// Text fields are sanitized, enums checked against their closed sets, and
// the policy fields forced: grade, grade date and actual hours start NULL.
func (s *assignmentServiceImpl) buildCandidate(ownerID int64, req *dto.CopyAssignmentRequest) (*models.Assignment, error) {
	title := validation.SanitizeText(req.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title", "title is required")
	}
	if len(title) > validation.TitleMaxLength {
		return nil, apperrors.NewValidationError("title", fmt.Sprintf("title must be at most %d characters", validation.TitleMaxLength))
	}

	description := validation.SanitizeText(req.Description)
	if description == "" {
		return nil, apperrors.NewValidationError("description", "description is required")
	}
	if len(description) > validation.DescriptionMaxLength {
		return nil, apperrors.NewValidationError("description", fmt.Sprintf("description must be at most %d characters", validation.DescriptionMaxLength))
	}

	typ, ok := models.ParseType(validation.SanitizeText(req.Type))
	if !ok {
		return nil, apperrors.NewValidationError("type", "unknown assignment type")
	}

	status, ok := models.ParseStatus(validation.SanitizeText(req.Status))
	if !ok {
		return nil, apperrors.NewValidationError("status", "unknown status")
	}

	priority, ok := models.ParsePriority(validation.SanitizeText(req.Priority))
	if !ok {
		return nil, apperrors.NewValidationError("priority", "unknown priority")
	}

	dueDate, err := time.ParseInLocation(helpers.DateLayout, req.DueDate, time.UTC)
	if err != nil {
		return nil, apperrors.NewValidationError("dueDate", "due date must be YYYY-MM-DD")
	}

	var timeDue *string
	if req.TimeDue != nil && !validation.IsBlank(*req.TimeDue) {
		if _, err := time.Parse(helpers.TimeLayout, *req.TimeDue); err != nil {
			return nil, apperrors.NewValidationError("timeDue", "time due must be HH:MM")
		}
		td := *req.TimeDue
		timeDue = &td
	}

	if req.Weight == nil {
		return nil, apperrors.NewValidationError("weight", "weight is required")
	}

	return &models.Assignment{
		UserID:         ownerID,
		SubjectID:      req.SubjectID,
		Title:          title,
		Description:    description,
		Type:           typ,
		DueDate:        dueDate,
		TimeDue:        timeDue,
		Weight:         *req.Weight,
		Status:         status,
		Priority:       priority,
		EstimatedHours: req.EstimatedHours,
		// ActualHoursSpent, Grade and GradeReceivedDate stay nil: a fresh
		// copy has no recorded work or grade regardless of the source.
		CreatedAt: s.now().UTC(),
	}, nil
}
