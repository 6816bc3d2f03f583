package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/models"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/models/dto"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/pkg/apperrors"
)

// memStore is an in-memory stand-in for the pgx repositories. It implements
// AssignmentStore, NoteStore and SubjectStore over plain maps.
type memStore struct {
	assignments map[int64]*models.Assignment
	notes       map[int64][]models.Note
	subjects    map[int64]*models.Subject

	nextAssignmentID int64
	nextNoteID       int64

	createErr error

	// failReadsAfterCreate simulates the pool dying between a committed
	// copy and the follow-up read.
	failReadsAfterCreate bool
	createDone           bool
}

func newMemStore() *memStore {
	return &memStore{
		assignments:      make(map[int64]*models.Assignment),
		notes:            make(map[int64][]models.Note),
		subjects:         make(map[int64]*models.Subject),
		nextAssignmentID: 1,
		nextNoteID:       1,
	}
}

func (m *memStore) addSubject(id, ownerID int64, name string) {
	m.subjects[id] = &models.Subject{ID: id, UserID: ownerID, Name: name}
}

func (m *memStore) addAssignment(a models.Assignment) *models.Assignment {
	a.ID = m.nextAssignmentID
	m.nextAssignmentID++
	stored := a
	m.assignments[stored.ID] = &stored
	return &stored
}

func (m *memStore) addNote(assignmentID int64, text string) {
	n := models.Note{ID: m.nextNoteID, AssignmentID: assignmentID, NoteText: text, CreatedAt: time.Now()}
	m.nextNoteID++
	m.notes[assignmentID] = append(m.notes[assignmentID], n)
}

func (m *memStore) GetByIDForOwner(_ context.Context, id, ownerID int64) (*models.Assignment, error) {
	if m.failReadsAfterCreate && m.createDone {
		return nil, errors.New("connection closed")
	}
	a, ok := m.assignments[id]
	if !ok || a.UserID != ownerID {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) GetAllForOwner(_ context.Context, ownerID int64, subjectID *int64, status *string, offset uint64, limit int) ([]models.Assignment, int64, error) {
	var all []models.Assignment
	for _, a := range m.assignments {
		if a.UserID != ownerID {
			continue
		}
		if subjectID != nil && a.SubjectID != *subjectID {
			continue
		}
		if status != nil && string(a.Status) != *status {
			continue
		}
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if int(offset) >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (m *memStore) CreateCopy(_ context.Context, a *models.Assignment, sourceID int64, copyNotes bool) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	created := m.addAssignment(*a)
	if copyNotes {
		for _, n := range m.notes[sourceID] {
			m.addNote(created.ID, n.NoteText)
		}
	}
	m.createDone = true
	return created.ID, nil
}

func (m *memStore) ListByAssignment(_ context.Context, assignmentID int64) ([]models.Note, error) {
	return append([]models.Note(nil), m.notes[assignmentID]...), nil
}

func (m *memStore) CountByAssignment(_ context.Context, assignmentID int64) (int64, error) {
	return int64(len(m.notes[assignmentID])), nil
}

func (m *memStore) ListByOwner(_ context.Context, ownerID int64) ([]models.Subject, error) {
	var out []models.Subject
	for _, s := range m.subjects {
		if s.UserID == ownerID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) BelongsToOwner(_ context.Context, subjectID, ownerID int64) (bool, error) {
	s, ok := m.subjects[subjectID]
	return ok && s.UserID == ownerID, nil
}

const (
	ownerAlice int64 = 1
	ownerBob   int64 = 2
)

func newTestService(store *memStore) AssignmentService {
	svc := NewAssignmentService(store, store, store).(*assignmentServiceImpl)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func seedAssignment(store *memStore, ownerID, subjectID int64) *models.Assignment {
	return store.addAssignment(models.Assignment{
		UserID:      ownerID,
		SubjectID:   subjectID,
		Title:       "Linear Algebra Problem Set",
		Description: "Chapters 3 and 4",
		Type:        models.TypeHomework,
		DueDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Weight:      15,
		Status:      models.StatusCompleted,
		Priority:    models.PriorityHigh,
		CreatedAt:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
}

func f64(v float64) *float64 { return &v }

func validCopyRequest(subjectID int64) *dto.CopyAssignmentRequest {
	return &dto.CopyAssignmentRequest{
		Title:       "Copy of Linear Algebra Problem Set",
		Description: "Chapters 3 and 4",
		SubjectID:   subjectID,
		Type:        "Homework",
		DueDate:     "2026-03-17",
		Weight:      f64(15),
		Status:      "Not Started",
		Priority:    "High",
	}
}

func TestGetCopyDefaults(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	graded := seedAssignment(store, ownerAlice, 10)
	// The stored source carries results that must never leak into defaults.
	graded.Grade = f64(88)
	graded.ActualHoursSpent = f64(6)
	store.addNote(graded.ID, "first note")
	store.addNote(graded.ID, "second note")

	svc := newTestService(store)

	defaults, err := svc.GetCopyDefaults(context.Background(), ownerAlice, graded.ID)
	require.NoError(t, err)

	assert.Equal(t, graded.ID, defaults.SourceID)
	assert.Equal(t, "Copy of Linear Algebra Problem Set", defaults.Title)
	assert.Equal(t, "Chapters 3 and 4", defaults.Description)
	assert.Equal(t, int64(10), defaults.SubjectID)
	assert.Equal(t, "Homework", defaults.Type)
	assert.Equal(t, float64(15), defaults.Weight)
	assert.Equal(t, "High", defaults.Priority)
	assert.Equal(t, int64(2), defaults.NoteCount)

	// Policy fields: always "Not Started" and one week after the service
	// clock's day, regardless of the source's own status and due date.
	assert.Equal(t, "Not Started", defaults.Status)
	assert.Equal(t, "2026-03-17", defaults.DueDate)
}

func TestGetCopyDefaultsUnknownAssignment(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, err := svc.GetCopyDefaults(context.Background(), ownerAlice, 999)
	require.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

func TestGetCopyDefaultsForeignOwner(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerBob, "Mathematics")
	bobs := seedAssignment(store, ownerBob, 10)

	svc := newTestService(store)

	_, foreignErr := svc.GetCopyDefaults(context.Background(), ownerAlice, bobs.ID)
	_, missingErr := svc.GetCopyDefaults(context.Background(), ownerAlice, 999)

	// A row owned by someone else must be indistinguishable from a row
	// that does not exist.
	require.ErrorIs(t, foreignErr, apperrors.ErrAssignmentNotFound)
	assert.Equal(t, missingErr, foreignErr)
}

func TestCommitCopyWithNotes(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	src := seedAssignment(store, ownerAlice, 10)
	src.Grade = f64(92)
	src.ActualHoursSpent = f64(8)
	gradeDate := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	src.GradeReceivedDate = &gradeDate
	store.addNote(src.ID, "review eigenvalues")
	store.addNote(src.ID, "office hours Tuesday")
	store.addNote(src.ID, "check problem 4b")

	svc := newTestService(store)

	req := validCopyRequest(10)
	req.CopyNotes = "yes"

	created, err := svc.CommitCopy(context.Background(), ownerAlice, src.ID, req)
	require.NoError(t, err)
	require.NotEqual(t, src.ID, created.ID)

	assert.Equal(t, "Copy of Linear Algebra Problem Set", created.Title)
	assert.Equal(t, "Not Started", created.Status)
	assert.Equal(t, "2026-03-17", created.DueDate)

	// The copy starts with no recorded results even though the source has them.
	assert.Nil(t, created.Grade)
	assert.Nil(t, created.ActualHoursSpent)
	assert.Nil(t, created.GradeReceivedDate)

	require.Len(t, created.Notes, 3)
	assert.Equal(t, "review eigenvalues", created.Notes[0].NoteText)
	assert.Equal(t, "office hours Tuesday", created.Notes[1].NoteText)
	assert.Equal(t, "check problem 4b", created.Notes[2].NoteText)
	for _, n := range created.Notes {
		assert.Equal(t, created.ID, n.AssignmentID)
	}

	// Source notes are untouched.
	srcNotes, err := store.ListByAssignment(context.Background(), src.ID)
	require.NoError(t, err)
	assert.Len(t, srcNotes, 3)
}

func TestCommitCopyNotesRequireExactFlag(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	src := seedAssignment(store, ownerAlice, 10)
	store.addNote(src.ID, "a note")

	svc := newTestService(store)

	for _, flag := range []string{"", "no", "Yes", "YES", "true", "on", "1"} {
		req := validCopyRequest(10)
		req.CopyNotes = flag

		created, err := svc.CommitCopy(context.Background(), ownerAlice, src.ID, req)
		require.NoError(t, err, "flag %q", flag)
		assert.Empty(t, created.Notes, "flag %q must not copy notes", flag)
	}
}

func TestCommitCopyUnknownSource(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	svc := newTestService(store)

	_, err := svc.CommitCopy(context.Background(), ownerAlice, 999, validCopyRequest(10))
	require.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
	assert.Empty(t, store.assignments)
}

func TestCommitCopyForeignSource(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerBob, "Mathematics")
	bobs := seedAssignment(store, ownerBob, 10)

	svc := newTestService(store)

	_, err := svc.CommitCopy(context.Background(), ownerAlice, bobs.ID, validCopyRequest(10))
	require.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
	assert.Len(t, store.assignments, 1)
}

func TestCommitCopyForeignSubject(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	store.addSubject(20, ownerBob, "History")
	src := seedAssignment(store, ownerAlice, 10)

	svc := newTestService(store)

	_, err := svc.CommitCopy(context.Background(), ownerAlice, src.ID, validCopyRequest(20))
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "subjectId", apperrors.FieldOf(err))
	assert.Len(t, store.assignments, 1)
}

func TestCommitCopyRejectsUnknownEnums(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	src := seedAssignment(store, ownerAlice, 10)

	svc := newTestService(store)

	cases := []struct {
		field  string
		mutate func(*dto.CopyAssignmentRequest)
	}{
		{"status", func(r *dto.CopyAssignmentRequest) { r.Status = "Done" }},
		{"priority", func(r *dto.CopyAssignmentRequest) { r.Priority = "Urgent" }},
		{"type", func(r *dto.CopyAssignmentRequest) { r.Type = "Quiz" }},
	}

	for _, tc := range cases {
		req := validCopyRequest(10)
		tc.mutate(req)

		_, err := svc.CommitCopy(context.Background(), ownerAlice, src.ID, req)
		require.ErrorIs(t, err, apperrors.ErrValidationFailed, "field %s", tc.field)
		assert.Equal(t, tc.field, apperrors.FieldOf(err))
	}

	// None of the rejected submissions created a record.
	assert.Len(t, store.assignments, 1)
}

func TestCommitCopyHoursAndGradeFields(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	src := seedAssignment(store, ownerAlice, 10)
	src.EstimatedHours = f64(12)
	src.ActualHoursSpent = f64(9)
	src.Grade = f64(75)

	svc := newTestService(store)

	// Empty estimated hours stay NULL even though the source has a value.
	created, err := svc.CommitCopy(context.Background(), ownerAlice, src.ID, validCopyRequest(10))
	require.NoError(t, err)
	assert.Nil(t, created.EstimatedHours)
	assert.Nil(t, created.ActualHoursSpent)
	assert.Nil(t, created.Grade)
	assert.Nil(t, created.GradeReceivedDate)

	// A submitted estimate is carried onto the copy as-is.
	req := validCopyRequest(10)
	req.EstimatedHours = f64(3.5)
	created, err = svc.CommitCopy(context.Background(), ownerAlice, src.ID, req)
	require.NoError(t, err)
	require.NotNil(t, created.EstimatedHours)
	assert.Equal(t, 3.5, *created.EstimatedHours)
	assert.Nil(t, created.ActualHoursSpent)
	assert.Nil(t, created.Grade)
}

func TestCommitCopySubjectVanishesBeforeInsert(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	src := seedAssignment(store, ownerAlice, 10)
	store.createErr = apperrors.ErrSubjectNotFound

	svc := newTestService(store)

	_, err := svc.CommitCopy(context.Background(), ownerAlice, src.ID, validCopyRequest(10))
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "subjectId", apperrors.FieldOf(err))
}

func TestCommitCopySurvivesReadFailureAfterCommit(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	src := seedAssignment(store, ownerAlice, 10)
	store.failReadsAfterCreate = true

	svc := newTestService(store)

	// The commit succeeded; a dead connection on the follow-up read must
	// not turn it into an error response.
	created, err := svc.CommitCopy(context.Background(), ownerAlice, src.ID, validCopyRequest(10))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, src.ID, created.ID)
	assert.Equal(t, "Copy of Linear Algebra Problem Set", created.Title)
	assert.Equal(t, "Not Started", created.Status)
}

func TestCommitCopyEnforcesLengthLimits(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	src := seedAssignment(store, ownerAlice, 10)

	svc := newTestService(store)

	// Escaping can push a title past the stored column width even when the
	// raw submission fits.
	req := validCopyRequest(10)
	req.Title = strings.Repeat("<", 100)
	_, err := svc.CommitCopy(context.Background(), ownerAlice, src.ID, req)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "title", apperrors.FieldOf(err))

	req = validCopyRequest(10)
	req.Description = strings.Repeat("a", 5001)
	_, err = svc.CommitCopy(context.Background(), ownerAlice, src.ID, req)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "description", apperrors.FieldOf(err))

	assert.Len(t, store.assignments, 1)
}

func TestCommitCopySanitizesText(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	src := seedAssignment(store, ownerAlice, 10)

	svc := newTestService(store)

	req := validCopyRequest(10)
	req.Title = "  <script>alert(1)</script> Essay  "
	req.Description = "Notes & \"quotes\""

	created, err := svc.CommitCopy(context.Background(), ownerAlice, src.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt; Essay", created.Title)
	assert.Equal(t, "Notes &amp; &#34;quotes&#34;", created.Description)
}

func TestCommitCopyBlankTitleAfterSanitization(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	src := seedAssignment(store, ownerAlice, 10)

	svc := newTestService(store)

	req := validCopyRequest(10)
	req.Title = "   "

	_, err := svc.CommitCopy(context.Background(), ownerAlice, src.ID, req)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "title", apperrors.FieldOf(err))
}

func TestCommitCopyRejectsBadDates(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	src := seedAssignment(store, ownerAlice, 10)

	svc := newTestService(store)

	req := validCopyRequest(10)
	req.DueDate = "17-03-2026"
	_, err := svc.CommitCopy(context.Background(), ownerAlice, src.ID, req)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "dueDate", apperrors.FieldOf(err))

	req = validCopyRequest(10)
	bad := "25:70"
	req.TimeDue = &bad
	_, err = svc.CommitCopy(context.Background(), ownerAlice, src.ID, req)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "timeDue", apperrors.FieldOf(err))
}

func TestCommitCopyPersistenceFailure(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	src := seedAssignment(store, ownerAlice, 10)
	store.createErr = errors.New("connection reset")

	svc := newTestService(store)

	_, err := svc.CommitCopy(context.Background(), ownerAlice, src.ID, validCopyRequest(10))
	require.ErrorIs(t, err, apperrors.ErrPersistenceFailure)
}

func TestGetAssignmentByIDIncludesNotes(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	src := seedAssignment(store, ownerAlice, 10)
	store.addNote(src.ID, "only note")

	svc := newTestService(store)

	got, err := svc.GetAssignmentByID(context.Background(), ownerAlice, src.ID)
	require.NoError(t, err)
	assert.Equal(t, src.ID, got.ID)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "only note", got.Notes[0].NoteText)

	_, err = svc.GetAssignmentByID(context.Background(), ownerBob, src.ID)
	require.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

func TestGetAssignmentNotesGuardsOwnership(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	src := seedAssignment(store, ownerAlice, 10)
	store.addNote(src.ID, "n1")
	store.addNote(src.ID, "n2")

	svc := newTestService(store)

	notes, err := svc.GetAssignmentNotes(context.Background(), ownerAlice, src.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "n1", notes[0].NoteText)
	assert.Equal(t, "n2", notes[1].NoteText)

	_, err = svc.GetAssignmentNotes(context.Background(), ownerBob, src.ID)
	require.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

func TestGetAllAssignmentsFiltersAndPaginates(t *testing.T) {
	store := newMemStore()
	store.addSubject(10, ownerAlice, "Mathematics")
	store.addSubject(11, ownerAlice, "English")
	for i := 0; i < 3; i++ {
		seedAssignment(store, ownerAlice, 10)
	}
	essay := store.addAssignment(models.Assignment{
		UserID: ownerAlice, SubjectID: 11, Title: "Essay", Description: "d",
		Type: models.TypeEssay, DueDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Weight: 30, Status: models.StatusInProgress, Priority: models.PriorityMedium,
	})
	seedAssignment(store, ownerBob, 10)

	svc := newTestService(store)

	page, err := svc.GetAllAssignments(context.Background(), ownerAlice, &dto.AssignmentFilterRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.TotalItems)
	assert.Len(t, page.Assignments, 2)
	assert.Equal(t, 2, page.TotalPages)

	subjectID := int64(11)
	filtered, err := svc.GetAllAssignments(context.Background(), ownerAlice, &dto.AssignmentFilterRequest{SubjectID: &subjectID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, filtered.Assignments, 1)
	assert.Equal(t, essay.ID, filtered.Assignments[0].ID)

	status := "In Progress"
	byStatus, err := svc.GetAllAssignments(context.Background(), ownerAlice, &dto.AssignmentFilterRequest{Status: &status, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, byStatus.Assignments, 1)
	assert.Equal(t, "In Progress", byStatus.Assignments[0].Status)
}
