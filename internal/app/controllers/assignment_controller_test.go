package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/models/dto"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/middleware"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/pkg/apperrors"
)

// stubAssignmentService lets each test plug in just the method it exercises.
type stubAssignmentService struct {
	getAll       func(ctx context.Context, ownerID int64, filter *dto.AssignmentFilterRequest) (*dto.AssignmentListResponse, error)
	getByID      func(ctx context.Context, ownerID, id int64) (*dto.AssignmentResponse, error)
	getNotes     func(ctx context.Context, ownerID, id int64) ([]dto.NoteResponse, error)
	copyDefaults func(ctx context.Context, ownerID, sourceID int64) (*dto.CopyDefaultsResponse, error)
	commitCopy   func(ctx context.Context, ownerID, sourceID int64, req *dto.CopyAssignmentRequest) (*dto.AssignmentResponse, error)
}

func (s *stubAssignmentService) GetAllAssignments(ctx context.Context, ownerID int64, filter *dto.AssignmentFilterRequest) (*dto.AssignmentListResponse, error) {
	return s.getAll(ctx, ownerID, filter)
}

func (s *stubAssignmentService) GetAssignmentByID(ctx context.Context, ownerID, id int64) (*dto.AssignmentResponse, error) {
	return s.getByID(ctx, ownerID, id)
}

func (s *stubAssignmentService) GetAssignmentNotes(ctx context.Context, ownerID, id int64) ([]dto.NoteResponse, error) {
	return s.getNotes(ctx, ownerID, id)
}

func (s *stubAssignmentService) GetCopyDefaults(ctx context.Context, ownerID, sourceID int64) (*dto.CopyDefaultsResponse, error) {
	return s.copyDefaults(ctx, ownerID, sourceID)
}

func (s *stubAssignmentService) CommitCopy(ctx context.Context, ownerID, sourceID int64, req *dto.CopyAssignmentRequest) (*dto.AssignmentResponse, error) {
	return s.commitCopy(ctx, ownerID, sourceID, req)
}

// newAssignmentRouter mounts the assignment routes behind a middleware that
// injects a fixed requester id, mirroring what JWTAuth does after token
// validation. authenticated=false mounts them with no identity at all.
func newAssignmentRouter(svc *stubAssignmentService, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/v1")
	if authenticated {
		group.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserIDKey, int64(1))
			c.Next()
		})
	}

	controller := NewAssignmentController(svc)
	group.GET("/assignments/:id/copy", controller.GetCopyDefaults)
	group.POST("/assignments/:id/copy", controller.CommitCopy)
	group.GET("/assignments/:id", controller.GetAssignmentByID)
	group.GET("/assignments/:id/notes", controller.GetAssignmentNotes)
	group.GET("/assignments", controller.GetAllAssignments)
	return router
}

func performRequest(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validCopyBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"title":       "Copy of Essay 1",
		"description": "Rewrite with sources",
		"subjectId":   10,
		"type":        "Essay",
		"dueDate":     "2026-03-17",
		"weight":      20,
		"status":      "Not Started",
		"priority":    "Medium",
	})
	require.NoError(t, err)
	return body
}

func TestGetCopyDefaultsEndpoint(t *testing.T) {
	svc := &stubAssignmentService{
		copyDefaults: func(_ context.Context, ownerID, sourceID int64) (*dto.CopyDefaultsResponse, error) {
			assert.Equal(t, int64(1), ownerID)
			assert.Equal(t, int64(42), sourceID)
			return &dto.CopyDefaultsResponse{
				SourceID:  42,
				Title:     "Copy of Essay 1",
				SubjectID: 10,
				Status:    "Not Started",
				DueDate:   "2026-03-17",
				NoteCount: 2,
			}, nil
		},
	}
	router := newAssignmentRouter(svc, true)

	rec := performRequest(router, http.MethodGet, "/api/v1/assignments/42/copy", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool                     `json:"success"`
		Data    dto.CopyDefaultsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "Copy of Essay 1", envelope.Data.Title)
	assert.Equal(t, "Not Started", envelope.Data.Status)
	assert.Equal(t, int64(2), envelope.Data.NoteCount)
}

func TestGetCopyDefaultsRequiresAuthentication(t *testing.T) {
	svc := &stubAssignmentService{
		copyDefaults: func(_ context.Context, _, _ int64) (*dto.CopyDefaultsResponse, error) {
			t.Fatal("service must not be reached without identity")
			return nil, nil
		},
	}
	router := newAssignmentRouter(svc, false)

	rec := performRequest(router, http.MethodGet, "/api/v1/assignments/42/copy", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetCopyDefaultsNotFound(t *testing.T) {
	svc := &stubAssignmentService{
		copyDefaults: func(_ context.Context, _, _ int64) (*dto.CopyDefaultsResponse, error) {
			return nil, apperrors.ErrAssignmentNotFound
		},
	}
	router := newAssignmentRouter(svc, true)

	rec := performRequest(router, http.MethodGet, "/api/v1/assignments/42/copy", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope struct {
		Error *dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, envelope.Error.Code)
}

func TestGetCopyDefaultsRejectsBadID(t *testing.T) {
	svc := &stubAssignmentService{
		copyDefaults: func(_ context.Context, _, _ int64) (*dto.CopyDefaultsResponse, error) {
			t.Fatal("service must not be reached with a malformed id")
			return nil, nil
		},
	}
	router := newAssignmentRouter(svc, true)

	for _, id := range []string{"abc", "0", "-3"} {
		rec := performRequest(router, http.MethodGet, "/api/v1/assignments/"+id+"/copy", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "id %q", id)
	}
}

func TestCommitCopyEndpoint(t *testing.T) {
	svc := &stubAssignmentService{
		commitCopy: func(_ context.Context, ownerID, sourceID int64, req *dto.CopyAssignmentRequest) (*dto.AssignmentResponse, error) {
			assert.Equal(t, int64(1), ownerID)
			assert.Equal(t, int64(42), sourceID)
			assert.Equal(t, "Copy of Essay 1", req.Title)
			return &dto.AssignmentResponse{ID: 77, Title: req.Title, Status: req.Status}, nil
		},
	}
	router := newAssignmentRouter(svc, true)

	rec := performRequest(router, http.MethodPost, "/api/v1/assignments/42/copy", validCopyBody(t))
	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Success bool                   `json:"success"`
		Data    dto.AssignmentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, int64(77), envelope.Data.ID)
}

func TestCommitCopyRejectsMalformedBody(t *testing.T) {
	svc := &stubAssignmentService{
		commitCopy: func(_ context.Context, _, _ int64, _ *dto.CopyAssignmentRequest) (*dto.AssignmentResponse, error) {
			t.Fatal("service must not be reached with an invalid body")
			return nil, nil
		},
	}
	router := newAssignmentRouter(svc, true)

	// Missing required fields.
	rec := performRequest(router, http.MethodPost, "/api/v1/assignments/42/copy", []byte(`{"title":"x"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Due date in the wrong layout.
	body, err := json.Marshal(map[string]interface{}{
		"title":       "Copy of Essay 1",
		"description": "d",
		"subjectId":   10,
		"type":        "Essay",
		"dueDate":     "17/03/2026",
		"weight":      20,
		"status":      "Not Started",
		"priority":    "Medium",
	})
	require.NoError(t, err)
	rec = performRequest(router, http.MethodPost, "/api/v1/assignments/42/copy", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommitCopyMapsValidationError(t *testing.T) {
	svc := &stubAssignmentService{
		commitCopy: func(_ context.Context, _, _ int64, _ *dto.CopyAssignmentRequest) (*dto.AssignmentResponse, error) {
			return nil, apperrors.NewValidationError("subjectId", "subject does not exist for this account")
		},
	}
	router := newAssignmentRouter(svc, true)

	rec := performRequest(router, http.MethodPost, "/api/v1/assignments/42/copy", validCopyBody(t))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Error *dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, envelope.Error.Code)
	assert.Equal(t, "subjectId", envelope.Error.Field)
}

func TestCommitCopyMapsPersistenceFailure(t *testing.T) {
	svc := &stubAssignmentService{
		commitCopy: func(_ context.Context, _, _ int64, _ *dto.CopyAssignmentRequest) (*dto.AssignmentResponse, error) {
			return nil, apperrors.NewPersistenceError(context.DeadlineExceeded)
		},
	}
	router := newAssignmentRouter(svc, true)

	rec := performRequest(router, http.MethodPost, "/api/v1/assignments/42/copy", validCopyBody(t))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var envelope struct {
		Error *dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, dto.ErrorCodeDatabaseError, envelope.Error.Code)
}

func TestGetAssignmentNotesEndpoint(t *testing.T) {
	svc := &stubAssignmentService{
		getNotes: func(_ context.Context, ownerID, id int64) ([]dto.NoteResponse, error) {
			assert.Equal(t, int64(1), ownerID)
			assert.Equal(t, int64(5), id)
			return []dto.NoteResponse{
				{ID: 1, AssignmentID: 5, NoteText: "first"},
				{ID: 2, AssignmentID: 5, NoteText: "second"},
			}, nil
		},
	}
	router := newAssignmentRouter(svc, true)

	rec := performRequest(router, http.MethodGet, "/api/v1/assignments/5/notes", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []dto.NoteResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "first", envelope.Data[0].NoteText)
}

func TestGetAllAssignmentsBindsFilter(t *testing.T) {
	svc := &stubAssignmentService{
		getAll: func(_ context.Context, _ int64, filter *dto.AssignmentFilterRequest) (*dto.AssignmentListResponse, error) {
			require.NotNil(t, filter.SubjectID)
			assert.Equal(t, int64(10), *filter.SubjectID)
			assert.Equal(t, 2, filter.Page)
			assert.Equal(t, 5, filter.PageSize)
			return &dto.AssignmentListResponse{
				Assignments: []dto.AssignmentResponse{},
				PaginationInfo: dto.PaginationInfo{
					CurrentPage: 2,
					PageSize:    5,
					TotalItems:  12,
					TotalPages:  3,
				},
			}, nil
		},
	}
	router := newAssignmentRouter(svc, true)

	rec := performRequest(router, http.MethodGet, "/api/v1/assignments?subjectId=10&page=2&pageSize=5", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success    bool                `json:"success"`
		Pagination *dto.PaginationInfo `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 2, envelope.Pagination.CurrentPage)
	assert.Equal(t, int64(12), envelope.Pagination.TotalItems)
	assert.Equal(t, 3, envelope.Pagination.TotalPages)
}
