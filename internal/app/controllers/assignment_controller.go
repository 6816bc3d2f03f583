package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/models/dto"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/services"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/middleware"
)

// AssignmentController handles assignment operations, the copy flow included
type AssignmentController struct {
	assignmentService services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
	}
}

// parseAssignmentID validates the path id as a positive integer. A missing
// or malformed id is reported as a validation failure without touching the
// store.
func parseAssignmentID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment ID")
		errorDetail = errorDetail.WithDetails("Assignment ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func requesterID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.RequesterID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User not authenticated")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return userID, true
}

// GetAllAssignments handles listing the requester's assignments
// @Summary List assignments
// @Description Retrieves the requester's assignments with optional filtering and pagination
// @Tags assignments
// @Accept json
// @Produce json
// @Param subjectId query int false "Filter by subject ID"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=[]dto.AssignmentResponse} "Assignments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /assignments [get]
func (c *AssignmentController) GetAllAssignments(ctx *gin.Context) {
	userID, ok := requesterID(ctx)
	if !ok {
		return
	}

	var filter dto.AssignmentFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	response, err := c.assignmentService.GetAllAssignments(ctx, userID, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(response.Assignments, response.PaginationInfo))
}

// GetAssignmentByID handles retrieving one owned assignment with its notes
// @Summary Get assignment by ID
// @Description Retrieves an assignment owned by the requester, including its notes
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /assignments/{id} [get]
func (c *AssignmentController) GetAssignmentByID(ctx *gin.Context) {
	userID, ok := requesterID(ctx)
	if !ok {
		return
	}

	id, ok := parseAssignmentID(ctx)
	if !ok {
		return
	}

	assignment, err := c.assignmentService.GetAssignmentByID(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(assignment))
}

// GetAssignmentNotes handles listing the notes of one owned assignment
// @Summary List assignment notes
// @Description Retrieves the notes of an assignment owned by the requester
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.NoteResponse} "Notes retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /assignments/{id}/notes [get]
func (c *AssignmentController) GetAssignmentNotes(ctx *gin.Context) {
	userID, ok := requesterID(ctx)
	if !ok {
		return
	}

	id, ok := parseAssignmentID(ctx)
	if !ok {
		return
	}

	notes, err := c.assignmentService.GetAssignmentNotes(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notes))
}

// GetCopyDefaults handles the pre-filled form payload for duplicating an assignment
// @Summary Get copy defaults
// @Description Returns the pre-filled form values for duplicating an assignment: title prefixed with "Copy of", status reset to Not Started, due date one week out, remaining fields carried from the source
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path int true "Source assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.CopyDefaultsResponse} "Copy defaults retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /assignments/{id}/copy [get]
func (c *AssignmentController) GetCopyDefaults(ctx *gin.Context) {
	userID, ok := requesterID(ctx)
	if !ok {
		return
	}

	id, ok := parseAssignmentID(ctx)
	if !ok {
		return
	}

	defaults, err := c.assignmentService.GetCopyDefaults(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(defaults))
}

// CommitCopy handles committing a copy submission
// @Summary Commit an assignment copy
// @Description Creates a new assignment from the submitted fields and, when copyNotes is "yes", duplicates the source assignment's notes under the new record
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path int true "Source assignment ID"
// @Param request body dto.CopyAssignmentRequest true "Copy submission"
// @Success 201 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment copied successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid submission"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /assignments/{id}/copy [post]
func (c *AssignmentController) CommitCopy(ctx *gin.Context) {
	userID, ok := requesterID(ctx)
	if !ok {
		return
	}

	id, ok := parseAssignmentID(ctx)
	if !ok {
		return
	}

	var req dto.CopyAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	created, err := c.assignmentService.CommitCopy(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created))
}
