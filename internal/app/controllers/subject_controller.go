package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/models/dto"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/services"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/middleware"
)

// SubjectController handles subject related operations
type SubjectController struct {
	subjectService services.SubjectService
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService services.SubjectService) *SubjectController {
	return &SubjectController{
		subjectService: subjectService,
	}
}

// GetSubjects handles listing the requester's subjects
// @Summary List subjects
// @Description Retrieves the requester's subjects for dropdown population
// @Tags subjects
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SubjectListResponse} "Subjects retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /subjects [get]
func (c *SubjectController) GetSubjects(ctx *gin.Context) {
	userID, ok := requesterID(ctx)
	if !ok {
		return
	}

	response, err := c.subjectService.GetSubjects(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
