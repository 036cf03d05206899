package controller

import (
	"errors"

	"quest_nos_backend/internal/service"
	"quest_nos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// Submit godoc
// @Summary Submit a questionnaire
// @Description Flattens the nested responses, persists the answers and completes the assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param body body service.SubmissionRequest true "Submission"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.Response
// @Router /api/assessments/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	var req service.SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	req.ClientIP = ctx.ClientIP()
	req.UserAgent = ctx.Request.UserAgent()

	assessment, err := c.AssessmentService.Submit(ctx.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidSubmission):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrCandidateNotFound):
			util.Error(ctx, 404, "Candidato não encontrado")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, assessment)
}

// Answers godoc
// @Summary Assessment answers
// @Description Lists every answer of an assessment, appending the candidate's personal data entries
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} util.Response{data=[]service.AnswerDetail}
// @Failure 404 {object} util.Response
// @Router /api/admin/assessments/{id}/answers [get]
func (c *AssessmentController) Answers(ctx *gin.Context) {
	answers, err := c.AssessmentService.AssessmentAnswers(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.Error(ctx, 404, "Avaliação não encontrada")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, answers)
}

// ByCandidate godoc
// @Summary Candidate assessments
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Candidate ID"
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Router /api/admin/candidates/{id}/assessments [get]
func (c *AssessmentController) ByCandidate(ctx *gin.Context) {
	assessments, err := c.AssessmentService.CandidateAssessments(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, assessments)
}
