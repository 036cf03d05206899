package controller

import (
	"errors"

	"quest_nos_backend/internal/service"
	"quest_nos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService    *service.ReportService
	CandidateService *service.CandidateService
}

func NewReportController(reportService *service.ReportService, candidateService *service.CandidateService) *ReportController {
	return &ReportController{
		ReportService:    reportService,
		CandidateService: candidateService,
	}
}

// CandidateSummaries godoc
// @Summary Candidate summaries
// @Description Lists every candidate with aggregated assessment figures
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.CandidateSummary}
// @Router /api/admin/reports/candidates [get]
func (c *ReportController) CandidateSummaries(ctx *gin.Context) {
	summaries, err := c.CandidateService.ListSummaries()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summaries)
}

// SubjectPerformance godoc
// @Summary Subject performance
// @Description Average score and answer counts per subject
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.SubjectPerformanceEntry}
// @Router /api/admin/reports/subjects [get]
func (c *ReportController) SubjectPerformance(ctx *gin.Context) {
	rows, err := c.ReportService.SubjectPerformance()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}

// DetailedReport godoc
// @Summary Detailed assessment report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assessment ID"
// @Success 200 {object} util.Response{data=service.DetailedReportEntry}
// @Failure 404 {object} util.Response
// @Router /api/admin/reports/assessments/{id} [get]
func (c *ReportController) DetailedReport(ctx *gin.Context) {
	report, err := c.ReportService.DetailedReport(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.Error(ctx, 404, "Avaliação não encontrada")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, report)
}

// SystemStats godoc
// @Summary System statistics
// @Description Global counters: candidates, assessments, answers, completion rate
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.SystemStats}
// @Router /api/admin/reports/stats [get]
func (c *ReportController) SystemStats(ctx *gin.Context) {
	stats, err := c.ReportService.SystemStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
