package controller

import (
	"errors"

	"quest_nos_backend/internal/service"
	"quest_nos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CandidateController struct {
	CandidateService *service.CandidateService
}

func NewCandidateController(candidateService *service.CandidateService) *CandidateController {
	return &CandidateController{CandidateService: candidateService}
}

// Upsert godoc
// @Summary Create or update a candidate
// @Description Saves the candidate form, matching an existing record by e-mail
// @Tags candidates
// @Accept json
// @Produce json
// @Param body body service.CandidateFormRequest true "Candidate form"
// @Success 200 {object} util.Response{data=model.Candidate}
// @Failure 400 {object} util.Response
// @Router /api/candidates [post]
func (c *CandidateController) Upsert(ctx *gin.Context) {
	var req service.CandidateFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	candidate, err := c.CandidateService.Upsert(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, candidate)
}

// SavePresentation godoc
// @Summary Save personal presentation
// @Description Stores the candidate's free-text presentation and marks the step done
// @Tags candidates
// @Accept json
// @Produce json
// @Param id path string true "Candidate ID"
// @Param body body service.PersonalPresentationRequest true "Presentation"
// @Success 200 {object} util.Response{data=model.Candidate}
// @Failure 404 {object} util.Response
// @Router /api/candidates/{id}/presentation [post]
func (c *CandidateController) SavePresentation(ctx *gin.Context) {
	var req service.PersonalPresentationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	candidate, err := c.CandidateService.SavePresentation(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.Error(ctx, 404, "Candidato não encontrado")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, candidate)
}

// Get godoc
// @Summary Get a candidate
// @Tags candidates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Candidate ID"
// @Success 200 {object} util.Response{data=model.Candidate}
// @Failure 404 {object} util.Response
// @Router /api/admin/candidates/{id} [get]
func (c *CandidateController) Get(ctx *gin.Context) {
	candidate, err := c.CandidateService.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.Error(ctx, 404, "Candidato não encontrado")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, candidate)
}

// Delete godoc
// @Summary Delete a candidate
// @Description Removes the candidate and every assessment and answer linked to it
// @Tags candidates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Candidate ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/candidates/{id} [delete]
func (c *CandidateController) Delete(ctx *gin.Context) {
	if err := c.CandidateService.Delete(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrCandidateNotFound) {
			util.Error(ctx, 404, "Candidato não encontrado")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
