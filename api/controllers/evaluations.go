package controllers

import (
	"github.com/alex-pricope/hackathon-scoring/api/models"
	"github.com/alex-pricope/hackathon-scoring/api/transport"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/scoring"
	"github.com/gin-gonic/gin"
	"net/http"
)

type EvaluationController struct {
	evaluations *scoring.EvaluationService
}

func NewEvaluationController(evaluations *scoring.EvaluationService) *EvaluationController {
	return &EvaluationController{
		evaluations: evaluations,
	}
}

func (c *EvaluationController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api", transport.RequireRequester())

	group.POST("/evaluations", c.evaluateSubmission)
	group.DELETE("/evaluations/:id", c.deleteEvaluation)
	group.GET("/submissions/:id/evaluations", c.getEvaluationsBySubmission)
	group.GET("/hackathons/:id/evaluations/mine", c.getMyEvaluations)
}

// @Security BearerToken
// evaluateSubmission godoc
// @Summary Create or replace the caller's evaluation of a submission
// @Description Scores are validated against the round's criteria. Status defaults to submitted.
// @Tags evaluations
// @Accept json
// @Produce json
// @Param request body models.EvaluateRequest true "Evaluation"
// @Success 200 {object} models.EvaluationResponse "Existing evaluation replaced"
// @Success 201 {object} models.EvaluationResponse "Evaluation created"
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/evaluations [post]
func (c *EvaluationController) evaluateSubmission(g *gin.Context) {
	var req models.EvaluateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	requester := transport.RequesterFrom(g)
	record, created, err := c.evaluations.Evaluate(g.Request.Context(), requester, req.ToInput(requester))
	if err != nil {
		respondError(g, "EVALUATION", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	g.JSON(status, models.TransformEvaluationFromStorage(record))
}

// @Security BearerToken
// getEvaluationsBySubmission godoc
// @Summary List the evaluations of a submission
// @Description Judges, the organizer and admins only. Includes the averages over the listed records.
// @Tags evaluations
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} models.EvaluationListResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/submissions/{id}/evaluations [get]
func (c *EvaluationController) getEvaluationsBySubmission(g *gin.Context) {
	submissionID := g.Param("id")

	records, stats, err := c.evaluations.ListBySubmission(g.Request.Context(), transport.RequesterFrom(g), submissionID)
	if err != nil {
		respondError(g, "EVALUATION", err)
		return
	}

	logging.Log.Infof("EVALUATION: listed %d evaluations for submission %s", len(records), submissionID)
	g.JSON(http.StatusOK, models.EvaluationListResponse{
		Evaluations:          models.TransformEvaluationsFromStorage(records),
		Count:                stats.Count,
		AverageScore:         stats.AvgTotal,
		AverageWeightedScore: stats.AvgWeighted,
	})
}

// @Security BearerToken
// getMyEvaluations godoc
// @Summary List the caller's own evaluations in a hackathon
// @Tags evaluations
// @Produce json
// @Param id path string true "Hackathon ID"
// @Success 200 {array} models.EvaluationResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/evaluations/mine [get]
func (c *EvaluationController) getMyEvaluations(g *gin.Context) {
	records, err := c.evaluations.ListMine(g.Request.Context(), transport.RequesterFrom(g), g.Param("id"))
	if err != nil {
		respondError(g, "EVALUATION", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformEvaluationsFromStorage(records))
}

// @Security BearerToken
// deleteEvaluation godoc
// @Summary Delete an evaluation
// @Description The submission aggregate is not recomputed.
// @Tags evaluations
// @Produce json
// @Param id path string true "Evaluation ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/evaluations/{id} [delete]
func (c *EvaluationController) deleteEvaluation(g *gin.Context) {
	if err := c.evaluations.Delete(g.Request.Context(), transport.RequesterFrom(g), g.Param("id")); err != nil {
		respondError(g, "EVALUATION", err)
		return
	}
	g.Status(http.StatusNoContent)
}
