package controllers

import (
	"context"
	"errors"
	"github.com/alex-pricope/hackathon-scoring/api/models"
	"github.com/alex-pricope/hackathon-scoring/api/transport"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/scoring"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"github.com/gin-gonic/gin"
	"net/http"
)

type ResultsController struct {
	engine       *scoring.Engine
	teamsStorage storage.TeamStorage
}

func NewResultsController(engine *scoring.Engine, teamStorage storage.TeamStorage) *ResultsController {
	return &ResultsController{
		engine:       engine,
		teamsStorage: teamStorage,
	}
}

func (c *ResultsController) RegisterRoutes(engine *gin.Engine) {
	// Reads are open; unpublished rows are filtered per caller
	public := engine.Group("/api")
	public.GET("/rounds/:id/results", c.getRoundResults)
	public.GET("/hackathons/:id/results", c.getOverallResults)
	public.GET("/hackathons/:id/teams/:teamId/results", c.getTeamResults)

	group := engine.Group("/api", transport.RequireRequester())
	group.POST("/rounds/:id/results/calculate", c.calculateRoundResults)
	group.DELETE("/rounds/:id/results", c.deleteRoundResults)
	group.POST("/hackathons/:id/results/calculate", c.calculateOverallResults)
	group.POST("/hackathons/:id/results/publish", c.publishResults)
	group.POST("/hackathons/:id/results/unpublish", c.unpublishResults)
	group.PATCH("/results/:id", c.updateAward)
}

// @Security BearerToken
// calculateRoundResults godoc
// @Summary Calculate the results of a round
// @Description Re-aggregates every submission of the round and ranks teams by average score. Every submission must have completed evaluation.
// @Tags results
// @Produce json
// @Param id path string true "Round ID"
// @Success 200 {array} models.ResultResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/rounds/{id}/results/calculate [post]
func (c *ResultsController) calculateRoundResults(g *gin.Context) {
	results, err := c.engine.Rounds.Calculate(g.Request.Context(), transport.RequesterFrom(g), g.Param("id"))
	if err != nil {
		respondError(g, "RESULTS", err)
		return
	}
	c.respondResults(g, results)
}

// getRoundResults godoc
// @Summary Get the results of a round
// @Description Only published rows unless the organizer or an admin passes unpublished=true
// @Tags results
// @Produce json
// @Param id path string true "Round ID"
// @Param unpublished query bool false "Include unpublished rows"
// @Success 200 {array} models.ResultResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/rounds/{id}/results [get]
func (c *ResultsController) getRoundResults(g *gin.Context) {
	unpublished, ok := includeUnpublished(g)
	if !ok {
		return
	}
	results, err := c.engine.Reader.RoundResults(g.Request.Context(), transport.RequesterFrom(g), g.Param("id"), unpublished)
	if err != nil {
		respondError(g, "RESULTS", err)
		return
	}
	c.respondResults(g, results)
}

// @Security BearerToken
// deleteRoundResults godoc
// @Summary Delete the results of a round
// @Description Overall results are kept and go stale until recalculated
// @Tags results
// @Produce json
// @Param id path string true "Round ID"
// @Success 200 {object} models.DeleteResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/rounds/{id}/results [delete]
func (c *ResultsController) deleteRoundResults(g *gin.Context) {
	deleted, err := c.engine.Admin.DeleteRoundResults(g.Request.Context(), transport.RequesterFrom(g), g.Param("id"))
	if err != nil {
		respondError(g, "RESULTS", err)
		return
	}
	g.JSON(http.StatusOK, models.DeleteResponse{Deleted: deleted})
}

// @Security BearerToken
// calculateOverallResults godoc
// @Summary Calculate the overall results of a hackathon
// @Description Sums each team's round results and ranks teams by weighted score. Every round needs calculated results.
// @Tags results
// @Produce json
// @Param id path string true "Hackathon ID"
// @Success 200 {array} models.ResultResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/results/calculate [post]
func (c *ResultsController) calculateOverallResults(g *gin.Context) {
	results, err := c.engine.Overall.Calculate(g.Request.Context(), transport.RequesterFrom(g), g.Param("id"))
	if err != nil {
		respondError(g, "RESULTS", err)
		return
	}
	c.respondResults(g, results)
}

// getOverallResults godoc
// @Summary Get the overall results of a hackathon
// @Tags results
// @Produce json
// @Param id path string true "Hackathon ID"
// @Param unpublished query bool false "Include unpublished rows"
// @Success 200 {array} models.ResultResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/results [get]
func (c *ResultsController) getOverallResults(g *gin.Context) {
	unpublished, ok := includeUnpublished(g)
	if !ok {
		return
	}
	results, err := c.engine.Reader.OverallResults(g.Request.Context(), transport.RequesterFrom(g), g.Param("id"), unpublished)
	if err != nil {
		respondError(g, "RESULTS", err)
		return
	}
	c.respondResults(g, results)
}

// getTeamResults godoc
// @Summary Get every result row of one team
// @Tags results
// @Produce json
// @Param id path string true "Hackathon ID"
// @Param teamId path string true "Team ID"
// @Param unpublished query bool false "Include unpublished rows"
// @Success 200 {object} models.TeamResultsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/teams/{teamId}/results [get]
func (c *ResultsController) getTeamResults(g *gin.Context) {
	hackathonID, teamID := g.Param("id"), g.Param("teamId")
	unpublished, ok := includeUnpublished(g)
	if !ok {
		return
	}

	team, err := c.teamsStorage.Get(g.Request.Context(), teamID)
	if err != nil || team.HackathonID != hackathonID {
		if err == nil || errors.Is(err, storage.ErrNotFound) {
			err = &scoring.NotFoundError{Entity: "team", ID: teamID}
		}
		respondError(g, "RESULTS", err)
		return
	}

	results, err := c.engine.Reader.TeamResults(g.Request.Context(), transport.RequesterFrom(g), hackathonID, teamID, unpublished)
	if err != nil {
		respondError(g, "RESULTS", err)
		return
	}

	teamMap := map[string]string{team.ID: team.Name}
	g.JSON(http.StatusOK, models.TeamResultsResponse{
		Team:    models.TransformTeamFromStorage(team),
		Results: models.TransformResultsFromStorage(results, teamMap),
	})
}

// @Security BearerToken
// publishResults godoc
// @Summary Publish results
// @Description Publishes the round results of roundId, or the overall results when roundId is omitted
// @Tags results
// @Produce json
// @Param id path string true "Hackathon ID"
// @Param roundId query string false "Round ID"
// @Success 200 {object} models.PublicationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/results/publish [post]
func (c *ResultsController) publishResults(g *gin.Context) {
	c.togglePublication(g, true)
}

// @Security BearerToken
// unpublishResults godoc
// @Summary Unpublish results
// @Description Hides the round results of roundId, or the overall results when roundId is omitted
// @Tags results
// @Produce json
// @Param id path string true "Hackathon ID"
// @Param roundId query string false "Round ID"
// @Success 200 {object} models.PublicationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/hackathons/{id}/results/unpublish [post]
func (c *ResultsController) unpublishResults(g *gin.Context) {
	c.togglePublication(g, false)
}

func (c *ResultsController) togglePublication(g *gin.Context, publish bool) {
	hackathonID, roundID := g.Param("id"), g.Query("roundId")
	requester := transport.RequesterFrom(g)

	var (
		modified int
		err      error
	)
	if publish {
		modified, err = c.engine.Publication.Publish(g.Request.Context(), requester, hackathonID, roundID)
	} else {
		modified, err = c.engine.Publication.Unpublish(g.Request.Context(), requester, hackathonID, roundID)
	}
	if err != nil {
		respondError(g, "PUBLISH", err)
		return
	}

	scope := roundID
	if scope == "" {
		scope = string(storage.ResultTypeOverall)
	}
	g.JSON(http.StatusOK, models.PublicationResponse{
		Published:     publish,
		Scope:         scope,
		ModifiedCount: modified,
	})
}

// @Security BearerToken
// updateAward godoc
// @Summary Set the prize or remarks of a result
// @Description Omitted fields are left unchanged. An empty prize clears it.
// @Tags results
// @Accept json
// @Produce json
// @Param id path string true "Result ID"
// @Param request body models.AwardRequest true "Award"
// @Success 200 {object} models.ResultResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/results/{id} [patch]
func (c *ResultsController) updateAward(g *gin.Context) {
	var req models.AwardRequest
	if err := g.ShouldBindJSON(&req); err != nil || (req.Prize == nil && req.Remarks == nil) {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request, missing prize or remarks"})
		return
	}

	result, err := c.engine.Admin.UpdateAward(g.Request.Context(), transport.RequesterFrom(g), g.Param("id"),
		scoring.AwardInput{Prize: req.Prize, Remarks: req.Remarks})
	if err != nil {
		respondError(g, "RESULTS", err)
		return
	}

	var teamName string
	if team, err := c.teamsStorage.Get(g.Request.Context(), result.TeamID); err == nil {
		teamName = team.Name
	}
	g.JSON(http.StatusOK, models.TransformResultFromStorage(result, teamName))
}

func (c *ResultsController) respondResults(g *gin.Context, results []*storage.Result) {
	hackathonID := ""
	if len(results) > 0 {
		hackathonID = results[0].HackathonID
	}
	g.JSON(http.StatusOK, models.TransformResultsFromStorage(results, c.teamMap(g.Request.Context(), hackathonID)))
}

// teamMap resolves team names for a hackathon. Results are still returned
// when the lookup fails, just without names.
func (c *ResultsController) teamMap(ctx context.Context, hackathonID string) map[string]string {
	teamMap := make(map[string]string)
	if hackathonID == "" {
		return teamMap
	}
	teams, err := c.teamsStorage.ListByHackathon(ctx, hackathonID)
	if err != nil {
		logging.Log.Warnf("RESULTS: failed to load teams for hackathon %s: %v", hackathonID, err)
		return teamMap
	}
	for _, t := range teams {
		teamMap[t.ID] = t.Name
	}
	return teamMap
}
