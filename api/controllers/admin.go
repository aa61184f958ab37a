package controllers

import (
	"github.com/alex-pricope/hackathon-scoring/api/models"
	"github.com/alex-pricope/hackathon-scoring/api/transport"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/scoring"
	"github.com/gin-gonic/gin"
	"net/http"
)

type AdminController struct {
	admin *scoring.ResultAdmin
}

func NewAdminController(admin *scoring.ResultAdmin) *AdminController {
	return &AdminController{
		admin: admin,
	}
}

func (c *AdminController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin", transport.AdminAuthMiddleware())

	group.DELETE("/rounds/:id", c.purgeRound)
}

// @Security AdminToken
// purgeRound godoc
// @Summary Delete every result, evaluation and submission of a round
// @Tags admin
// @Produce json
// @Param id path string true "Round ID"
// @Success 200 {object} models.PurgeResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/rounds/{id} [delete]
func (c *AdminController) purgeRound(g *gin.Context) {
	roundID := g.Param("id")

	steps, err := c.admin.PurgeRound(g.Request.Context(), transport.RequesterFrom(g), roundID)
	if err != nil {
		respondError(g, "ADMIN", err)
		return
	}

	logging.Log.Infof("ADMIN: purged round %s in %d steps", roundID, len(steps))
	g.JSON(http.StatusOK, models.TransformCascadeSteps(roundID, steps))
}
