package controllers

import (
	testutils "github.com/alex-pricope/hackathon-scoring/api/controllers/testing"
	"github.com/alex-pricope/hackathon-scoring/api/models"
	"github.com/alex-pricope/hackathon-scoring/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"testing"
)

// evaluateAll has both judges submit A at 10/8 and B at 9/9, so both teams
// end on an average of 18 and A wins the tie by submitting first.
func evaluateAll(t *testing.T, s *testServer) {
	t.Helper()
	for _, judge := range []string{"j1", "j2"} {
		headers := s.as(t, judge, scoring.RoleJudge)
		res := testutils.PerformRequest(s.router, http.MethodPost, "/api/evaluations", evaluateBody("sA", 10, 8), headers)
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
		res = testutils.PerformRequest(s.router, http.MethodPost, "/api/evaluations", evaluateBody("sB", 9, 9), headers)
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	}
}

func TestResultsLifecycle(t *testing.T) {
	s := setupTestServer(t)
	evaluateAll(t, s)
	organizer := s.as(t, "org", scoring.RoleOrganizer)

	t.Run("Happy path - calculate round results", func(t *testing.T) {
		res := testutils.PerformRequest(s.router, http.MethodPost, "/api/rounds/r1/results/calculate", nil, organizer)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		results := testutils.Decode[[]models.ResultResponse](t, res)
		require.Len(t, results, 2)
		assert.Equal(t, "A", results[0].TeamID)
		assert.Equal(t, "Alpha", results[0].TeamName)
		assert.Equal(t, 1, results[0].Rank)
		assert.Equal(t, "B", results[1].TeamID)
		assert.Equal(t, 2, results[1].Rank)
		assert.Equal(t, 18.0, results[1].AverageScore)
		assert.False(t, results[0].IsPublished)
	})

	t.Run("Happy path - unpublished rows are hidden from the public", func(t *testing.T) {
		res := testutils.PerformRequest(s.router, http.MethodGet, "/api/rounds/r1/results?unpublished=true", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Empty(t, testutils.Decode[[]models.ResultResponse](t, res))

		res = testutils.PerformRequest(s.router, http.MethodGet, "/api/rounds/r1/results?unpublished=true", nil, organizer)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Len(t, testutils.Decode[[]models.ResultResponse](t, res), 2)
	})

	t.Run("Happy path - publish round", func(t *testing.T) {
		res := testutils.PerformRequest(s.router, http.MethodPost, "/api/hackathons/h1/results/publish?roundId=r1", nil, organizer)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		pub := testutils.Decode[models.PublicationResponse](t, res)
		assert.True(t, pub.Published)
		assert.Equal(t, "r1", pub.Scope)
		assert.Equal(t, 2, pub.ModifiedCount)

		res = testutils.PerformRequest(s.router, http.MethodGet, "/api/rounds/r1/results", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		results := testutils.Decode[[]models.ResultResponse](t, res)
		require.Len(t, results, 2)
		assert.True(t, results[0].IsPublished)
		assert.NotNil(t, results[0].PublishedAt)
	})

	t.Run("Happy path - overall results and team view", func(t *testing.T) {
		res := testutils.PerformRequest(s.router, http.MethodPost, "/api/hackathons/h1/results/calculate", nil, organizer)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())
		overall := testutils.Decode[[]models.ResultResponse](t, res)
		require.Len(t, overall, 2)
		assert.Equal(t, "overall", overall[0].ResultType)
		assert.Equal(t, "A", overall[0].TeamID)
		require.Len(t, overall[0].RoundScores, 1)

		res = testutils.PerformRequest(s.router, http.MethodPost, "/api/hackathons/h1/results/publish", nil, organizer)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "overall", testutils.Decode[models.PublicationResponse](t, res).Scope)

		res = testutils.PerformRequest(s.router, http.MethodGet, "/api/hackathons/h1/teams/B/results", nil, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())
		team := testutils.Decode[models.TeamResultsResponse](t, res)
		assert.Equal(t, "Bravo", team.Team.Name)
		require.Len(t, team.Results, 2)
		assert.Equal(t, "round", team.Results[0].ResultType)
		assert.Equal(t, "overall", team.Results[1].ResultType)
	})

	t.Run("Happy path - award a prize", func(t *testing.T) {
		res := testutils.PerformRequest(s.router, http.MethodGet, "/api/hackathons/h1/results", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		winner := testutils.Decode[[]models.ResultResponse](t, res)[0]

		res = testutils.PerformRequest(s.router, http.MethodPatch, "/api/results/"+winner.ID,
			map[string]string{"prize": "Grand prize", "remarks": "Unanimous"}, organizer)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		updated := testutils.Decode[models.ResultResponse](t, res)
		require.NotNil(t, updated.Prize)
		assert.Equal(t, "Grand prize", *updated.Prize)
		assert.Equal(t, "Unanimous", updated.Remarks)
		assert.Equal(t, "Alpha", updated.TeamName)
	})

	t.Run("Happy path - unpublish overall", func(t *testing.T) {
		res := testutils.PerformRequest(s.router, http.MethodPost, "/api/hackathons/h1/results/unpublish", nil, organizer)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, 2, testutils.Decode[models.PublicationResponse](t, res).ModifiedCount)

		res = testutils.PerformRequest(s.router, http.MethodGet, "/api/hackathons/h1/results", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Empty(t, testutils.Decode[[]models.ResultResponse](t, res))
	})

	t.Run("Happy path - delete round results", func(t *testing.T) {
		res := testutils.PerformRequest(s.router, http.MethodDelete, "/api/rounds/r1/results", nil, organizer)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, 2, testutils.Decode[models.DeleteResponse](t, res).Deleted)

		res = testutils.PerformRequest(s.router, http.MethodGet, "/api/rounds/r1/results?unpublished=true", nil, organizer)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Empty(t, testutils.Decode[[]models.ResultResponse](t, res))
	})
}

func TestResultsErrors(t *testing.T) {
	s := setupTestServer(t)
	organizer := s.as(t, "org", scoring.RoleOrganizer)

	t.Run("Unhappy path - calculate before evaluation is complete", func(t *testing.T) {
		res := testutils.PerformRequest(s.router, http.MethodPost, "/api/rounds/r1/results/calculate", nil, organizer)
		require.Equal(t, http.StatusBadRequest, res.Code)
		assert.Contains(t, testutils.Decode[models.ErrorResponse](t, res).Error, "2 of 2 submissions")
	})

	t.Run("Unhappy path - overall before any round is calculated", func(t *testing.T) {
		res := testutils.PerformRequest(s.router, http.MethodPost, "/api/hackathons/h1/results/calculate", nil, organizer)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Unhappy path - judges cannot calculate or publish", func(t *testing.T) {
		judge := s.as(t, "j1", scoring.RoleJudge)
		res := testutils.PerformRequest(s.router, http.MethodPost, "/api/rounds/r1/results/calculate", nil, judge)
		assert.Equal(t, http.StatusForbidden, res.Code)
		res = testutils.PerformRequest(s.router, http.MethodPost, "/api/hackathons/h1/results/publish?roundId=r1", nil, judge)
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("Unhappy path - anonymous writes", func(t *testing.T) {
		res := testutils.PerformRequest(s.router, http.MethodPost, "/api/hackathons/h1/results/publish", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Unhappy path - unknown ids", func(t *testing.T) {
		res := testutils.PerformRequest(s.router, http.MethodGet, "/api/rounds/nope/results", nil, nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
		res = testutils.PerformRequest(s.router, http.MethodGet, "/api/hackathons/h1/teams/nope/results", nil, nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
		res = testutils.PerformRequest(s.router, http.MethodPatch, "/api/results/nope", map[string]string{"remarks": "x"}, organizer)
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Unhappy path - bad query and body", func(t *testing.T) {
		res := testutils.PerformRequest(s.router, http.MethodGet, "/api/rounds/r1/results?unpublished=maybe", nil, organizer)
		assert.Equal(t, http.StatusBadRequest, res.Code)
		res = testutils.PerformRequest(s.router, http.MethodPatch, "/api/results/any", map[string]string{}, organizer)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}
