package controllers

import (
	testutils "github.com/alex-pricope/hackathon-scoring/api/controllers/testing"
	"github.com/alex-pricope/hackathon-scoring/api/transport"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/scoring"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

const (
	testSecret     = "test-secret"
	testAdminToken = "secret"
)

type testServer struct {
	mem    *storage.Memory
	router *gin.Engine
	auth   *transport.Authenticator
}

// setupTestServer seeds hackathon h1 (organizer "org", judges j1 and j2)
// with a single round r1 scored on c1 (weight 60) and c2 (weight 40), both
// out of 10, and teams A and B.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	logging.Log = logrus.New()
	logging.Log.SetLevel(logrus.WarnLevel)

	mem := storage.NewMemory()
	mem.Hackathons.Put(&storage.Hackathon{ID: "h1", Name: "Spring Hack", OrganizerID: "org", Judges: []string{"j1", "j2"}})
	mem.Rounds.Put(&storage.Round{ID: "r1", HackathonID: "h1", Name: "Prototype", Order: 1})
	mem.Criteria.Put(&storage.Criterion{ID: "c1", RoundID: "r1", Name: "Innovation", Weight: 60, MaxScore: 10, Order: 1})
	mem.Criteria.Put(&storage.Criterion{ID: "c2", RoundID: "r1", Name: "Execution", Weight: 40, MaxScore: 10, Order: 2})
	mem.Teams.Put(&storage.Team{ID: "A", HackathonID: "h1", Name: "Alpha"})
	mem.Teams.Put(&storage.Team{ID: "B", HackathonID: "h1", Name: "Bravo"})
	for i, team := range []string{"A", "B"} {
		mem.Submissions.Put(&storage.Submission{
			ID:               "s" + team,
			HackathonID:      "h1",
			RoundID:          "r1",
			TeamID:           team,
			SubmittedAt:      time.Date(2026, 3, 1, 10, i, 0, 0, time.UTC),
			EvaluationStatus: storage.SubmissionPending,
		})
	}

	engine := scoring.NewEngine(scoring.Stores{
		Registry: scoring.Registry{
			Hackathons: mem.Hackathons,
			Rounds:     mem.Rounds,
			Criteria:   mem.Criteria,
		},
		Submissions: mem.Submissions,
		Evaluations: mem.Evaluations,
		Results:     mem.Results,
	}, scoring.Options{MaxWorkers: 2})

	auth := transport.NewAuthenticator(testSecret, testAdminToken)
	r := transport.NewRouter(gin.TestMode, auth)
	NewEvaluationController(engine.Evaluations).RegisterRoutes(r)
	NewResultsController(engine, mem.Teams).RegisterRoutes(r)
	NewAdminController(engine.Admin).RegisterRoutes(r)

	return &testServer{mem: mem, router: r, auth: auth}
}

func (s *testServer) as(t *testing.T, userID string, role scoring.Role) map[string]string {
	t.Helper()
	token, err := s.auth.IssueToken(userID, role, time.Hour)
	require.NoError(t, err)
	return testutils.Bearer(token)
}

func evaluateBody(submissionID string, c1, c2 float64) map[string]interface{} {
	return map[string]interface{}{
		"submissionId": submissionID,
		"scores": []map[string]interface{}{
			{"criteriaId": "c1", "score": c1},
			{"criteriaId": "c2", "score": c2},
		},
	}
}
