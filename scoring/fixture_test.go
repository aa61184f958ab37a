package scoring

import (
	"context"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

var (
	admin     = &Requester{UserID: "root", Role: RoleAdmin}
	organizer = &Requester{UserID: "org", Role: RoleOrganizer}
	judgeOne  = &Requester{UserID: "j1", Role: RoleJudge}
	judgeTwo  = &Requester{UserID: "j2", Role: RoleJudge}
	outsider  = &Requester{UserID: "someone", Role: RoleParticipant}
)

var baseTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	mem    *storage.Memory
	engine *Engine
}

// newFixture seeds hackathon h1 (organizer "org") with the given judges and
// two rounds. Round r1 has criteria c1 (weight 60) and c2 (weight 40), both
// out of 10. Round r2 has a single criterion c3 out of 100 with weight 100.
func newFixture(t *testing.T, judges ...string) *fixture {
	t.Helper()
	logging.Log = logrus.New()
	logging.Log.SetLevel(logrus.WarnLevel)

	mem := storage.NewMemory()
	mem.Hackathons.Put(&storage.Hackathon{ID: "h1", Name: "Spring Hack", OrganizerID: "org", Judges: judges})
	mem.Rounds.Put(&storage.Round{ID: "r1", HackathonID: "h1", Name: "Prototype", Order: 1})
	mem.Rounds.Put(&storage.Round{ID: "r2", HackathonID: "h1", Name: "Finals", Order: 2})
	mem.Criteria.Put(&storage.Criterion{ID: "c1", RoundID: "r1", Name: "Innovation", Weight: 60, MaxScore: 10, Order: 1})
	mem.Criteria.Put(&storage.Criterion{ID: "c2", RoundID: "r1", Name: "Execution", Weight: 40, MaxScore: 10, Order: 2})
	mem.Criteria.Put(&storage.Criterion{ID: "c3", RoundID: "r2", Name: "Pitch", Weight: 100, MaxScore: 100, Order: 1})
	for _, team := range []string{"A", "B", "C"} {
		mem.Teams.Put(&storage.Team{ID: team, HackathonID: "h1", Name: "Team " + team})
	}

	engine := NewEngine(Stores{
		Registry: Registry{
			Hackathons: mem.Hackathons,
			Rounds:     mem.Rounds,
			Criteria:   mem.Criteria,
		},
		Submissions: mem.Submissions,
		Evaluations: mem.Evaluations,
		Results:     mem.Results,
	}, Options{MaxWorkers: 2})

	return &fixture{mem: mem, engine: engine}
}

// submit seeds a pending submission for team in round. Submissions are
// spaced a minute apart in call order.
func (f *fixture) submit(roundID, teamID string, offset int) string {
	id := roundID + "-" + teamID
	f.mem.Submissions.Put(&storage.Submission{
		ID:               id,
		HackathonID:      "h1",
		RoundID:          roundID,
		TeamID:           teamID,
		SubmittedAt:      baseTime.Add(time.Duration(offset) * time.Minute),
		EvaluationStatus: storage.SubmissionPending,
	})
	return id
}

func (f *fixture) evaluate(t *testing.T, judge *Requester, submissionID string, status storage.EvaluationStatus, scores map[string]float64) *storage.Evaluation {
	t.Helper()
	in := EvaluateInput{
		SubmissionID: submissionID,
		JudgeID:      judge.UserID,
		Status:       status,
	}
	for _, id := range []string{"c1", "c2", "c3"} {
		if score, ok := scores[id]; ok {
			in.Scores = append(in.Scores, ScoreInput{CriteriaID: id, Score: score})
		}
	}
	record, _, err := f.engine.Evaluations.Evaluate(context.Background(), judge, in)
	require.NoError(t, err)
	return record
}

func (f *fixture) submission(t *testing.T, id string) *storage.Submission {
	t.Helper()
	s, err := f.mem.Submissions.Get(context.Background(), id)
	require.NoError(t, err)
	return s
}

func ranksByTeam(results []*storage.Result) map[string]int {
	ranks := map[string]int{}
	for _, r := range results {
		ranks[r.TeamID] = r.Rank
	}
	return ranks
}
