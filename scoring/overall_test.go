package scoring

import (
	"context"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func seedRoundResult(t *testing.T, f *fixture, roundID, teamID string, total, weighted float64, rank int) {
	t.Helper()
	_, err := f.mem.Results.UpsertScores(context.Background(), &storage.Result{
		ID:            roundID + "-" + teamID,
		HackathonID:   "h1",
		RoundID:       roundID,
		TeamID:        teamID,
		TotalScore:    total,
		AverageScore:  total,
		WeightedScore: weighted,
		Rank:          rank,
		ResultType:    storage.ResultTypeRound,
		CalculatedAt:  baseTime,
	})
	require.NoError(t, err)
}

func byTeam(results []*storage.Result) map[string]*storage.Result {
	m := map[string]*storage.Result{}
	for _, r := range results {
		m[r.TeamID] = r
	}
	return m
}

func TestOverallCalculate(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - sums weighted scores across rounds", func(t *testing.T) {
		f := newFixture(t, "j1")
		seedRoundResult(t, f, "r1", "A", 20, 100, 1)
		seedRoundResult(t, f, "r1", "B", 18, 90, 2)
		seedRoundResult(t, f, "r2", "B", 80, 80, 1)
		seedRoundResult(t, f, "r2", "A", 50, 50, 2)

		results, err := f.engine.Overall.Calculate(ctx, organizer, "h1")
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, map[string]int{"A": 2, "B": 1}, ranksByTeam(results))
		assert.Equal(t, "B", results[0].TeamID)

		teams := byTeam(results)
		assert.Equal(t, 150.0, teams["A"].WeightedScore)
		assert.Equal(t, 170.0, teams["B"].WeightedScore)
		assert.Equal(t, 70.0, teams["A"].TotalScore)
		assert.Equal(t, 35.0, teams["A"].AverageScore)
		assert.Equal(t, storage.ResultTypeOverall, teams["A"].ResultType)
		assert.Empty(t, teams["A"].RoundID)
		assert.Equal(t, []storage.RoundScore{
			{RoundID: "r1", Score: 20, Rank: 1},
			{RoundID: "r2", Score: 50, Rank: 2},
		}, teams["A"].RoundScores)
	})

	t.Run("Happy path - missing rounds still count in the average", func(t *testing.T) {
		f := newFixture(t, "j1")
		seedRoundResult(t, f, "r1", "A", 20, 100, 1)
		seedRoundResult(t, f, "r1", "C", 10, 40, 2)
		seedRoundResult(t, f, "r2", "A", 30, 60, 1)

		results, err := f.engine.Overall.Calculate(ctx, admin, "h1")
		require.NoError(t, err)

		c := byTeam(results)["C"]
		require.NotNil(t, c)
		assert.Equal(t, 5.0, c.AverageScore, "C sat out round two but the divisor is still two")
		assert.Len(t, c.RoundScores, 1)
		assert.Equal(t, 2, c.Rank)
	})

	t.Run("Happy path - ties keep the order teams were first ranked", func(t *testing.T) {
		f := newFixture(t, "j1")
		seedRoundResult(t, f, "r1", "B", 10, 50, 1)
		seedRoundResult(t, f, "r1", "A", 10, 40, 2)
		seedRoundResult(t, f, "r2", "A", 10, 60, 1)
		seedRoundResult(t, f, "r2", "B", 10, 50, 2)

		results, err := f.engine.Overall.Calculate(ctx, organizer, "h1")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"B": 1, "A": 2}, ranksByTeam(results))
	})

	t.Run("Happy path - recalculation keeps publication", func(t *testing.T) {
		f := newFixture(t, "j1")
		seedRoundResult(t, f, "r1", "A", 20, 100, 1)
		seedRoundResult(t, f, "r2", "A", 50, 50, 1)

		_, err := f.engine.Overall.Calculate(ctx, organizer, "h1")
		require.NoError(t, err)
		n, err := f.engine.Publication.Publish(ctx, organizer, "h1", "")
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		seedRoundResult(t, f, "r2", "A", 60, 60, 1)
		results, err := f.engine.Overall.Calculate(ctx, organizer, "h1")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 160.0, results[0].WeightedScore)
		assert.True(t, results[0].IsPublished)
	})

	t.Run("Unhappy path - a round without results", func(t *testing.T) {
		f := newFixture(t, "j1")
		seedRoundResult(t, f, "r1", "A", 20, 100, 1)

		_, err := f.engine.Overall.Calculate(ctx, organizer, "h1")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "round Finals (r2) has no calculated results", verr.Message)
	})

	t.Run("Unhappy path - hackathon without rounds", func(t *testing.T) {
		f := newFixture(t, "j1")
		f.mem.Hackathons.Put(&storage.Hackathon{ID: "h2", OrganizerID: "org"})

		_, err := f.engine.Overall.Calculate(ctx, organizer, "h2")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("Unhappy path - forbidden and missing", func(t *testing.T) {
		f := newFixture(t, "j1")

		_, err := f.engine.Overall.Calculate(ctx, outsider, "h1")
		var ferr *ForbiddenError
		require.ErrorAs(t, err, &ferr)

		_, err = f.engine.Overall.Calculate(ctx, nil, "h1")
		require.ErrorAs(t, err, &ferr)

		_, err = f.engine.Overall.Calculate(ctx, admin, "missing")
		var nerr *NotFoundError
		require.ErrorAs(t, err, &nerr)
	})
}
