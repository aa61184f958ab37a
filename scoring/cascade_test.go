package scoring

import (
	"context"
	"errors"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestCascadePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - re-running after a failure converges", func(t *testing.T) {
		f := newFixture(t, "j1")
		subA := f.submit("r1", "A", 0)
		subB := f.submit("r1", "B", 1)
		f.evaluate(t, judgeOne, subA, storage.EvaluationSubmitted, map[string]float64{"c1": 5, "c2": 5})
		f.evaluate(t, judgeOne, subB, storage.EvaluationSubmitted, map[string]float64{"c1": 8, "c2": 2})
		_, err := f.engine.Rounds.Calculate(ctx, organizer, "r1")
		require.NoError(t, err)

		failures := 1
		policy := NewCascadePolicy(
			RoundResultsDependent(f.mem.Rounds, f.mem.Results),
			DependentFunc{
				Label: "evaluations",
				Delete: func(ctx context.Context, roundID string) (int, error) {
					if failures > 0 {
						failures--
						return 0, errors.New("throttled")
					}
					return f.mem.Evaluations.DeleteByRound(ctx, roundID)
				},
			},
			RoundSubmissionsDependent(f.mem.Submissions),
		)

		steps, err := policy.Execute(ctx, "r1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "evaluations")
		assert.Equal(t, []CascadeStep{{Name: "results", Deleted: 2}}, steps)

		records, err := f.mem.Evaluations.ListBySubmission(ctx, subA)
		require.NoError(t, err)
		assert.Len(t, records, 1, "Nothing past the failing step is touched")

		steps, err = policy.Execute(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, []CascadeStep{
			{Name: "results", Deleted: 0},
			{Name: "evaluations", Deleted: 2},
			{Name: "submissions", Deleted: 2},
		}, steps)

		subs, err := f.mem.Submissions.ListByRound(ctx, "r1")
		require.NoError(t, err)
		assert.Empty(t, subs)

		steps, err = policy.Execute(ctx, "r1")
		require.NoError(t, err)
		for _, step := range steps {
			assert.Zero(t, step.Deleted, step.Name)
		}
	})

	t.Run("Unhappy path - cancelled context stops before the first step", func(t *testing.T) {
		f := newFixture(t, "j1")
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		steps, err := NewCascadePolicy(RoundSubmissionsDependent(f.mem.Submissions)).Execute(cctx, "r1")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, steps)
	})
}
