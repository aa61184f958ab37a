package api

import (
	"context"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestSeed(t *testing.T) {
	logging.Log = logrus.New()
	ctx := context.Background()

	t.Run("Happy path - local seed file fills the registry", func(t *testing.T) {
		seed, err := LoadSeed("../seed.local.yaml")
		require.NoError(t, err)

		mem := storage.NewMemory()
		require.NoError(t, seed.Apply(mem))

		hackathon, err := mem.Hackathons.Get(ctx, "h1")
		require.NoError(t, err)
		assert.Equal(t, "org", hackathon.OrganizerID)
		assert.Equal(t, []string{"j1", "j2"}, hackathon.Judges)

		rounds, err := mem.Rounds.ListByHackathon(ctx, "h1")
		require.NoError(t, err)
		require.Len(t, rounds, 2)
		assert.Equal(t, "r1", rounds[0].ID)

		criteria, err := mem.Criteria.ListByRound(ctx, "r1")
		require.NoError(t, err)
		require.Len(t, criteria, 2)
		assert.Equal(t, "Innovation", criteria[0].Name)
		assert.Equal(t, 60.0, criteria[0].Weight)
		assert.Equal(t, 10.0, criteria[0].MaxScore)

		team, err := mem.Teams.Get(ctx, "B")
		require.NoError(t, err)
		assert.Equal(t, "Bravo", team.Name)

		subs, err := mem.Submissions.ListByRound(ctx, "r1")
		require.NoError(t, err)
		require.Len(t, subs, 2)
		assert.Equal(t, "sA1", subs[0].ID)
		assert.Equal(t, storage.SubmissionPending, subs[0].EvaluationStatus)
		assert.True(t, subs[0].SubmittedAt.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)))
	})

	t.Run("Unhappy path - missing file", func(t *testing.T) {
		_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("Unhappy path - submission without a valid time", func(t *testing.T) {
		seed, err := LoadSeed(writeSeed(t, "submissions:\n  - id: s1\n    roundId: r1\n    submittedAt: yesterday\n"))
		require.NoError(t, err)
		err = seed.Apply(storage.NewMemory())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "s1")
	})
}
