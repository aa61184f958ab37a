package scoring

import (
	"github.com/alex-pricope/hackathon-scoring/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestScoreTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []storage.ScoreItem
		wantTotal    float64
		wantWeighted float64
	}{
		{
			name:         "empty",
			items:        nil,
			wantTotal:    0,
			wantWeighted: 0,
		},
		{
			name: "two criteria",
			items: []storage.ScoreItem{
				{CriteriaID: "c1", Score: 8, MaxScore: 10, Weight: 60},
				{CriteriaID: "c2", Score: 5, MaxScore: 10, Weight: 40},
			},
			wantTotal:    13,
			wantWeighted: 0.8*60 + 0.5*40,
		},
		{
			name: "uneven maxima",
			items: []storage.ScoreItem{
				{CriteriaID: "c1", Score: 3, MaxScore: 7, Weight: 33},
				{CriteriaID: "c2", Score: 91, MaxScore: 100, Weight: 67},
			},
			wantTotal:    94,
			wantWeighted: 3.0/7.0*33 + 91.0/100.0*67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, weighted := ScoreTotals(tt.items)
			assert.Equal(t, tt.wantTotal, total)
			assert.InDelta(t, tt.wantWeighted, weighted, 1e-9)
		})
	}
}

func TestStatsOf(t *testing.T) {
	t.Run("Happy path - averages totals and weighted scores", func(t *testing.T) {
		stats := StatsOf([]*storage.Evaluation{
			{TotalScore: 10, WeightedScore: 50},
			{TotalScore: 20, WeightedScore: 70},
		})
		assert.Equal(t, 2, stats.Count)
		assert.Equal(t, 15.0, stats.AvgTotal)
		assert.Equal(t, 60.0, stats.AvgWeighted)
	})

	t.Run("Happy path - no records", func(t *testing.T) {
		assert.Equal(t, Stats{}, StatsOf(nil))
	})
}

func TestCriteriaBreakdown(t *testing.T) {
	criteria := []*storage.Criterion{
		{ID: "c1", Name: "Innovation", Weight: 60, MaxScore: 10, Order: 1},
		{ID: "c2", Name: "Execution", Weight: 40, MaxScore: 10, Order: 2},
	}
	records := []*storage.Evaluation{
		{JudgeID: "j1", Scores: []storage.ScoreItem{
			{CriteriaID: "c2", Score: 4, MaxScore: 10, Weight: 40},
			{CriteriaID: "c1", Score: 10, MaxScore: 10, Weight: 60},
		}},
		{JudgeID: "j2", Scores: []storage.ScoreItem{
			{CriteriaID: "c1", Score: 6, MaxScore: 10, Weight: 60},
			{CriteriaID: "legacy", Score: 3, MaxScore: 5, Weight: 0},
		}},
	}

	breakdown := CriteriaBreakdown(records, criteria)
	require.Len(t, breakdown, 3)

	assert.Equal(t, storage.CriteriaBreakdown{CriteriaID: "c1", AverageScore: 8, MaxScore: 10, Weight: 60}, breakdown[0])
	assert.Equal(t, storage.CriteriaBreakdown{CriteriaID: "c2", AverageScore: 4, MaxScore: 10, Weight: 40}, breakdown[1])
	assert.Equal(t, storage.CriteriaBreakdown{CriteriaID: "legacy", AverageScore: 3, MaxScore: 5, Weight: 0}, breakdown[2],
		"criteria no longer on the round keep the captured bounds and sort last")
}

func TestJudgeBreakdown(t *testing.T) {
	breakdown := JudgeBreakdown([]*storage.Evaluation{
		{JudgeID: "j1", TotalScore: 18, WeightedScore: 90},
		{JudgeID: "j2", TotalScore: 12, WeightedScore: 55.5},
	})
	assert.Equal(t, []storage.JudgeBreakdown{
		{JudgeID: "j1", Score: 18, WeightedScore: 90},
		{JudgeID: "j2", Score: 12, WeightedScore: 55.5},
	}, breakdown)
}

func TestAssignRanks(t *testing.T) {
	type row struct {
		id    string
		score float64
		rank  int
	}

	t.Run("Happy path - descending score", func(t *testing.T) {
		rows := []*row{{id: "A", score: 80}, {id: "B", score: 95}, {id: "C", score: 60}}
		assignRanks(rows, func(r *row) float64 { return r.score }, func(r *row, rank int) { r.rank = rank })

		assert.Equal(t, "B", rows[0].id)
		assert.Equal(t, map[string]int{"A": 2, "B": 1, "C": 3},
			map[string]int{rows[0].id: rows[0].rank, rows[1].id: rows[1].rank, rows[2].id: rows[2].rank})
	})

	t.Run("Happy path - ties keep input order", func(t *testing.T) {
		rows := []*row{{id: "X", score: 18}, {id: "Y", score: 20}, {id: "Z", score: 18}}
		assignRanks(rows, func(r *row) float64 { return r.score }, func(r *row, rank int) { r.rank = rank })

		assert.Equal(t, []string{"Y", "X", "Z"}, []string{rows[0].id, rows[1].id, rows[2].id})
		assert.Equal(t, []int{1, 2, 3}, []int{rows[0].rank, rows[1].rank, rows[2].rank})
	})
}
