package scoring

import (
	"context"
	"fmt"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"time"
)

// OverallCalculator folds the round results of a hackathon into one overall
// ranking per team.
type OverallCalculator struct {
	registry Registry
	results  storage.ResultStorage
	now      func() time.Time
}

func NewOverallCalculator(registry Registry, results storage.ResultStorage) *OverallCalculator {
	return &OverallCalculator{
		registry: registry,
		results:  results,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type teamTotals struct {
	teamID   string
	total    float64
	weighted float64
	rounds   []storage.RoundScore
	rank     int
}

// Calculate sums each team's round results and ranks teams by weighted
// score. A round without a row for the team counts as zero but still counts
// toward the divisor of the average. Ties keep the order in which teams are
// first met walking rounds in order and each round by rank.
func (c *OverallCalculator) Calculate(ctx context.Context, requester *Requester, hackathonID string) (results []*storage.Result, err error) {
	start := time.Now()
	defer func() { observeCalculation("overall", start, err) }()

	hackathon, err := c.registry.hackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	if err := requireManager(requester, hackathon, "calculate results"); err != nil {
		return nil, err
	}

	rounds, err := c.registry.Rounds.ListByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("list rounds for hackathon %s: %w", hackathonID, err)
	}
	if len(rounds) == 0 {
		return nil, validationf("hackathon %s has no rounds", hackathonID)
	}

	var order []*teamTotals
	byTeam := map[string]*teamTotals{}
	for _, round := range rounds {
		rows, err := c.results.ListByScope(ctx, hackathonID, round.ID)
		if err != nil {
			return nil, fmt.Errorf("list results for round %s: %w", round.ID, err)
		}
		rows = ofType(rows, storage.ResultTypeRound)
		if len(rows) == 0 {
			return nil, validationf("round %s (%s) has no calculated results", round.Name, round.ID)
		}

		for _, row := range rows {
			t, ok := byTeam[row.TeamID]
			if !ok {
				t = &teamTotals{teamID: row.TeamID}
				byTeam[row.TeamID] = t
				order = append(order, t)
			}
			t.total += row.TotalScore
			t.weighted += row.WeightedScore
			t.rounds = append(t.rounds, storage.RoundScore{
				RoundID: round.ID,
				Score:   row.AverageScore,
				Rank:    row.Rank,
			})
		}
	}

	assignRanks(order,
		func(t *teamTotals) float64 { return t.weighted },
		func(t *teamTotals, rank int) { t.rank = rank })

	calculatedAt := c.now()
	numberOfRounds := float64(len(rounds))
	results = make([]*storage.Result, 0, len(order))
	for _, t := range order {
		id, err := newID()
		if err != nil {
			return nil, fmt.Errorf("generate result id: %w", err)
		}
		stored, err := c.results.UpsertScores(ctx, &storage.Result{
			ID:            id,
			HackathonID:   hackathonID,
			TeamID:        t.teamID,
			TotalScore:    t.total,
			AverageScore:  t.total / numberOfRounds,
			WeightedScore: t.weighted,
			Rank:          t.rank,
			RoundScores:   t.rounds,
			ResultType:    storage.ResultTypeOverall,
			CalculatedAt:  calculatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("save overall result for team %s: %w", t.teamID, err)
		}
		results = append(results, stored)
	}

	logging.Log.Infof("RESULTS: %s calculated overall results for hackathon %s across %d rounds and %d teams",
		requester, hackathonID, len(rounds), len(results))
	return results, nil
}

func ofType(rows []*storage.Result, resultType storage.ResultType) []*storage.Result {
	filtered := make([]*storage.Result, 0, len(rows))
	for _, r := range rows {
		if r.ResultType == resultType {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
