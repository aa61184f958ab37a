package scoring

import (
	"context"
	"fmt"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"golang.org/x/sync/errgroup"
	"time"
)

const defaultMaxWorkers = 4

// RoundCalculator ranks every team within one round and persists a round
// Result per team.
type RoundCalculator struct {
	registry    Registry
	submissions storage.SubmissionStorage
	results     storage.ResultStorage
	aggregator  *Aggregator
	maxWorkers  int
	now         func() time.Time
}

func NewRoundCalculator(registry Registry, submissions storage.SubmissionStorage, results storage.ResultStorage, aggregator *Aggregator, maxWorkers int) *RoundCalculator {
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}
	return &RoundCalculator{
		registry:    registry,
		submissions: submissions,
		results:     results,
		aggregator:  aggregator,
		maxWorkers:  maxWorkers,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type roundEntry struct {
	submission *storage.Submission
	weighted   float64
	judges     []storage.JudgeBreakdown
	criteria   []storage.CriteriaBreakdown
	rank       int
}

// Calculate recomputes every submission of the round, ranks them by average
// score and upserts the round results. Rows come back ordered by rank.
func (c *RoundCalculator) Calculate(ctx context.Context, requester *Requester, roundID string) (results []*storage.Result, err error) {
	start := time.Now()
	defer func() { observeCalculation("round", start, err) }()

	round, hackathon, err := c.registry.round(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if err := requireManager(requester, hackathon, "calculate results"); err != nil {
		return nil, err
	}

	submissions, err := c.submissions.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("list submissions for round %s: %w", roundID, err)
	}
	if len(submissions) == 0 {
		return nil, validationf("no submissions found for round %s", roundID)
	}

	incomplete := 0
	teams := make(map[string]string, len(submissions))
	for _, s := range submissions {
		if s.EvaluationStatus != storage.SubmissionCompleted {
			incomplete++
		}
		if other, ok := teams[s.TeamID]; ok {
			return nil, validationf("team %s has more than one submission in round %s (%s, %s)", s.TeamID, roundID, other, s.ID)
		}
		teams[s.TeamID] = s.ID
	}
	if incomplete > 0 {
		return nil, validationf("cannot calculate results: %d of %d submissions have not completed evaluation", incomplete, len(submissions))
	}

	criteria, err := c.registry.Criteria.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("list criteria for round %s: %w", roundID, err)
	}

	entries, err := c.buildEntries(ctx, submissions, criteria)
	if err != nil {
		return nil, err
	}

	assignRanks(entries,
		func(e *roundEntry) float64 { return e.submission.AverageScore },
		func(e *roundEntry, rank int) { e.rank = rank })

	calculatedAt := c.now()
	results = make([]*storage.Result, 0, len(entries))
	for _, e := range entries {
		id, err := newID()
		if err != nil {
			return nil, fmt.Errorf("generate result id: %w", err)
		}
		stored, err := c.results.UpsertScores(ctx, &storage.Result{
			ID:                  id,
			HackathonID:         hackathon.ID,
			RoundID:             round.ID,
			TeamID:              e.submission.TeamID,
			SubmissionID:        e.submission.ID,
			TotalScore:          e.submission.TotalScore,
			AverageScore:        e.submission.AverageScore,
			WeightedScore:       e.weighted,
			Rank:                e.rank,
			EvaluationBreakdown: e.judges,
			CriteriaBreakdown:   e.criteria,
			ResultType:          storage.ResultTypeRound,
			CalculatedAt:        calculatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("save result for team %s: %w", e.submission.TeamID, err)
		}
		results = append(results, stored)
	}

	logging.Log.Infof("RESULTS: %s calculated round %s results for %d teams", requester, roundID, len(results))
	return results, nil
}

// buildEntries re-aggregates each submission and computes its breakdowns on
// a bounded worker pool. Entries keep the submissions' input order.
func (c *RoundCalculator) buildEntries(ctx context.Context, submissions []*storage.Submission, criteria []*storage.Criterion) ([]*roundEntry, error) {
	entries := make([]*roundEntry, len(submissions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxWorkers)
	for i, s := range submissions {
		g.Go(func() error {
			updated, records, err := c.aggregator.Recompute(gctx, s.ID)
			if err != nil {
				return err
			}
			entries[i] = &roundEntry{
				submission: updated,
				weighted:   StatsOf(records).AvgWeighted,
				judges:     JudgeBreakdown(records),
				criteria:   CriteriaBreakdown(records, criteria),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
