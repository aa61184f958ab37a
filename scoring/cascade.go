package scoring

import (
	"context"
	"fmt"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/storage"
)

// Dependent is a store holding rows that must go when their parent goes.
type Dependent interface {
	Name() string
	DeleteByParent(ctx context.Context, parentID string) (int, error)
}

type DependentFunc struct {
	Label  string
	Delete func(ctx context.Context, parentID string) (int, error)
}

func (d DependentFunc) Name() string { return d.Label }

func (d DependentFunc) DeleteByParent(ctx context.Context, parentID string) (int, error) {
	return d.Delete(ctx, parentID)
}

// NoopDependent stands in for a collaborator this deployment does not own.
type NoopDependent struct {
	Label string
}

func (d NoopDependent) Name() string { return d.Label }

func (d NoopDependent) DeleteByParent(context.Context, string) (int, error) { return 0, nil }

type CascadeStep struct {
	Name    string
	Deleted int
}

// CascadePolicy deletes dependents of a parent in the declared order and
// stops at the first failure. Every dependent deletes by parent id, so
// executing the policy again after a failure picks up where it stopped and
// converges on the same end state.
type CascadePolicy struct {
	dependents []Dependent
}

func NewCascadePolicy(dependents ...Dependent) *CascadePolicy {
	return &CascadePolicy{dependents: dependents}
}

func (p *CascadePolicy) Execute(ctx context.Context, parentID string) ([]CascadeStep, error) {
	steps := make([]CascadeStep, 0, len(p.dependents))
	for _, d := range p.dependents {
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		n, err := d.DeleteByParent(ctx, parentID)
		if err != nil {
			logging.Log.Warnf("CASCADE: stopped at %s for %s after %d steps, safe to re-run: %v", d.Name(), parentID, len(steps), err)
			return steps, fmt.Errorf("cascade delete %s for %s: %w", d.Name(), parentID, err)
		}
		logging.Log.Infof("CASCADE: deleted %d %s for %s", n, d.Name(), parentID)
		steps = append(steps, CascadeStep{Name: d.Name(), Deleted: n})
	}
	return steps, nil
}

// RoundResultsDependent deletes the round-scoped result rows of a round.
func RoundResultsDependent(rounds storage.RoundStorage, results storage.ResultStorage) Dependent {
	return DependentFunc{
		Label: "results",
		Delete: func(ctx context.Context, roundID string) (int, error) {
			round, err := rounds.Get(ctx, roundID)
			if err != nil {
				return 0, notFoundOr(err, "round", roundID)
			}
			return results.DeleteByScope(ctx, round.HackathonID, roundID)
		},
	}
}

func RoundEvaluationsDependent(evaluations storage.EvaluationStorage) Dependent {
	return DependentFunc{Label: "evaluations", Delete: evaluations.DeleteByRound}
}

func RoundSubmissionsDependent(submissions storage.SubmissionStorage) Dependent {
	return DependentFunc{Label: "submissions", Delete: submissions.DeleteByRound}
}
