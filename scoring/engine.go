package scoring

import "github.com/alex-pricope/hackathon-scoring/storage"

type Stores struct {
	Registry
	Submissions storage.SubmissionStorage
	Evaluations storage.EvaluationStorage
	Results     storage.ResultStorage
}

type Options struct {
	Policy     AggregationPolicy
	MaxWorkers int
}

// Engine wires every scoring component over one set of stores.
type Engine struct {
	Aggregator  *Aggregator
	Evaluations *EvaluationService
	Rounds      *RoundCalculator
	Overall     *OverallCalculator
	Publication *PublicationGate
	Reader      *ResultReader
	Admin       *ResultAdmin
}

func NewEngine(stores Stores, opts Options) *Engine {
	aggregator := NewAggregator(stores.Submissions, stores.Evaluations, opts.Policy)

	roundResults := NewCascadePolicy(
		RoundResultsDependent(stores.Rounds, stores.Results),
	)
	// Criteria belong to the hackathon registry and are removed there.
	roundPurge := NewCascadePolicy(
		RoundResultsDependent(stores.Rounds, stores.Results),
		RoundEvaluationsDependent(stores.Evaluations),
		RoundSubmissionsDependent(stores.Submissions),
		NoopDependent{Label: "criteria"},
	)

	return &Engine{
		Aggregator:  aggregator,
		Evaluations: NewEvaluationService(stores.Registry, stores.Submissions, stores.Evaluations, aggregator),
		Rounds:      NewRoundCalculator(stores.Registry, stores.Submissions, stores.Results, aggregator, opts.MaxWorkers),
		Overall:     NewOverallCalculator(stores.Registry, stores.Results),
		Publication: NewPublicationGate(stores.Registry, stores.Results),
		Reader:      NewResultReader(stores.Registry, stores.Results),
		Admin:       NewResultAdmin(stores.Registry, stores.Results, roundResults, roundPurge),
	}
}
