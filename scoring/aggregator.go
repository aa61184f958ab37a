package scoring

import (
	"context"
	"errors"
	"fmt"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"slices"
	"sync"
)

const defaultConflictRetries = 3

// AggregationPolicy controls which records are folded into a submission.
type AggregationPolicy struct {
	// IncludeDrafts folds draft records into the average as well.
	IncludeDrafts bool
	// ConflictRetries bounds reload-and-retry on optimistic version conflicts.
	ConflictRetries int
}

// Aggregator folds a submission's evaluation records into its total,
// average and completion status. Recomputation of one submission is
// serialized in-process and guarded by the stored version across processes.
type Aggregator struct {
	submissions storage.SubmissionStorage
	evaluations storage.EvaluationStorage
	policy      AggregationPolicy
	locks       *keyedMutex
}

func NewAggregator(submissions storage.SubmissionStorage, evaluations storage.EvaluationStorage, policy AggregationPolicy) *Aggregator {
	if policy.ConflictRetries <= 0 {
		policy.ConflictRetries = defaultConflictRetries
	}
	return &Aggregator{
		submissions: submissions,
		evaluations: evaluations,
		policy:      policy,
		locks:       newKeyedMutex(),
	}
}

// Recompute reloads the submission and its records, writes the aggregate and
// returns the updated submission with the records that were folded in.
func (a *Aggregator) Recompute(ctx context.Context, submissionID string) (*storage.Submission, []*storage.Evaluation, error) {
	unlock := a.locks.Lock(submissionID)
	defer unlock()

	for attempt := 0; attempt <= a.policy.ConflictRetries; attempt++ {
		submission, err := a.submissions.Get(ctx, submissionID)
		if err != nil {
			return nil, nil, notFoundOr(err, "submission", submissionID)
		}

		records, err := a.Records(ctx, submission)
		if err != nil {
			return nil, nil, err
		}

		if len(records) == 0 {
			submission.TotalScore = 0
			submission.AverageScore = 0
		} else {
			var total float64
			for _, r := range records {
				total += r.TotalScore
			}
			submission.TotalScore = total
			submission.AverageScore = total / float64(len(records))
			submission.EvaluationStatus = storage.SubmissionCompleted
		}

		err = a.submissions.UpdateAggregate(ctx, submission)
		if errors.Is(err, storage.ErrVersionConflict) {
			logging.Log.Warnf("AGGREGATE: version conflict on submission %s, retrying (%d)", submissionID, attempt+1)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("update aggregate for submission %s: %w", submissionID, err)
		}

		logging.Log.Infof("AGGREGATE: submission %s total=%.4f average=%.4f from %d records",
			submissionID, submission.TotalScore, submission.AverageScore, len(records))
		return submission, records, nil
	}
	return nil, nil, fmt.Errorf("update aggregate for submission %s: %w", submissionID, storage.ErrVersionConflict)
}

// Records returns the evaluation records referenced by the submission that
// the policy allows into the aggregate.
func (a *Aggregator) Records(ctx context.Context, submission *storage.Submission) ([]*storage.Evaluation, error) {
	all, err := a.evaluations.ListBySubmission(ctx, submission.ID)
	if err != nil {
		return nil, fmt.Errorf("list evaluations for submission %s: %w", submission.ID, err)
	}

	records := make([]*storage.Evaluation, 0, len(all))
	for _, r := range all {
		if !slices.Contains(submission.Evaluations, r.ID) {
			continue
		}
		if r.Status != storage.EvaluationSubmitted && !a.policy.IncludeDrafts {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: map[string]*keyedLock{}}
}

// Lock blocks until key is free and returns the matching unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
