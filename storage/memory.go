package storage

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process backend used for local runs and tests. Every read
// returns a copy so callers never share state with the store.
type Memory struct {
	Hackathons  *MemoryHackathonStorage
	Rounds      *MemoryRoundStorage
	Criteria    *MemoryCriteriaStorage
	Teams       *MemoryTeamStorage
	Submissions *MemorySubmissionStorage
	Evaluations *MemoryEvaluationStorage
	Results     *MemoryResultStorage
}

func NewMemory() *Memory {
	return &Memory{
		Hackathons:  &MemoryHackathonStorage{items: map[string]Hackathon{}},
		Rounds:      &MemoryRoundStorage{items: map[string]Round{}},
		Criteria:    &MemoryCriteriaStorage{items: map[string][]Criterion{}},
		Teams:       &MemoryTeamStorage{items: map[string]Team{}},
		Submissions: &MemorySubmissionStorage{items: map[string]Submission{}},
		Evaluations: &MemoryEvaluationStorage{items: map[string]Evaluation{}},
		Results:     &MemoryResultStorage{items: map[string]Result{}},
	}
}

type MemoryHackathonStorage struct {
	mu    sync.RWMutex
	items map[string]Hackathon
}

func (s *MemoryHackathonStorage) Put(h *Hackathon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *h
	c.Judges = append([]string(nil), h.Judges...)
	s.items[h.ID] = c
}

func (s *MemoryHackathonStorage) Get(_ context.Context, id string) (*Hackathon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	h.Judges = append([]string(nil), h.Judges...)
	return &h, nil
}

type MemoryRoundStorage struct {
	mu    sync.RWMutex
	items map[string]Round
}

func (s *MemoryRoundStorage) Put(r *Round) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[r.ID] = *r
}

func (s *MemoryRoundStorage) Get(_ context.Context, id string) (*Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *MemoryRoundStorage) ListByHackathon(_ context.Context, hackathonID string) ([]*Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rounds []*Round
	for _, r := range s.items {
		if r.HackathonID == hackathonID {
			c := r
			rounds = append(rounds, &c)
		}
	}
	SortRounds(rounds)
	return rounds, nil
}

type MemoryCriteriaStorage struct {
	mu    sync.RWMutex
	items map[string][]Criterion
}

func (s *MemoryCriteriaStorage) Put(c *Criterion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.items[c.RoundID]
	for i := range list {
		if list[i].ID == c.ID {
			list[i] = *c
			return
		}
	}
	s.items[c.RoundID] = append(list, *c)
}

func (s *MemoryCriteriaStorage) ListByRound(_ context.Context, roundID string) ([]*Criterion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	criteria := make([]*Criterion, 0, len(s.items[roundID]))
	for _, c := range s.items[roundID] {
		c := c
		criteria = append(criteria, &c)
	}
	SortCriteria(criteria)
	return criteria, nil
}

type MemoryTeamStorage struct {
	mu    sync.RWMutex
	items map[string]Team
}

func (s *MemoryTeamStorage) Put(t *Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *t
	c.Members = append([]string(nil), t.Members...)
	s.items[t.ID] = c
}

func (s *MemoryTeamStorage) Get(_ context.Context, id string) (*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.Members = append([]string(nil), t.Members...)
	return &t, nil
}

func (s *MemoryTeamStorage) ListByHackathon(_ context.Context, hackathonID string) ([]*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var teams []*Team
	for _, t := range s.items {
		if t.HackathonID == hackathonID {
			c := t
			c.Members = append([]string(nil), t.Members...)
			teams = append(teams, &c)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

type MemorySubmissionStorage struct {
	mu    sync.RWMutex
	items map[string]Submission
}

func copySubmission(s Submission) *Submission {
	s.Evaluations = append([]string(nil), s.Evaluations...)
	return &s
}

func (s *MemorySubmissionStorage) Put(sub *Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[sub.ID] = *copySubmission(*sub)
}

func (s *MemorySubmissionStorage) Get(_ context.Context, id string) (*Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copySubmission(sub), nil
}

func (s *MemorySubmissionStorage) ListByRound(_ context.Context, roundID string) ([]*Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var submissions []*Submission
	for _, sub := range s.items {
		if sub.RoundID == roundID {
			submissions = append(submissions, copySubmission(sub))
		}
	}
	SortSubmissions(submissions)
	return submissions, nil
}

func (s *MemorySubmissionStorage) AddEvaluation(_ context.Context, id, evaluationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}
	if slices.Contains(sub.Evaluations, evaluationID) {
		return nil
	}
	sub.Evaluations = append(append([]string(nil), sub.Evaluations...), evaluationID)
	sub.EvaluationStatus = SubmissionInProgress
	sub.Version++
	s.items[id] = sub
	return nil
}

func (s *MemorySubmissionStorage) RemoveEvaluation(_ context.Context, id, evaluationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}
	remaining := make([]string, 0, len(sub.Evaluations))
	for _, ref := range sub.Evaluations {
		if ref != evaluationID {
			remaining = append(remaining, ref)
		}
	}
	sub.Evaluations = remaining
	sub.Version++
	s.items[id] = sub
	return nil
}

func (s *MemorySubmissionStorage) UpdateAggregate(_ context.Context, submission *Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.items[submission.ID]
	if !ok || sub.Version != submission.Version {
		return ErrVersionConflict
	}
	sub.TotalScore = submission.TotalScore
	sub.AverageScore = submission.AverageScore
	sub.EvaluationStatus = submission.EvaluationStatus
	sub.Version++
	s.items[sub.ID] = sub
	submission.Version = sub.Version
	return nil
}

func (s *MemorySubmissionStorage) DeleteByRound(_ context.Context, roundID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for id, sub := range s.items {
		if sub.RoundID == roundID {
			delete(s.items, id)
			deleted++
		}
	}
	return deleted, nil
}

type MemoryEvaluationStorage struct {
	mu    sync.RWMutex
	items map[string]Evaluation
}

func evaluationKey(submissionID, judgeID string) string {
	return submissionID + "#" + judgeID
}

func copyEvaluation(e Evaluation) *Evaluation {
	e.Scores = append([]ScoreItem(nil), e.Scores...)
	return &e
}

func (s *MemoryEvaluationStorage) Get(_ context.Context, submissionID, judgeID string) (*Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[evaluationKey(submissionID, judgeID)]
	if !ok {
		return nil, ErrNotFound
	}
	return copyEvaluation(e), nil
}

func (s *MemoryEvaluationStorage) GetByID(_ context.Context, id string) (*Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.items {
		if e.ID == id {
			return copyEvaluation(e), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryEvaluationStorage) list(match func(Evaluation) bool) []*Evaluation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var evaluations []*Evaluation
	for _, e := range s.items {
		if match(e) {
			evaluations = append(evaluations, copyEvaluation(e))
		}
	}
	sort.Slice(evaluations, func(i, j int) bool {
		return evaluationKey(evaluations[i].SubmissionID, evaluations[i].JudgeID) <
			evaluationKey(evaluations[j].SubmissionID, evaluations[j].JudgeID)
	})
	return evaluations
}

func (s *MemoryEvaluationStorage) ListBySubmission(_ context.Context, submissionID string) ([]*Evaluation, error) {
	return s.list(func(e Evaluation) bool { return e.SubmissionID == submissionID }), nil
}

func (s *MemoryEvaluationStorage) ListByJudge(_ context.Context, judgeID string) ([]*Evaluation, error) {
	return s.list(func(e Evaluation) bool { return e.JudgeID == judgeID }), nil
}

func (s *MemoryEvaluationStorage) Create(_ context.Context, evaluation *Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := evaluationKey(evaluation.SubmissionID, evaluation.JudgeID)
	if _, ok := s.items[key]; ok {
		return ErrItemWithIDAlreadyExists
	}
	s.items[key] = *copyEvaluation(*evaluation)
	return nil
}

func (s *MemoryEvaluationStorage) Update(_ context.Context, evaluation *Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[evaluationKey(evaluation.SubmissionID, evaluation.JudgeID)] = *copyEvaluation(*evaluation)
	return nil
}

func (s *MemoryEvaluationStorage) Delete(_ context.Context, submissionID, judgeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, evaluationKey(submissionID, judgeID))
	return nil
}

func (s *MemoryEvaluationStorage) DeleteByRound(_ context.Context, roundID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for key, e := range s.items {
		if e.RoundID == roundID {
			delete(s.items, key)
			deleted++
		}
	}
	return deleted, nil
}

type MemoryResultStorage struct {
	mu    sync.RWMutex
	items map[string]Result
}

func resultKey(hackathonID, sortKey string) string {
	return hackathonID + "|" + sortKey
}

func copyResult(r Result) *Result {
	r.RoundScores = append([]RoundScore(nil), r.RoundScores...)
	r.EvaluationBreakdown = append([]JudgeBreakdown(nil), r.EvaluationBreakdown...)
	r.CriteriaBreakdown = append([]CriteriaBreakdown(nil), r.CriteriaBreakdown...)
	if r.Prize != nil {
		p := *r.Prize
		r.Prize = &p
	}
	if r.PublishedAt != nil {
		t := *r.PublishedAt
		r.PublishedAt = &t
	}
	return &r
}

func (s *MemoryResultStorage) Get(_ context.Context, hackathonID, roundID, teamID string) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.items[resultKey(hackathonID, ResultSortKey(roundID, teamID))]
	if !ok {
		return nil, ErrNotFound
	}
	return copyResult(r), nil
}

func (s *MemoryResultStorage) GetByID(_ context.Context, id string) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.items {
		if r.ID == id {
			return copyResult(r), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryResultStorage) list(match func(Result) bool) []*Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []*Result
	for _, r := range s.items {
		if match(r) {
			results = append(results, copyResult(r))
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].SortKey < results[j].SortKey })
	SortResults(results)
	return results
}

func (s *MemoryResultStorage) ListByScope(_ context.Context, hackathonID, roundID string) ([]*Result, error) {
	prefix := ResultScopePrefix(roundID)
	return s.list(func(r Result) bool {
		return r.HackathonID == hackathonID && strings.HasPrefix(r.SortKey, prefix)
	}), nil
}

func (s *MemoryResultStorage) ListByHackathon(_ context.Context, hackathonID string) ([]*Result, error) {
	return s.list(func(r Result) bool { return r.HackathonID == hackathonID }), nil
}

func (s *MemoryResultStorage) UpsertScores(_ context.Context, result *Result) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sortKey := ResultSortKey(result.RoundID, result.TeamID)
	key := resultKey(result.HackathonID, sortKey)

	stored, ok := s.items[key]
	if !ok {
		stored = Result{
			HackathonID: result.HackathonID,
			SortKey:     sortKey,
			ID:          result.ID,
		}
	}
	stored.RoundID = result.RoundID
	stored.TeamID = result.TeamID
	stored.SubmissionID = result.SubmissionID
	stored.TotalScore = result.TotalScore
	stored.AverageScore = result.AverageScore
	stored.WeightedScore = result.WeightedScore
	stored.Rank = result.Rank
	stored.RoundScores = result.RoundScores
	stored.EvaluationBreakdown = result.EvaluationBreakdown
	stored.CriteriaBreakdown = result.CriteriaBreakdown
	stored.ResultType = result.ResultType
	stored.CalculatedAt = result.CalculatedAt
	stored.Version++

	s.items[key] = *copyResult(stored)
	return copyResult(stored), nil
}

func (s *MemoryResultStorage) SetPublished(_ context.Context, result *Result, published bool, at *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := resultKey(result.HackathonID, result.SortKey)
	stored, ok := s.items[key]
	if !ok || stored.Version != result.Version {
		return ErrVersionConflict
	}
	stored.IsPublished = published
	stored.PublishedAt = at
	stored.Version++
	s.items[key] = *copyResult(stored)

	result.IsPublished = published
	result.PublishedAt = at
	result.Version = stored.Version
	return nil
}

func (s *MemoryResultStorage) UpdateAward(_ context.Context, result *Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := resultKey(result.HackathonID, result.SortKey)
	stored, ok := s.items[key]
	if !ok || stored.Version != result.Version {
		return ErrVersionConflict
	}
	stored.Prize = result.Prize
	stored.Remarks = result.Remarks
	stored.Version++
	s.items[key] = *copyResult(stored)
	result.Version = stored.Version
	return nil
}

func (s *MemoryResultStorage) DeleteByScope(_ context.Context, hackathonID, roundID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := ResultScopePrefix(roundID)
	deleted := 0
	for key, r := range s.items {
		if r.HackathonID == hackathonID && strings.HasPrefix(r.SortKey, prefix) {
			delete(s.items, key)
			deleted++
		}
	}
	return deleted, nil
}
