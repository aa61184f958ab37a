package scoring

import (
	"context"
	"errors"
	"fmt"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"github.com/go-playground/validator/v10"
	"slices"
	"strconv"
	"strings"
	"time"
)

type ScoreInput struct {
	CriteriaID string  `validate:"required"`
	Score      float64 `validate:"-"`
	Comments   string  `validate:"max=2000"`
}

type EvaluateInput struct {
	SubmissionID string                   `validate:"required"`
	JudgeID      string                   `validate:"required"`
	Scores       []ScoreInput             `validate:"required,min=1,dive"`
	Feedback     string                   `validate:"max=5000"`
	Strengths    string                   `validate:"max=5000"`
	Improvements string                   `validate:"max=5000"`
	Status       storage.EvaluationStatus `validate:"required,oneof=draft submitted"`
}

type EvaluationService struct {
	registry    Registry
	submissions storage.SubmissionStorage
	evaluations storage.EvaluationStorage
	aggregator  *Aggregator
	validate    *validator.Validate
	now         func() time.Time
}

func NewEvaluationService(registry Registry, submissions storage.SubmissionStorage, evaluations storage.EvaluationStorage, aggregator *Aggregator) *EvaluationService {
	return &EvaluationService{
		registry:    registry,
		submissions: submissions,
		evaluations: evaluations,
		aggregator:  aggregator,
		validate:    validator.New(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate creates or replaces the judge's record for the submission. The
// returned bool is true when a new record was created.
func (s *EvaluationService) Evaluate(ctx context.Context, requester *Requester, in EvaluateInput) (*storage.Evaluation, bool, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, false, fromValidator(err)
	}

	submission, err := s.submissions.Get(ctx, in.SubmissionID)
	if err != nil {
		return nil, false, notFoundOr(err, "submission", in.SubmissionID)
	}
	round, hackathon, err := s.registry.round(ctx, submission.RoundID)
	if err != nil {
		return nil, false, err
	}

	if !slices.Contains(hackathon.Judges, in.JudgeID) {
		return nil, false, forbiddenf("user %s is not a judge of hackathon %s", in.JudgeID, hackathon.ID)
	}
	if !requester.IsAdmin() && (requester == nil || requester.UserID != in.JudgeID) {
		return nil, false, forbiddenf("%s cannot evaluate on behalf of judge %s", requester, in.JudgeID)
	}

	criteria, err := s.registry.Criteria.ListByRound(ctx, round.ID)
	if err != nil {
		return nil, false, fmt.Errorf("list criteria for round %s: %w", round.ID, err)
	}
	items, err := scoreItems(in, criteria)
	if err != nil {
		return nil, false, err
	}
	total, weighted := ScoreTotals(items)

	now := s.now()
	record := &storage.Evaluation{
		SubmissionID:  submission.ID,
		JudgeID:       in.JudgeID,
		HackathonID:   hackathon.ID,
		RoundID:       round.ID,
		Scores:        items,
		TotalScore:    total,
		WeightedScore: weighted,
		Feedback:      in.Feedback,
		Strengths:     in.Strengths,
		Improvements:  in.Improvements,
		Status:        in.Status,
		EvaluatedAt:   now,
		CreatedAt:     now,
	}

	created, err := s.upsert(ctx, submission, record)
	if err != nil {
		return nil, false, err
	}
	if created {
		evaluationsTotal.WithLabelValues("created").Inc()
		logging.Log.Infof("EVALUATION: judge %s created evaluation %s for submission %s", in.JudgeID, record.ID, submission.ID)
	} else {
		evaluationsTotal.WithLabelValues("updated").Inc()
		logging.Log.Infof("EVALUATION: judge %s updated evaluation %s for submission %s", in.JudgeID, record.ID, submission.ID)
	}

	if err := s.aggregateIfComplete(ctx, submission.ID, hackathon); err != nil {
		return nil, false, err
	}
	return record, created, nil
}

// scoreItems checks coverage and bounds against the round's criteria and
// snapshots each criterion's maxScore and weight onto the item.
func scoreItems(in EvaluateInput, criteria []*storage.Criterion) ([]storage.ScoreItem, error) {
	byID := make(map[string]*storage.Criterion, len(criteria))
	for _, c := range criteria {
		byID[c.ID] = c
	}

	scored := make(map[string]bool, len(in.Scores))
	items := make([]storage.ScoreItem, 0, len(in.Scores))
	for _, s := range in.Scores {
		c, ok := byID[s.CriteriaID]
		if !ok {
			return nil, validationf("criterion %s is not defined for this round", s.CriteriaID)
		}
		if scored[c.ID] {
			return nil, validationf("criterion %s is scored more than once", c.Name)
		}
		if s.Score < 0 || s.Score > c.MaxScore {
			return nil, validationf("score for criterion %s must be between 0 and %s", c.Name, formatBound(c.MaxScore))
		}
		scored[c.ID] = true
		items = append(items, storage.ScoreItem{
			CriteriaID: c.ID,
			Score:      s.Score,
			MaxScore:   c.MaxScore,
			Weight:     c.Weight,
			Comments:   s.Comments,
		})
	}

	if in.Status == storage.EvaluationSubmitted {
		var missing []string
		for _, c := range criteria {
			if !scored[c.ID] {
				missing = append(missing, c.Name)
			}
		}
		if len(missing) > 0 {
			return nil, validationf("cannot submit incomplete evaluation: missing scores for criteria %s", strings.Join(missing, ", "))
		}
	}
	return items, nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// upsert writes the record keyed by (submission, judge). A lost create race
// falls back to updating the record that won.
func (s *EvaluationService) upsert(ctx context.Context, submission *storage.Submission, record *storage.Evaluation) (bool, error) {
	existing, err := s.evaluations.Get(ctx, record.SubmissionID, record.JudgeID)
	switch {
	case err == nil:
		return false, s.replace(ctx, submission, existing, record)
	case !errors.Is(err, storage.ErrNotFound):
		return false, fmt.Errorf("load evaluation: %w", err)
	}

	id, err := newID()
	if err != nil {
		return false, fmt.Errorf("generate evaluation id: %w", err)
	}
	record.ID = id

	err = s.evaluations.Create(ctx, record)
	if errors.Is(err, storage.ErrItemWithIDAlreadyExists) {
		existing, err := s.evaluations.Get(ctx, record.SubmissionID, record.JudgeID)
		if err != nil {
			return false, fmt.Errorf("load evaluation after create race: %w", err)
		}
		return false, s.replace(ctx, submission, existing, record)
	}
	if err != nil {
		return false, fmt.Errorf("create evaluation: %w", err)
	}

	if err := s.link(ctx, record.SubmissionID, record.ID); err != nil {
		return true, err
	}
	return true, nil
}

// replace overwrites an existing record. A record whose reference never
// reached the submission (a failed link after create) is linked again here,
// otherwise the aggregator would never see it.
func (s *EvaluationService) replace(ctx context.Context, submission *storage.Submission, existing, record *storage.Evaluation) error {
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	if err := s.evaluations.Update(ctx, record); err != nil {
		return fmt.Errorf("update evaluation %s: %w", record.ID, err)
	}

	if slices.Contains(submission.Evaluations, record.ID) {
		return nil
	}
	logging.Log.Warnf("EVALUATION: evaluation %s was not referenced by submission %s, linking it", record.ID, submission.ID)
	return s.link(ctx, submission.ID, record.ID)
}

func (s *EvaluationService) link(ctx context.Context, submissionID, evaluationID string) error {
	err := s.submissions.AddEvaluation(ctx, submissionID, evaluationID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return &NotFoundError{Entity: "submission", ID: submissionID}
	case err != nil:
		return fmt.Errorf("link evaluation %s to submission %s: %w", evaluationID, submissionID, err)
	}
	return nil
}

// aggregateIfComplete runs the aggregator once every judge of the hackathon
// has a submitted record for the submission.
func (s *EvaluationService) aggregateIfComplete(ctx context.Context, submissionID string, hackathon *storage.Hackathon) error {
	records, err := s.evaluations.ListBySubmission(ctx, submissionID)
	if err != nil {
		return fmt.Errorf("list evaluations for submission %s: %w", submissionID, err)
	}
	submitted := 0
	for _, r := range records {
		if r.Status == storage.EvaluationSubmitted {
			submitted++
		}
	}
	if submitted != len(hackathon.Judges) {
		logging.Log.Debugf("EVALUATION: submission %s has %d/%d submitted evaluations", submissionID, submitted, len(hackathon.Judges))
		return nil
	}
	_, _, err = s.aggregator.Recompute(ctx, submissionID)
	return err
}

// ListBySubmission returns every record for the submission with summary
// stats. Judges, the organizer and admins may read them.
func (s *EvaluationService) ListBySubmission(ctx context.Context, requester *Requester, submissionID string) ([]*storage.Evaluation, Stats, error) {
	submission, err := s.submissions.Get(ctx, submissionID)
	if err != nil {
		return nil, Stats{}, notFoundOr(err, "submission", submissionID)
	}
	hackathon, err := s.registry.hackathon(ctx, submission.HackathonID)
	if err != nil {
		return nil, Stats{}, err
	}
	if !requester.CanManage(hackathon) && !requester.IsJudgeOf(hackathon) {
		return nil, Stats{}, forbiddenf("%s cannot read evaluations for hackathon %s", requester, hackathon.ID)
	}

	records, err := s.evaluations.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("list evaluations for submission %s: %w", submissionID, err)
	}
	return records, StatsOf(records), nil
}

// ListMine returns the requesting judge's own records in a hackathon.
func (s *EvaluationService) ListMine(ctx context.Context, requester *Requester, hackathonID string) ([]*storage.Evaluation, error) {
	hackathon, err := s.registry.hackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	if !requester.IsJudgeOf(hackathon) {
		return nil, forbiddenf("%s is not a judge of hackathon %s", requester, hackathonID)
	}

	all, err := s.evaluations.ListByJudge(ctx, requester.UserID)
	if err != nil {
		return nil, fmt.Errorf("list evaluations for judge %s: %w", requester.UserID, err)
	}
	records := make([]*storage.Evaluation, 0, len(all))
	for _, r := range all {
		if r.HackathonID == hackathonID {
			records = append(records, r)
		}
	}
	return records, nil
}

// Delete removes a record and its reference on the owning submission. Only
// the judge who wrote it or an admin may delete it.
func (s *EvaluationService) Delete(ctx context.Context, requester *Requester, id string) error {
	record, err := s.evaluations.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "evaluation", id)
	}
	if !requester.IsAdmin() && (requester == nil || requester.UserID != record.JudgeID) {
		return forbiddenf("%s cannot delete evaluation %s", requester, id)
	}

	if err := s.evaluations.Delete(ctx, record.SubmissionID, record.JudgeID); err != nil {
		return fmt.Errorf("delete evaluation %s: %w", id, err)
	}

	for attempt := 0; attempt <= defaultConflictRetries; attempt++ {
		err = s.submissions.RemoveEvaluation(ctx, record.SubmissionID, id)
		if !errors.Is(err, storage.ErrVersionConflict) {
			break
		}
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		logging.Log.Warnf("EVALUATION: submission %s already gone while deleting evaluation %s", record.SubmissionID, id)
	case err != nil:
		return fmt.Errorf("remove evaluation %s from submission %s: %w", id, record.SubmissionID, err)
	}

	logging.Log.Infof("EVALUATION: %s deleted evaluation %s", requester, id)
	return nil
}
