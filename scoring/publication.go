package scoring

import (
	"context"
	"errors"
	"fmt"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"time"
)

// PublicationGate flips the visibility of already calculated results. It
// never touches scores or ranks and does not check that they are current.
type PublicationGate struct {
	registry Registry
	results  storage.ResultStorage
	now      func() time.Time
}

func NewPublicationGate(registry Registry, results storage.ResultStorage) *PublicationGate {
	return &PublicationGate{
		registry: registry,
		results:  results,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Publish makes the round results of roundID visible, or the overall results
// when roundID is empty. It returns the number of rows written.
func (p *PublicationGate) Publish(ctx context.Context, requester *Requester, hackathonID, roundID string) (int, error) {
	at := p.now()
	return p.toggle(ctx, requester, hackathonID, roundID, true, &at)
}

// Unpublish hides the rows in scope again. Rows that are already hidden are
// not rewritten and do not count as modified.
func (p *PublicationGate) Unpublish(ctx context.Context, requester *Requester, hackathonID, roundID string) (int, error) {
	return p.toggle(ctx, requester, hackathonID, roundID, false, nil)
}

func (p *PublicationGate) toggle(ctx context.Context, requester *Requester, hackathonID, roundID string, published bool, at *time.Time) (int, error) {
	action := "unpublish"
	if published {
		action = "publish"
	}

	rows, err := scopedRows(ctx, p.registry, p.results, hackathonID, roundID, requester, action+" results")
	if err != nil {
		return 0, err
	}

	modified := 0
	for _, row := range rows {
		if !published && !row.IsPublished && row.PublishedAt == nil {
			continue
		}
		if err := p.setPublished(ctx, row, published, at); err != nil {
			return modified, err
		}
		modified++
	}

	publicationRows.WithLabelValues(action).Add(float64(modified))
	logging.Log.Infof("PUBLISH: %s %s %d rows for hackathon %s scope %q", requester, action, modified, hackathonID, roundID)
	return modified, nil
}

// setPublished writes the flag against the row's version and reloads the row
// on conflict, so a concurrent recalculation is never overwritten.
func (p *PublicationGate) setPublished(ctx context.Context, row *storage.Result, published bool, at *time.Time) error {
	for attempt := 0; ; attempt++ {
		err := p.results.SetPublished(ctx, row, published, at)
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrVersionConflict) || attempt >= defaultConflictRetries {
			return fmt.Errorf("set publication state on result %s: %w", row.ID, err)
		}
		fresh, err := p.results.Get(ctx, row.HackathonID, row.RoundID, row.TeamID)
		if err != nil {
			return notFoundOr(err, "result", row.ID)
		}
		*row = *fresh
	}
}

// scopedRows authorizes a manager action and loads the rows of one scope:
// round rows of roundID, or overall rows when roundID is empty.
func scopedRows(ctx context.Context, registry Registry, results storage.ResultStorage, hackathonID, roundID string, requester *Requester, action string) ([]*storage.Result, error) {
	hackathon, err := registry.hackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	if err := requireManager(requester, hackathon, action); err != nil {
		return nil, err
	}

	resultType := storage.ResultTypeOverall
	if roundID != "" {
		round, err := registry.Rounds.Get(ctx, roundID)
		if err != nil {
			return nil, notFoundOr(err, "round", roundID)
		}
		if round.HackathonID != hackathonID {
			return nil, validationf("round %s does not belong to hackathon %s", roundID, hackathonID)
		}
		resultType = storage.ResultTypeRound
	}

	rows, err := results.ListByScope(ctx, hackathonID, roundID)
	if err != nil {
		return nil, fmt.Errorf("list results for hackathon %s: %w", hackathonID, err)
	}
	return ofType(rows, resultType), nil
}

// ResultReader is the gated read path. Callers that cannot manage the
// hackathon only ever see published rows; managers see unpublished rows when
// they ask for them.
type ResultReader struct {
	registry Registry
	results  storage.ResultStorage
}

func NewResultReader(registry Registry, results storage.ResultStorage) *ResultReader {
	return &ResultReader{registry: registry, results: results}
}

func (r *ResultReader) RoundResults(ctx context.Context, requester *Requester, roundID string, includeUnpublished bool) ([]*storage.Result, error) {
	round, hackathon, err := r.registry.round(ctx, roundID)
	if err != nil {
		return nil, err
	}
	rows, err := r.results.ListByScope(ctx, hackathon.ID, round.ID)
	if err != nil {
		return nil, fmt.Errorf("list results for round %s: %w", roundID, err)
	}
	return visible(ofType(rows, storage.ResultTypeRound), requester, hackathon, includeUnpublished), nil
}

func (r *ResultReader) OverallResults(ctx context.Context, requester *Requester, hackathonID string, includeUnpublished bool) ([]*storage.Result, error) {
	hackathon, err := r.registry.hackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	rows, err := r.results.ListByScope(ctx, hackathonID, "")
	if err != nil {
		return nil, fmt.Errorf("list overall results for hackathon %s: %w", hackathonID, err)
	}
	return visible(ofType(rows, storage.ResultTypeOverall), requester, hackathon, includeUnpublished), nil
}

// TeamResults returns every row of one team in a hackathon, round rows first
// in stored order, then the overall row.
func (r *ResultReader) TeamResults(ctx context.Context, requester *Requester, hackathonID, teamID string, includeUnpublished bool) ([]*storage.Result, error) {
	hackathon, err := r.registry.hackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	rows, err := r.results.ListByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("list results for hackathon %s: %w", hackathonID, err)
	}

	var rounds, overall []*storage.Result
	for _, row := range rows {
		switch {
		case row.TeamID != teamID:
		case row.ResultType == storage.ResultTypeOverall:
			overall = append(overall, row)
		default:
			rounds = append(rounds, row)
		}
	}
	return visible(append(rounds, overall...), requester, hackathon, includeUnpublished), nil
}

func visible(rows []*storage.Result, requester *Requester, hackathon *storage.Hackathon, includeUnpublished bool) []*storage.Result {
	if includeUnpublished && requester.CanManage(hackathon) {
		return rows
	}
	published := make([]*storage.Result, 0, len(rows))
	for _, row := range rows {
		if row.IsPublished {
			published = append(published, row)
		}
	}
	return published
}

// ResultAdmin holds the narrow manager-only writes on results.
type ResultAdmin struct {
	registry     Registry
	results      storage.ResultStorage
	roundResults *CascadePolicy
	roundPurge   *CascadePolicy
}

func NewResultAdmin(registry Registry, results storage.ResultStorage, roundResults, roundPurge *CascadePolicy) *ResultAdmin {
	return &ResultAdmin{
		registry:     registry,
		results:      results,
		roundResults: roundResults,
		roundPurge:   roundPurge,
	}
}

type AwardInput struct {
	Prize   *string
	Remarks *string
}

// UpdateAward sets the prize and remarks of one row. Nil fields are left
// unchanged; an empty prize clears it.
func (a *ResultAdmin) UpdateAward(ctx context.Context, requester *Requester, resultID string, in AwardInput) (*storage.Result, error) {
	row, err := a.results.GetByID(ctx, resultID)
	if err != nil {
		return nil, notFoundOr(err, "result", resultID)
	}
	hackathon, err := a.registry.hackathon(ctx, row.HackathonID)
	if err != nil {
		return nil, err
	}
	if err := requireManager(requester, hackathon, "update awards"); err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		if in.Prize != nil {
			row.Prize = in.Prize
			if *in.Prize == "" {
				row.Prize = nil
			}
		}
		if in.Remarks != nil {
			row.Remarks = *in.Remarks
		}

		err := a.results.UpdateAward(ctx, row)
		if err == nil {
			logging.Log.Infof("RESULTS: %s updated award on result %s", requester, resultID)
			return row, nil
		}
		if !errors.Is(err, storage.ErrVersionConflict) || attempt >= defaultConflictRetries {
			return nil, fmt.Errorf("update award on result %s: %w", resultID, err)
		}
		if row, err = a.results.GetByID(ctx, resultID); err != nil {
			return nil, notFoundOr(err, "result", resultID)
		}
	}
}

// DeleteRoundResults removes the round rows of a round. The overall rows are
// left alone and go stale until the overall calculation is rerun.
func (a *ResultAdmin) DeleteRoundResults(ctx context.Context, requester *Requester, roundID string) (int, error) {
	_, hackathon, err := a.registry.round(ctx, roundID)
	if err != nil {
		return 0, err
	}
	if err := requireManager(requester, hackathon, "delete results"); err != nil {
		return 0, err
	}

	steps, err := a.roundResults.Execute(ctx, roundID)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, step := range steps {
		deleted += step.Deleted
	}
	return deleted, nil
}

// PurgeRound removes everything this service stores for a round. Admin only.
func (a *ResultAdmin) PurgeRound(ctx context.Context, requester *Requester, roundID string) ([]CascadeStep, error) {
	if !requester.IsAdmin() {
		return nil, forbiddenf("only an admin can purge round %s", roundID)
	}
	if _, _, err := a.registry.round(ctx, roundID); err != nil {
		return nil, err
	}
	return a.roundPurge.Execute(ctx, roundID)
}
