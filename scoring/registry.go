package scoring

import (
	"context"
	"github.com/alex-pricope/hackathon-scoring/storage"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 16
)

func newID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// Registry groups the read-only hackathon, round and criteria lookups that
// every component needs.
type Registry struct {
	Hackathons storage.HackathonStorage
	Rounds     storage.RoundStorage
	Criteria   storage.CriteriaStorage
}

func (r Registry) hackathon(ctx context.Context, id string) (*storage.Hackathon, error) {
	h, err := r.Hackathons.Get(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "hackathon", id)
	}
	return h, nil
}

// round loads a round together with the hackathon that owns it.
func (r Registry) round(ctx context.Context, id string) (*storage.Round, *storage.Hackathon, error) {
	round, err := r.Rounds.Get(ctx, id)
	if err != nil {
		return nil, nil, notFoundOr(err, "round", id)
	}
	h, err := r.hackathon(ctx, round.HackathonID)
	if err != nil {
		return nil, nil, err
	}
	return round, h, nil
}
