package api

import (
	"fmt"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"github.com/spf13/viper"
	"time"
)

// Seed is the registry data loaded into the memory driver at start. The
// memory driver has no write path for hackathons, rounds, criteria, teams or
// submissions, so without a seed it can only serve empty lookups.
type Seed struct {
	Hackathons  []storage.Hackathon
	Rounds      []SeedRound
	Criteria    []storage.Criterion
	Teams       []storage.Team
	Submissions []SeedSubmission
}

type SeedRound struct {
	ID          string
	HackathonID string
	Name        string
	Order       int
}

// SeedSubmission carries SubmittedAt as RFC 3339 text. Submission time is the
// tie order for round ranking, so it is required.
type SeedSubmission struct {
	ID          string
	HackathonID string
	RoundID     string
	TeamID      string
	Title       string
	SubmittedAt string
}

// LoadSeed reads a seed file (any format viper understands).
func LoadSeed(path string) (*Seed, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}

	var seed Seed
	if err := v.Unmarshal(&seed); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return &seed, nil
}

// Apply writes the seed into the memory stores. Every submission starts
// pending with no evaluations.
func (s *Seed) Apply(mem *storage.Memory) error {
	for i := range s.Hackathons {
		mem.Hackathons.Put(&s.Hackathons[i])
	}
	for _, r := range s.Rounds {
		mem.Rounds.Put(&storage.Round{ID: r.ID, HackathonID: r.HackathonID, Name: r.Name, Order: r.Order})
	}
	for i := range s.Criteria {
		mem.Criteria.Put(&s.Criteria[i])
	}
	for i := range s.Teams {
		mem.Teams.Put(&s.Teams[i])
	}
	for _, sub := range s.Submissions {
		at, err := time.Parse(time.RFC3339, sub.SubmittedAt)
		if err != nil {
			return fmt.Errorf("submission %s: invalid submittedAt %q: %w", sub.ID, sub.SubmittedAt, err)
		}
		mem.Submissions.Put(&storage.Submission{
			ID:               sub.ID,
			HackathonID:      sub.HackathonID,
			RoundID:          sub.RoundID,
			TeamID:           sub.TeamID,
			Title:            sub.Title,
			SubmittedAt:      at.UTC(),
			EvaluationStatus: storage.SubmissionPending,
		})
	}

	logging.Log.Infof("SEED: loaded %d hackathons, %d rounds, %d criteria, %d teams, %d submissions",
		len(s.Hackathons), len(s.Rounds), len(s.Criteria), len(s.Teams), len(s.Submissions))
	return nil
}
