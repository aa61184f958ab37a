package scoring

import (
	"github.com/alex-pricope/hackathon-scoring/storage"
	"sort"
)

// ScoreTotals returns the raw sum of the scores and the weighted score, the
// sum of (score / maxScore) * weight over all items.
func ScoreTotals(items []storage.ScoreItem) (total, weighted float64) {
	for _, item := range items {
		total += item.Score
		if item.MaxScore > 0 {
			weighted += (item.Score / item.MaxScore) * item.Weight
		}
	}
	return total, weighted
}

// Stats summarizes a set of evaluation records.
type Stats struct {
	AvgTotal    float64
	AvgWeighted float64
	Count       int
}

func StatsOf(records []*storage.Evaluation) Stats {
	stats := Stats{Count: len(records)}
	if len(records) == 0 {
		return stats
	}
	var total, weighted float64
	for _, r := range records {
		total += r.TotalScore
		weighted += r.WeightedScore
	}
	stats.AvgTotal = total / float64(len(records))
	stats.AvgWeighted = weighted / float64(len(records))
	return stats
}

// JudgeBreakdown lists each record's total and weighted score, one entry per
// judge, in record order.
func JudgeBreakdown(records []*storage.Evaluation) []storage.JudgeBreakdown {
	breakdown := make([]storage.JudgeBreakdown, 0, len(records))
	for _, r := range records {
		breakdown = append(breakdown, storage.JudgeBreakdown{
			JudgeID:       r.JudgeID,
			Score:         r.TotalScore,
			WeightedScore: r.WeightedScore,
		})
	}
	return breakdown
}

// CriteriaBreakdown averages the raw score per criterion across all judges'
// items. No weight or per-judge normalization is applied. Entries follow the
// round's criteria order; criteria no longer defined on the round follow in
// first-seen order and keep the bounds captured on the score item.
func CriteriaBreakdown(records []*storage.Evaluation, criteria []*storage.Criterion) []storage.CriteriaBreakdown {
	type acc struct {
		sum      float64
		count    int
		maxScore float64
		weight   float64
		seen     int
	}
	byID := map[string]*acc{}
	seen := 0
	for _, r := range records {
		for _, item := range r.Scores {
			a, ok := byID[item.CriteriaID]
			if !ok {
				a = &acc{maxScore: item.MaxScore, weight: item.Weight, seen: seen}
				byID[item.CriteriaID] = a
				seen++
			}
			a.sum += item.Score
			a.count++
		}
	}

	order := map[string]int{}
	for i, c := range criteria {
		order[c.ID] = i
		if a, ok := byID[c.ID]; ok {
			a.maxScore = c.MaxScore
			a.weight = c.Weight
		}
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		oi, iKnown := order[ids[i]]
		oj, jKnown := order[ids[j]]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return byID[ids[i]].seen < byID[ids[j]].seen
		}
	})

	breakdown := make([]storage.CriteriaBreakdown, 0, len(ids))
	for _, id := range ids {
		a := byID[id]
		breakdown = append(breakdown, storage.CriteriaBreakdown{
			CriteriaID:   id,
			AverageScore: a.sum / float64(a.count),
			MaxScore:     a.maxScore,
			Weight:       a.weight,
		})
	}
	return breakdown
}

// assignRanks stable-sorts rows by score descending and numbers them 1..n.
// Equal scores keep their input order.
func assignRanks[T any](rows []T, score func(T) float64, setRank func(T, int)) {
	sort.SliceStable(rows, func(i, j int) bool {
		return score(rows[i]) > score(rows[j])
	})
	for i, row := range rows {
		setRank(row, i+1)
	}
}
