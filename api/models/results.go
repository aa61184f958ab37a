package models

import (
	"github.com/alex-pricope/hackathon-scoring/scoring"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"time"
)

type RoundScoreResponse struct {
	RoundID string  `json:"roundId"`
	Score   float64 `json:"score"`
	Rank    int     `json:"rank"`
}

type JudgeBreakdownResponse struct {
	JudgeID       string  `json:"judgeId"`
	Score         float64 `json:"score"`
	WeightedScore float64 `json:"weightedScore"`
}

type CriteriaBreakdownResponse struct {
	CriteriaID   string  `json:"criteriaId"`
	AverageScore float64 `json:"averageScore"`
	MaxScore     float64 `json:"maxScore"`
	Weight       float64 `json:"weight"`
}

type ResultResponse struct {
	ID                  string                      `json:"id"`
	HackathonID         string                      `json:"hackathonId"`
	RoundID             string                      `json:"roundId,omitempty"`
	TeamID              string                      `json:"teamId"`
	TeamName            string                      `json:"teamName,omitempty"`
	SubmissionID        string                      `json:"submissionId,omitempty"`
	ResultType          string                      `json:"resultType"`
	TotalScore          float64                     `json:"totalScore"`
	AverageScore        float64                     `json:"averageScore"`
	WeightedScore       float64                     `json:"weightedScore"`
	Rank                int                         `json:"rank"`
	RoundScores         []RoundScoreResponse        `json:"roundScores,omitempty"`
	EvaluationBreakdown []JudgeBreakdownResponse    `json:"evaluationBreakdown,omitempty"`
	CriteriaBreakdown   []CriteriaBreakdownResponse `json:"criteriaBreakdown,omitempty"`
	Prize               *string                     `json:"prize,omitempty"`
	Remarks             string                      `json:"remarks,omitempty"`
	IsPublished         bool                        `json:"isPublished"`
	PublishedAt         *time.Time                  `json:"publishedAt,omitempty"`
	CalculatedAt        time.Time                   `json:"calculatedAt"`
}

func TransformResultFromStorage(r *storage.Result, teamName string) ResultResponse {
	resp := ResultResponse{
		ID:            r.ID,
		HackathonID:   r.HackathonID,
		RoundID:       r.RoundID,
		TeamID:        r.TeamID,
		TeamName:      teamName,
		SubmissionID:  r.SubmissionID,
		ResultType:    string(r.ResultType),
		TotalScore:    r.TotalScore,
		AverageScore:  r.AverageScore,
		WeightedScore: r.WeightedScore,
		Rank:          r.Rank,
		Prize:         r.Prize,
		Remarks:       r.Remarks,
		IsPublished:   r.IsPublished,
		PublishedAt:   r.PublishedAt,
		CalculatedAt:  r.CalculatedAt,
	}
	for _, s := range r.RoundScores {
		resp.RoundScores = append(resp.RoundScores, RoundScoreResponse(s))
	}
	for _, j := range r.EvaluationBreakdown {
		resp.EvaluationBreakdown = append(resp.EvaluationBreakdown, JudgeBreakdownResponse(j))
	}
	for _, c := range r.CriteriaBreakdown {
		resp.CriteriaBreakdown = append(resp.CriteriaBreakdown, CriteriaBreakdownResponse(c))
	}
	return resp
}

// TransformResultsFromStorage resolves team names through teamMap; unknown
// teams are returned without a name.
func TransformResultsFromStorage(rows []*storage.Result, teamMap map[string]string) []ResultResponse {
	out := make([]ResultResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, TransformResultFromStorage(r, teamMap[r.TeamID]))
	}
	return out
}

type PublicationResponse struct {
	Published     bool   `json:"published"`
	Scope         string `json:"scope"`
	ModifiedCount int    `json:"modifiedCount"`
}

type AwardRequest struct {
	Prize   *string `json:"prize"`
	Remarks *string `json:"remarks"`
}

type DeleteResponse struct {
	Deleted int `json:"deleted"`
}

type CascadeStepResponse struct {
	Name    string `json:"name"`
	Deleted int    `json:"deleted"`
}

type PurgeResponse struct {
	RoundID string                `json:"roundId"`
	Steps   []CascadeStepResponse `json:"steps"`
}

func TransformCascadeSteps(roundID string, steps []scoring.CascadeStep) PurgeResponse {
	resp := PurgeResponse{RoundID: roundID, Steps: make([]CascadeStepResponse, 0, len(steps))}
	for _, s := range steps {
		resp.Steps = append(resp.Steps, CascadeStepResponse(s))
	}
	return resp
}
