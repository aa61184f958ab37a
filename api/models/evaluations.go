package models

import (
	"github.com/alex-pricope/hackathon-scoring/scoring"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"time"
)

type ScoreRequest struct {
	CriteriaID string  `json:"criteriaId"`
	Score      float64 `json:"score"`
	Comments   string  `json:"comments"`
}

type EvaluateRequest struct {
	SubmissionID string         `json:"submissionId"`
	JudgeID      string         `json:"judgeId,omitempty"`
	Scores       []ScoreRequest `json:"scores"`
	Feedback     string         `json:"feedback"`
	Strengths    string         `json:"strengths"`
	Improvements string         `json:"improvements"`
	Status       string         `json:"status,omitempty"`
}

// ToInput defaults the judge to the caller and the status to submitted.
func (r EvaluateRequest) ToInput(requester *scoring.Requester) scoring.EvaluateInput {
	in := scoring.EvaluateInput{
		SubmissionID: r.SubmissionID,
		JudgeID:      r.JudgeID,
		Feedback:     r.Feedback,
		Strengths:    r.Strengths,
		Improvements: r.Improvements,
		Status:       storage.EvaluationStatus(r.Status),
	}
	if in.JudgeID == "" && requester != nil {
		in.JudgeID = requester.UserID
	}
	if in.Status == "" {
		in.Status = storage.EvaluationSubmitted
	}
	for _, s := range r.Scores {
		in.Scores = append(in.Scores, scoring.ScoreInput{
			CriteriaID: s.CriteriaID,
			Score:      s.Score,
			Comments:   s.Comments,
		})
	}
	return in
}

type ScoreResponse struct {
	CriteriaID string  `json:"criteriaId"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"maxScore"`
	Weight     float64 `json:"weight"`
	Comments   string  `json:"comments,omitempty"`
}

type EvaluationResponse struct {
	ID            string          `json:"id"`
	SubmissionID  string          `json:"submissionId"`
	JudgeID       string          `json:"judgeId"`
	HackathonID   string          `json:"hackathonId"`
	RoundID       string          `json:"roundId"`
	Scores        []ScoreResponse `json:"scores"`
	TotalScore    float64         `json:"totalScore"`
	WeightedScore float64         `json:"weightedScore"`
	Feedback      string          `json:"feedback,omitempty"`
	Strengths     string          `json:"strengths,omitempty"`
	Improvements  string          `json:"improvements,omitempty"`
	Status        string          `json:"status"`
	EvaluatedAt   time.Time       `json:"evaluatedAt"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type EvaluationListResponse struct {
	Evaluations          []EvaluationResponse `json:"evaluations"`
	Count                int                  `json:"count"`
	AverageScore         float64              `json:"averageScore"`
	AverageWeightedScore float64              `json:"averageWeightedScore"`
}

func TransformEvaluationFromStorage(e *storage.Evaluation) EvaluationResponse {
	scores := make([]ScoreResponse, 0, len(e.Scores))
	for _, s := range e.Scores {
		scores = append(scores, ScoreResponse{
			CriteriaID: s.CriteriaID,
			Score:      s.Score,
			MaxScore:   s.MaxScore,
			Weight:     s.Weight,
			Comments:   s.Comments,
		})
	}
	return EvaluationResponse{
		ID:            e.ID,
		SubmissionID:  e.SubmissionID,
		JudgeID:       e.JudgeID,
		HackathonID:   e.HackathonID,
		RoundID:       e.RoundID,
		Scores:        scores,
		TotalScore:    e.TotalScore,
		WeightedScore: e.WeightedScore,
		Feedback:      e.Feedback,
		Strengths:     e.Strengths,
		Improvements:  e.Improvements,
		Status:        string(e.Status),
		EvaluatedAt:   e.EvaluatedAt,
		CreatedAt:     e.CreatedAt,
	}
}

func TransformEvaluationsFromStorage(records []*storage.Evaluation) []EvaluationResponse {
	out := make([]EvaluationResponse, 0, len(records))
	for _, e := range records {
		out = append(out, TransformEvaluationFromStorage(e))
	}
	return out
}
