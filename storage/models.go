package storage

import (
	"fmt"
	"time"
)

type EvaluationStatus string

const (
	EvaluationDraft     EvaluationStatus = "draft"
	EvaluationSubmitted EvaluationStatus = "submitted"
)

type SubmissionStatus string

const (
	SubmissionPending    SubmissionStatus = "pending"
	SubmissionInProgress SubmissionStatus = "in_progress"
	SubmissionCompleted  SubmissionStatus = "completed"
)

type ResultType string

const (
	ResultTypeRound   ResultType = "round"
	ResultTypeOverall ResultType = "overall"
)

// Registry items. The scoring core only reads these.

type Hackathon struct {
	ID          string   `dynamodbav:"PK"`
	Name        string   `dynamodbav:"Name"`
	OrganizerID string   `dynamodbav:"OrganizerID"`
	Judges      []string `dynamodbav:"Judges"`
}

type Round struct {
	ID          string    `dynamodbav:"PK"`
	HackathonID string    `dynamodbav:"HackathonID"`
	Name        string    `dynamodbav:"Name"`
	Order       int       `dynamodbav:"Order"`
	StartDate   time.Time `dynamodbav:"StartDate"`
	EndDate     time.Time `dynamodbav:"EndDate"`
}

type Criterion struct {
	ID       string  `dynamodbav:"SK"`
	RoundID  string  `dynamodbav:"PK"`
	Name     string  `dynamodbav:"Name"`
	Weight   float64 `dynamodbav:"Weight"`
	MaxScore float64 `dynamodbav:"MaxScore"`
	Order    int     `dynamodbav:"Order"`
}

type Team struct {
	ID          string   `dynamodbav:"PK"`
	HackathonID string   `dynamodbav:"HackathonID"`
	Name        string   `dynamodbav:"Name"`
	Members     []string `dynamodbav:"Members"`
	Description string   `dynamodbav:"Description"`
}

type Submission struct {
	ID               string           `dynamodbav:"PK"`
	HackathonID      string           `dynamodbav:"HackathonID"`
	RoundID          string           `dynamodbav:"RoundID"`
	TeamID           string           `dynamodbav:"TeamID"`
	Title            string           `dynamodbav:"Title"`
	SubmittedAt      time.Time        `dynamodbav:"SubmittedAt"`
	Evaluations      []string         `dynamodbav:"Evaluations"`
	TotalScore       float64          `dynamodbav:"TotalScore"`
	AverageScore     float64          `dynamodbav:"AverageScore"`
	EvaluationStatus SubmissionStatus `dynamodbav:"EvaluationStatus"`
	Version          int64            `dynamodbav:"Version"`
}

type ScoreItem struct {
	CriteriaID string  `dynamodbav:"CriteriaID"`
	Score      float64 `dynamodbav:"Score"`
	MaxScore   float64 `dynamodbav:"MaxScore"`
	Weight     float64 `dynamodbav:"Weight"`
	Comments   string  `dynamodbav:"Comments"`
}

type Evaluation struct {
	SubmissionID  string           `dynamodbav:"PK"`
	JudgeID       string           `dynamodbav:"SK"`
	ID            string           `dynamodbav:"ID"`
	HackathonID   string           `dynamodbav:"HackathonID"`
	RoundID       string           `dynamodbav:"RoundID"`
	Scores        []ScoreItem      `dynamodbav:"Scores"`
	TotalScore    float64          `dynamodbav:"TotalScore"`
	WeightedScore float64          `dynamodbav:"WeightedScore"`
	Feedback      string           `dynamodbav:"Feedback"`
	Strengths     string           `dynamodbav:"Strengths"`
	Improvements  string           `dynamodbav:"Improvements"`
	Status        EvaluationStatus `dynamodbav:"Status"`
	EvaluatedAt   time.Time        `dynamodbav:"EvaluatedAt"`
	CreatedAt     time.Time        `dynamodbav:"CreatedAt"`
}

type RoundScore struct {
	RoundID string  `dynamodbav:"RoundID"`
	Score   float64 `dynamodbav:"Score"`
	Rank    int     `dynamodbav:"Rank"`
}

type JudgeBreakdown struct {
	JudgeID       string  `dynamodbav:"JudgeID"`
	Score         float64 `dynamodbav:"Score"`
	WeightedScore float64 `dynamodbav:"WeightedScore"`
}

type CriteriaBreakdown struct {
	CriteriaID   string  `dynamodbav:"CriteriaID"`
	AverageScore float64 `dynamodbav:"AverageScore"`
	MaxScore     float64 `dynamodbav:"MaxScore"`
	Weight       float64 `dynamodbav:"Weight"`
}

// Result is keyed by HackathonID (PK) and SortKey, which encodes the round
// (or overall scope) and the team. RoundID and SubmissionID are empty for
// overall rows.
type Result struct {
	HackathonID         string              `dynamodbav:"PK"`
	SortKey             string              `dynamodbav:"SK"`
	ID                  string              `dynamodbav:"ID"`
	RoundID             string              `dynamodbav:"RoundID,omitempty"`
	TeamID              string              `dynamodbav:"TeamID"`
	SubmissionID        string              `dynamodbav:"SubmissionID,omitempty"`
	TotalScore          float64             `dynamodbav:"TotalScore"`
	AverageScore        float64             `dynamodbav:"AverageScore"`
	WeightedScore       float64             `dynamodbav:"WeightedScore"`
	Rank                int                 `dynamodbav:"Rank"`
	RoundScores         []RoundScore        `dynamodbav:"RoundScores"`
	EvaluationBreakdown []JudgeBreakdown    `dynamodbav:"EvaluationBreakdown"`
	CriteriaBreakdown   []CriteriaBreakdown `dynamodbav:"CriteriaBreakdown"`
	Prize               *string             `dynamodbav:"Prize"`
	ResultType          ResultType          `dynamodbav:"ResultType"`
	IsPublished         bool                `dynamodbav:"IsPublished"`
	PublishedAt         *time.Time          `dynamodbav:"PublishedAt"`
	Remarks             string              `dynamodbav:"Remarks"`
	CalculatedAt        time.Time           `dynamodbav:"CalculatedAt"`
	Version             int64               `dynamodbav:"Version"`
}

// ResultSortKey builds the compound key part for a result row. An empty
// roundID addresses the overall scope.
func ResultSortKey(roundID, teamID string) string {
	if roundID == "" {
		return fmt.Sprintf("overall#team#%s", teamID)
	}
	return fmt.Sprintf("round#%s#team#%s", roundID, teamID)
}

// ResultScopePrefix is the sort key prefix shared by every row of a scope.
func ResultScopePrefix(roundID string) string {
	if roundID == "" {
		return "overall#"
	}
	return fmt.Sprintf("round#%s#", roundID)
}
