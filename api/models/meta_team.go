package models

import (
	"github.com/alex-pricope/hackathon-scoring/storage"
)

type TeamResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Members     []string `json:"members"`
	Description string   `json:"description"`
}

func TransformTeamFromStorage(t *storage.Team) TeamResponse {
	return TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Members:     t.Members,
	}
}

// TeamResultsResponse is every visible result row of one team.
type TeamResultsResponse struct {
	Team    TeamResponse     `json:"team"`
	Results []ResultResponse `json:"results"`
}
