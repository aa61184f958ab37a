package scoring

import (
	"github.com/alex-pricope/hackathon-scoring/storage"
	"slices"
)

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleOrganizer   Role = "organizer"
	RoleJudge       Role = "judge"
	RoleParticipant Role = "participant"
)

// Requester is the resolved caller identity. A nil *Requester is an
// anonymous caller and fails every capability check.
type Requester struct {
	UserID string
	Role   Role
}

func (r *Requester) IsAdmin() bool {
	return r != nil && r.Role == RoleAdmin
}

func (r *Requester) IsOrganizerOf(h *storage.Hackathon) bool {
	return r != nil && r.UserID != "" && h != nil && h.OrganizerID == r.UserID
}

func (r *Requester) IsJudgeOf(h *storage.Hackathon) bool {
	return r != nil && r.UserID != "" && h != nil && slices.Contains(h.Judges, r.UserID)
}

// CanManage reports whether the caller may calculate, publish and see
// unpublished results for the hackathon.
func (r *Requester) CanManage(h *storage.Hackathon) bool {
	return r.IsAdmin() || r.IsOrganizerOf(h)
}

func (r *Requester) String() string {
	if r == nil {
		return "anonymous"
	}
	return string(r.Role) + ":" + r.UserID
}

func requireManager(r *Requester, h *storage.Hackathon, action string) error {
	if !r.CanManage(h) {
		return forbiddenf("only the organizer or an admin can %s for hackathon %s", action, h.ID)
	}
	return nil
}
