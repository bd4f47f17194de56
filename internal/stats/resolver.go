// Package stats joins the collector datasets and derives elapsed-time
// statistics between legal milestones.
package stats

import (
	"time"

	"github.com/JustJay7/tdlc-stats/internal/domain"
	"github.com/JustJay7/tdlc-stats/internal/textutil"
)

// Registry indexes case identities by role and by case id
type Registry struct {
	byRole   map[string]domain.CaseIdentity
	byCaseID map[string]domain.CaseIdentity
}

// NewRegistry indexes rows. Keys are normalized again so that hand-built
// rows join the same way loaded ones do.
func NewRegistry(rows []domain.CaseIdentity) *Registry {
	r := &Registry{
		byRole:   make(map[string]domain.CaseIdentity, len(rows)),
		byCaseID: make(map[string]domain.CaseIdentity, len(rows)),
	}
	for _, row := range rows {
		role := textutil.NormalizeKey(row.Role)
		if _, ok := r.byRole[role]; !ok && role != "" {
			r.byRole[role] = row
		}
		id := textutil.NormalizeKey(row.CaseID)
		if _, ok := r.byCaseID[id]; !ok && id != "" {
			r.byCaseID[id] = row
		}
	}
	return r
}

// ByRole looks a case up by its docket role
func (r *Registry) ByRole(role string) (domain.CaseIdentity, bool) {
	c, ok := r.byRole[textutil.NormalizeKey(role)]
	return c, ok
}

// ByCaseID looks a case up by its internal id
func (r *Registry) ByCaseID(id string) (domain.CaseIdentity, bool) {
	c, ok := r.byCaseID[textutil.NormalizeKey(id)]
	return c, ok
}

// ProcedureFor returns the procedure type of a detail row, by case id first
// and role second. Unresolved rows get "".
func (r *Registry) ProcedureFor(d domain.ProceduralDetail) string {
	if c, ok := r.ByCaseID(d.CaseID); ok {
		return c.ProcedureType
	}
	if c, ok := r.ByRole(d.Role); ok {
		return c.ProcedureType
	}
	return ""
}

// JoinedHearing is a hearing with its registry identity attached. When
// Resolved is false the identity fields are empty.
type JoinedHearing struct {
	domain.HearingRecord
	CaseID        string
	ProcedureType string
	Description   string
	FilingDate    *time.Time
	Link          string
	Resolved      bool
}

// ResolveCaseIdentity left-joins hearings onto the registry by role. Output
// has exactly one row per input hearing, in input order; unmatched hearings
// are kept unresolved and callers that need an identity filter on Resolved.
func ResolveCaseIdentity(hearings []domain.HearingRecord, registry *Registry) []JoinedHearing {
	joined := make([]JoinedHearing, len(hearings))
	for i, h := range hearings {
		joined[i] = JoinedHearing{HearingRecord: h}
		identity, ok := registry.ByRole(h.Role)
		if !ok {
			continue
		}
		joined[i].CaseID = textutil.NormalizeKey(identity.CaseID)
		joined[i].ProcedureType = identity.ProcedureType
		joined[i].Description = identity.Description
		joined[i].FilingDate = identity.FilingDate
		joined[i].Link = identity.Link
		joined[i].Resolved = true
	}
	return joined
}
