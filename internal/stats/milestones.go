package stats

import (
	"time"

	"github.com/JustJay7/tdlc-stats/internal/domain"
	"github.com/JustJay7/tdlc-stats/internal/textutil"
)

// Elapsed is one case with the days between two milestones. Days is never
// negative: inverted pairs are dropped by the pipelines that build these.
type Elapsed struct {
	CaseID          string
	Role            string
	ProcedureType   string
	HearingDate     *time.Time
	FirstFilingDate *time.Time
	RulingDate      *time.Time
	Days            int
}

// HearingToRuling inner-joins the detail ledger with the last relevant
// hearing of each case and measures hearing -> ruling.
func HearingToRuling(details []domain.ProceduralDetail, lastHearing map[string]time.Time, registry *Registry) []Elapsed {
	var out []Elapsed
	for _, d := range details {
		hearing, ok := lastHearing[textutil.NormalizeKey(d.CaseID)]
		if !ok || d.RulingDate == nil {
			continue
		}
		days := domain.DaysBetween(hearing, *d.RulingDate)
		if days < 0 {
			continue
		}
		h := hearing
		out = append(out, Elapsed{
			CaseID:          d.CaseID,
			Role:            d.Role,
			ProcedureType:   registry.ProcedureFor(d),
			HearingDate:     &h,
			FirstFilingDate: d.FirstFilingDate,
			RulingDate:      d.RulingDate,
			Days:            days,
		})
	}
	return out
}

// FilingToRuling measures first filing -> ruling straight from the detail
// ledger; no hearing is involved.
func FilingToRuling(details []domain.ProceduralDetail, registry *Registry) []Elapsed {
	var out []Elapsed
	for _, d := range details {
		if d.FirstFilingDate == nil || d.RulingDate == nil {
			continue
		}
		days := domain.DaysBetween(*d.FirstFilingDate, *d.RulingDate)
		if days < 0 {
			continue
		}
		out = append(out, Elapsed{
			CaseID:          d.CaseID,
			Role:            d.Role,
			ProcedureType:   registry.ProcedureFor(d),
			FirstFilingDate: d.FirstFilingDate,
			RulingDate:      d.RulingDate,
			Days:            days,
		})
	}
	return out
}

// Window names the date a record is filtered and grouped by
type Window struct {
	Name   string
	anchor func(Elapsed) *time.Time
}

var (
	// ByRulingDate windows records by the ruling date
	ByRulingDate = Window{Name: "ruling_date", anchor: func(e Elapsed) *time.Time { return e.RulingDate }}
	// ByFilingDate windows records by the first filing date
	ByFilingDate = Window{Name: "first_filing_date", anchor: func(e Elapsed) *time.Time { return e.FirstFilingDate }}
)

// Anchor returns the record's date for this window, or nil
func (w Window) Anchor(e Elapsed) *time.Time {
	return w.anchor(e)
}

// Filter restricts records by an inclusive date range and a procedure type.
// Nil bounds are open; "" and "todos" match every procedure type.
type Filter struct {
	From          *time.Time
	To            *time.Time
	ProcedureType string
}

// AllProcedures is the procedure type value that disables that filter
const AllProcedures = "todos"

// MatchesDate reports whether d is present and inside the bounds
func (f Filter) MatchesDate(d *time.Time) bool {
	if d == nil {
		return false
	}
	if f.From != nil && d.Before(*f.From) {
		return false
	}
	if f.To != nil && d.After(*f.To) {
		return false
	}
	return true
}

// MatchesProcedure compares procedure types ignoring case and accents
func (f Filter) MatchesProcedure(procedureType string) bool {
	want := textutil.Fold(f.ProcedureType)
	if want == "" || want == AllProcedures {
		return true
	}
	return textutil.Fold(procedureType) == want
}

// Select keeps the records whose window anchor is set and within the filter.
// A record without an anchor date cannot be windowed and is left out.
func Select(records []Elapsed, w Window, f Filter) []Elapsed {
	out := make([]Elapsed, 0, len(records))
	for _, e := range records {
		if f.MatchesDate(w.Anchor(e)) && f.MatchesProcedure(e.ProcedureType) {
			out = append(out, e)
		}
	}
	return out
}
