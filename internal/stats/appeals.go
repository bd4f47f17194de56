package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/JustJay7/tdlc-stats/internal/domain"
	"github.com/JustJay7/tdlc-stats/internal/outcome"
)

// RuledCase is a decided case with what is known about its appeal
type RuledCase struct {
	CaseID         string
	Role           string
	ProcedureType  string
	RulingDate     time.Time
	AppealDetected bool
	OutcomeText    string
}

// RuledCases keeps the detail rows with a ruling date inside the filter
func RuledCases(details []domain.ProceduralDetail, registry *Registry, f Filter) []RuledCase {
	var out []RuledCase
	for _, d := range details {
		procedure := registry.ProcedureFor(d)
		if !f.MatchesDate(d.RulingDate) || !f.MatchesProcedure(procedure) {
			continue
		}
		out = append(out, RuledCase{
			CaseID:         d.CaseID,
			Role:           d.Role,
			ProcedureType:  procedure,
			RulingDate:     *d.RulingDate,
			AppealDetected: d.AppealDetected,
			OutcomeText:    d.AppealOutcomeText,
		})
	}
	return out
}

// AppealSummary tallies appeal outcomes with the literal vocabulary
type AppealSummary struct {
	TotalCases        int      `json:"total_causas_periodo"`
	TotalAppeals      int      `json:"total_reclamaciones"`
	Revoked           int      `json:"revocadas"`
	PartiallyRevoked  int      `json:"revocadas_parcialmente"`
	Confirmed         int      `json:"confirmadas"`
	NoAppealFiled     int      `json:"no_se_interpusieron_recursos"`
	AnnulledExOfficio int      `json:"anula_de_oficio"`
	Conciliation      int      `json:"conciliacion"`
	Settlement        int      `json:"avenimiento"`
	Withdrawal        int      `json:"desistimiento"`
	Other             int      `json:"otras"`
	ConfirmedOrOther  int      `json:"total_confirmadas_o_otras"`
	PercentRevoked    *float64 `json:"porcentaje_revocadas"`
}

// SummarizeAppeals counts appeals and literal outcomes. Rows with no outcome
// text are not tallied. PercentRevoked is over appeals and nil without any.
func SummarizeAppeals(cases []RuledCase) AppealSummary {
	s := AppealSummary{TotalCases: len(cases)}
	for _, c := range cases {
		if c.AppealDetected {
			s.TotalAppeals++
		}
		if strings.TrimSpace(c.OutcomeText) == "" {
			continue
		}
		switch outcome.Literal(c.OutcomeText) {
		case outcome.LiteralRevocadas:
			s.Revoked++
		case outcome.LiteralRevocadasParcial:
			s.PartiallyRevoked++
		case outcome.LiteralConfirmadas:
			s.Confirmed++
		case outcome.LiteralSinRecursos:
			s.NoAppealFiled++
		case outcome.LiteralAnulaDeOficio:
			s.AnnulledExOfficio++
		case outcome.LiteralConciliacion:
			s.Conciliation++
		case outcome.LiteralAvenimiento:
			s.Settlement++
		case outcome.LiteralDesistimiento:
			s.Withdrawal++
		default:
			s.Other++
		}
	}

	revoked := s.Revoked + s.PartiallyRevoked
	s.ConfirmedOrOther = max(s.TotalAppeals-revoked, 0)
	if s.TotalAppeals > 0 {
		pct := Round2(float64(revoked) / float64(s.TotalAppeals) * 100)
		s.PercentRevoked = &pct
	}
	return s
}

// QuarterAppeals is one quarter of fuzzy-classified outcomes
type QuarterAppeals struct {
	Quarter          string `json:"trimestre"`
	TotalCases       int    `json:"total_causas"`
	TotalAppeals     int    `json:"total_reclamaciones"`
	Revoked          int    `json:"revocadas"`
	PartiallyRevoked int    `json:"revocadas_parcialmente"`
	Confirmed        int    `json:"confirma"`
	Conciliation     int    `json:"conciliacion"`
	Settlement       int    `json:"avenimiento"`
	NoAppeal         int    `json:"no_reclamacion"`
	Pending          int    `json:"pendiente"`
	NoInformation    int    `json:"sin_info"`
	Other            int    `json:"otra"`
}

// QuarterlyAppeals groups cases by ruling quarter and classifies every
// case's outcome text, so the categories of a row add up to TotalCases.
func QuarterlyAppeals(cases []RuledCase) []QuarterAppeals {
	type bucket struct {
		cases   int
		appeals int
		counts  outcome.Counts
	}
	buckets := make(map[string]*bucket)
	for _, c := range cases {
		q := QuarterLabel(c.RulingDate)
		b, ok := buckets[q]
		if !ok {
			b = &bucket{counts: outcome.NewCounts()}
			buckets[q] = b
		}
		b.cases++
		if c.AppealDetected {
			b.appeals++
		}
		b.counts.Add(c.OutcomeText)
	}

	quarters := make([]string, 0, len(buckets))
	for q := range buckets {
		quarters = append(quarters, q)
	}
	sort.Strings(quarters)

	out := make([]QuarterAppeals, 0, len(quarters))
	for _, q := range quarters {
		b := buckets[q]
		out = append(out, QuarterAppeals{
			Quarter:          q,
			TotalCases:       b.cases,
			TotalAppeals:     b.appeals,
			Revoked:          b.counts[outcome.Revoca],
			PartiallyRevoked: b.counts[outcome.RevocaParcial],
			Confirmed:        b.counts[outcome.Confirma],
			Conciliation:     b.counts[outcome.Conciliacion],
			Settlement:       b.counts[outcome.Avenimiento],
			NoAppeal:         b.counts[outcome.NoReclamacion],
			Pending:          b.counts[outcome.ReclamacionPendiente],
			NoInformation:    b.counts[outcome.SinInfo],
			Other:            b.counts[outcome.Otra],
		})
	}
	return out
}
