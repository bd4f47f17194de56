// Package query is the read-only facade over the statistics engine. Every
// call reloads the datasets it needs, so answers always reflect the latest
// collector output and nothing is shared between calls.
package query

import (
	"context"
	"sort"
	"time"

	"github.com/JustJay7/tdlc-stats/internal/dataset"
	"github.com/JustJay7/tdlc-stats/internal/domain"
	"github.com/JustJay7/tdlc-stats/internal/stats"
	"github.com/JustJay7/tdlc-stats/internal/textutil"
	"github.com/JustJay7/tdlc-stats/pkg/logger"
)

// Service answers statistics queries
type Service struct {
	loader      *dataset.Loader
	logger      *logger.Logger
	linkBaseURL string
	now         func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the clock used for "today"
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new query service
func NewService(loader *dataset.Loader, log *logger.Logger, linkBaseURL string, opts ...Option) *Service {
	s := &Service{
		loader:      loader,
		logger:      log,
		linkBaseURL: linkBaseURL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PendingCase is one row of the cases-awaiting-ruling listing
type PendingCase struct {
	Role                   string `json:"rol"`
	CaseID                 string `json:"idCausa"`
	Title                  string `json:"caratula"`
	FilingDate             string `json:"fecha_ingreso"`
	LastHearingDate        string `json:"fecha_audiencia"`
	DaysSinceHearing       int    `json:"dias_desde_audiencia"`
	EstimatedRemainingDays int    `json:"dias_estimados_restantes"`
	Link                   string `json:"link"`
}

// SeriesRow is one case of a daily elapsed-days series
type SeriesRow struct {
	Role            string `json:"rol"`
	CaseID          string `json:"idcausa"`
	RulingDate      string `json:"fecha_fallo"`
	Days            int    `json:"dias"`
	ProcedureType   string `json:"procedimiento"`
	FirstFilingDate string `json:"fecha_primer_tramite"`
	HearingDate     string `json:"fecha_audiencia,omitempty"`
}

// CaseTotals counts the cases known to the detail ledger
type CaseTotals struct {
	TotalCases      int `json:"total_causas"`
	TotalWithRuling int `json:"total_con_fallo"`
}

// hearingChain joins the snapshot and returns hearing -> ruling records
func (s *Service) hearingChain(ctx context.Context) ([]stats.Elapsed, error) {
	snap, err := s.loader.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	registry := stats.NewRegistry(snap.Registry)
	joined := stats.ResolveCaseIdentity(snap.Hearings, registry)
	s.reportUnresolved(joined)
	last := stats.LastRelevantHearingPerCase(joined)
	return stats.HearingToRuling(snap.Details, last, registry), nil
}

// filingChain returns first filing -> ruling records
func (s *Service) filingChain(ctx context.Context) ([]stats.Elapsed, error) {
	snap, err := s.loader.LoadLedger(ctx)
	if err != nil {
		return nil, err
	}
	return stats.FilingToRuling(snap.Details, stats.NewRegistry(snap.Registry)), nil
}

// reportUnresolved logs hearings whose role is missing from the registry.
// They stay in the join and simply never reach a statistic.
func (s *Service) reportUnresolved(joined []stats.JoinedHearing) {
	unresolved := 0
	for _, h := range joined {
		if !h.Resolved {
			unresolved++
		}
	}
	if unresolved > 0 {
		s.logger.Debug("Hearings without registry entry",
			"kind", domain.ErrUnresolvedIdentity.Error(),
			"unresolved", unresolved,
			"hearings", len(joined),
		)
	}
}

func (s *Service) trace(op string, start time.Time, kv ...interface{}) {
	s.logger.Debug("Query computed", append([]interface{}{"op", op, "duration", time.Since(start)}, kv...)...)
}

// MeanDaysHearingToRuling averages the days from the last relevant hearing
// to the ruling, windowed by ruling date
func (s *Service) MeanDaysHearingToRuling(ctx context.Context, p Params) (stats.Summary, error) {
	start := time.Now()
	records, err := s.hearingChain(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	summary := stats.Summarize(stats.Select(records, stats.ByRulingDate, p.filter()))
	s.trace("mean_hearing_to_ruling", start, "cases", summary.CaseCount)
	return summary, nil
}

// MeanDaysHearingToRulingByFilingDate is MeanDaysHearingToRuling windowed by
// the first filing date instead
func (s *Service) MeanDaysHearingToRulingByFilingDate(ctx context.Context, p Params) (stats.Summary, error) {
	start := time.Now()
	records, err := s.hearingChain(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	summary := stats.Summarize(stats.Select(records, stats.ByFilingDate, p.filter()))
	s.trace("mean_hearing_to_ruling_by_filing", start, "cases", summary.CaseCount)
	return summary, nil
}

// MeanDaysFilingToRuling averages the days from first filing to ruling,
// windowed by ruling date
func (s *Service) MeanDaysFilingToRuling(ctx context.Context, p Params) (stats.Summary, error) {
	start := time.Now()
	records, err := s.filingChain(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	summary := stats.Summarize(stats.Select(records, stats.ByRulingDate, p.filter()))
	s.trace("mean_filing_to_ruling", start, "cases", summary.CaseCount)
	return summary, nil
}

// PendingRulingCases lists cases heard but not yet ruled on, soonest
// expected ruling first
func (s *Service) PendingRulingCases(ctx context.Context) ([]PendingCase, error) {
	start := time.Now()
	snap, err := s.loader.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	registry := stats.NewRegistry(snap.Registry)
	held := stats.LastHeldRelevantHearingPerCase(stats.ResolveCaseIdentity(snap.Hearings, registry))
	pending := stats.PendingRulings(snap.Details, held, s.now())

	out := make([]PendingCase, 0, len(pending))
	for _, p := range pending {
		last := p.LastHearingDate
		out = append(out, PendingCase{
			Role:                   p.Role,
			CaseID:                 p.CaseID,
			Title:                  p.Title,
			FilingDate:             domain.FormatDate(p.FilingDate),
			LastHearingDate:        domain.FormatDate(&last),
			DaysSinceHearing:       p.DaysSinceHearing,
			EstimatedRemainingDays: p.EstimatedRemainingDays,
			Link:                   s.linkBaseURL + p.CaseID,
		})
	}
	s.trace("pending_rulings", start, "cases", len(out))
	return out, nil
}

// DailyHearingToRulingSeries lists every hearing -> ruling record in the
// filter, ordered by ruling date
func (s *Service) DailyHearingToRulingSeries(ctx context.Context, p Params) ([]SeriesRow, error) {
	start := time.Now()
	records, err := s.hearingChain(ctx)
	if err != nil {
		return nil, err
	}
	rows := seriesRows(stats.Select(records, stats.ByRulingDate, p.filter()))
	s.trace("daily_hearing_to_ruling", start, "rows", len(rows))
	return rows, nil
}

// DailyFilingToRulingSeries lists every filing -> ruling record in the
// filter, ordered by ruling date
func (s *Service) DailyFilingToRulingSeries(ctx context.Context, p Params) ([]SeriesRow, error) {
	start := time.Now()
	records, err := s.filingChain(ctx)
	if err != nil {
		return nil, err
	}
	rows := seriesRows(stats.Select(records, stats.ByRulingDate, p.filter()))
	s.trace("daily_filing_to_ruling", start, "rows", len(rows))
	return rows, nil
}

func seriesRows(records []stats.Elapsed) []SeriesRow {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RulingDate.Before(*records[j].RulingDate)
	})
	rows := make([]SeriesRow, 0, len(records))
	for _, e := range records {
		rows = append(rows, SeriesRow{
			Role:            e.Role,
			CaseID:          e.CaseID,
			RulingDate:      domain.FormatDate(e.RulingDate),
			Days:            e.Days,
			ProcedureType:   e.ProcedureType,
			FirstFilingDate: domain.FormatDate(e.FirstFilingDate),
			HearingDate:     domain.FormatDate(e.HearingDate),
		})
	}
	return rows
}

// QuarterlyMeanHearingToRuling groups hearing -> ruling means by ruling quarter
func (s *Service) QuarterlyMeanHearingToRuling(ctx context.Context, p Params) ([]stats.QuarterMean, error) {
	start := time.Now()
	records, err := s.hearingChain(ctx)
	if err != nil {
		return nil, err
	}
	quarters := stats.QuarterlyMeans(stats.Select(records, stats.ByRulingDate, p.filter()), stats.ByRulingDate)
	s.trace("quarterly_hearing_to_ruling", start, "quarters", len(quarters))
	return quarters, nil
}

// QuarterlyMeanFilingToRuling groups filing -> ruling means by ruling quarter
func (s *Service) QuarterlyMeanFilingToRuling(ctx context.Context, p Params) ([]stats.QuarterMean, error) {
	start := time.Now()
	records, err := s.filingChain(ctx)
	if err != nil {
		return nil, err
	}
	quarters := stats.QuarterlyMeans(stats.Select(records, stats.ByRulingDate, p.filter()), stats.ByRulingDate)
	s.trace("quarterly_filing_to_ruling", start, "quarters", len(quarters))
	return quarters, nil
}

// AppealOutcomeStatistics tallies appeal outcomes of the cases ruled in the
// period using the exact-label vocabulary
func (s *Service) AppealOutcomeStatistics(ctx context.Context, p Params) (stats.AppealSummary, error) {
	start := time.Now()
	snap, err := s.loader.LoadLedger(ctx)
	if err != nil {
		return stats.AppealSummary{}, err
	}
	cases := stats.RuledCases(snap.Details, stats.NewRegistry(snap.Registry), p.filter())
	summary := stats.SummarizeAppeals(cases)
	s.trace("appeal_outcomes", start, "cases", summary.TotalCases, "appeals", summary.TotalAppeals)
	return summary, nil
}

// QuarterlyAppealStatistics classifies appeal outcomes per ruling quarter.
// Unlike the other queries a malformed date bound is an error here.
func (s *Service) QuarterlyAppealStatistics(ctx context.Context, p Params) ([]stats.QuarterAppeals, error) {
	f, err := p.strictFilter()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	snap, err := s.loader.LoadLedger(ctx)
	if err != nil {
		return nil, err
	}
	rows := stats.QuarterlyAppeals(stats.RuledCases(snap.Details, stats.NewRegistry(snap.Registry), f))
	s.trace("quarterly_appeals", start, "quarters", len(rows))
	return rows, nil
}

// TotalCaseCount counts distinct roles in the detail ledger and those with a
// detected ruling
func (s *Service) TotalCaseCount(ctx context.Context) (CaseTotals, error) {
	details, err := s.loader.LoadDetails(ctx)
	if err != nil {
		return CaseTotals{}, err
	}

	all := make(map[string]struct{})
	ruled := make(map[string]struct{})
	for _, d := range details {
		role := textutil.NormalizeKey(d.Role)
		if role == "" {
			continue
		}
		all[role] = struct{}{}
		if d.RulingDetected {
			ruled[role] = struct{}{}
		}
	}
	return CaseTotals{TotalCases: len(all), TotalWithRuling: len(ruled)}, nil
}
