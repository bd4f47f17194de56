package query

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/JustJay7/tdlc-stats/internal/domain"
	"github.com/JustJay7/tdlc-stats/internal/stats"
)

// AllHearingTypes disables the hearing type filter of the calendar
const AllHearingTypes = "__ALL__"

// CalendarParams filters the hearing calendar listing
type CalendarParams struct {
	Desde       string   `form:"fecha_desde"`
	Hasta       string   `form:"fecha_hasta"`
	Tipos       []string `form:"tipos"`
	SoloFuturas bool     `form:"solo_futuras"`
	Busqueda    string   `form:"busqueda"`
}

// CalendarEntry is one scheduled hearing with its registry identity
type CalendarEntry struct {
	Date        string `json:"fecha_audiencia"`
	Time        string `json:"hora"`
	Role        string `json:"rol"`
	CaseTitle   string `json:"caratula"`
	HearingType string `json:"tipo_audiencia"`
	Status      string `json:"estado"`
	CaseID      string `json:"idcausa"`
	Link        string `json:"link"`
}

// HearingCalendar lists hearings matching the params, oldest first. Rows
// whose date did not parse cannot be placed on the calendar and are dropped.
func (s *Service) HearingCalendar(ctx context.Context, p CalendarParams) ([]CalendarEntry, error) {
	start := time.Now()
	hearings, err := s.loader.LoadHearings(ctx)
	if err != nil {
		return nil, err
	}
	registryRows, err := s.loader.LoadRegistry(ctx)
	if err != nil {
		return nil, err
	}

	from := domain.ParseDate(p.Desde)
	if p.SoloFuturas {
		today := truncateDay(s.now())
		if from == nil || from.Before(today) {
			from = &today
		}
	}
	bounds := stats.Filter{From: from, To: domain.ParseDate(p.Hasta)}
	types := hearingTypeSet(p.Tipos)
	needle := strings.ToLower(strings.TrimSpace(p.Busqueda))

	var out []stats.JoinedHearing
	for _, h := range stats.ResolveCaseIdentity(hearings, stats.NewRegistry(registryRows)) {
		if !bounds.MatchesDate(h.Date) {
			continue
		}
		if types != nil {
			if _, ok := types[h.HearingType]; !ok {
				continue
			}
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(h.Role), needle) &&
			!strings.Contains(strings.ToLower(h.CaseTitle), needle) {
			continue
		}
		out = append(out, h)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(*out[j].Date)
	})

	entries := make([]CalendarEntry, 0, len(out))
	for _, h := range out {
		entries = append(entries, CalendarEntry{
			Date:        domain.FormatDate(h.Date),
			Time:        h.Time,
			Role:        h.Role,
			CaseTitle:   h.CaseTitle,
			HearingType: h.HearingType,
			Status:      h.Status,
			CaseID:      h.CaseID,
			Link:        h.Link,
		})
	}
	s.trace("hearing_calendar", start, "rows", len(entries))
	return entries, nil
}

// hearingTypeSet returns nil when every type is wanted
func hearingTypeSet(types []string) map[string]struct{} {
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t == AllHearingTypes {
			return nil
		}
		if t != "" {
			set[t] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CasesOfTheDay returns the latest daily docket summary
func (s *Service) CasesOfTheDay(ctx context.Context) ([]domain.DailyCase, error) {
	return s.loader.LoadDailyCases(ctx)
}

// ProceedingsOfTheDay returns every proceeding of the latest daily docket
func (s *Service) ProceedingsOfTheDay(ctx context.Context) ([]domain.DailyProceeding, error) {
	return s.loader.LoadDailyProceedings(ctx)
}
