package stats

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustJay7/tdlc-stats/internal/domain"
)

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	d := domain.ParseDate(s)
	require.NotNil(t, d, "bad fixture date %q", s)
	return d
}

func scenario(t *testing.T, hearingType, hearingDate, rulingDate string) ([]JoinedHearing, []domain.ProceduralDetail, *Registry) {
	t.Helper()
	registry := NewRegistry([]domain.CaseIdentity{
		{Role: "C-100-2020", CaseID: "555", ProcedureType: "contencioso"},
	})
	hearings := []domain.HearingRecord{
		{Role: "c-100-2020 ", Date: date(t, hearingDate), HearingType: hearingType, Status: "Realizada"},
	}
	details := []domain.ProceduralDetail{
		{CaseID: "555", Role: "C-100-2020", FirstFilingDate: date(t, "05-01-2020"), RulingDetected: true, RulingDate: date(t, rulingDate)},
	}
	return ResolveCaseIdentity(hearings, registry), details, registry
}

func TestScenarioBasicJoin(t *testing.T) {
	joined, details, registry := scenario(t, "Audiencia Vista de la causa", "01-03-2021", "01-04-2021")

	last := LastRelevantHearingPerCase(joined)
	require.Contains(t, last, "555")
	assert.Equal(t, "01-03-2021", last["555"].Format(domain.DateLayout))

	records := HearingToRuling(details, last, registry)
	require.Len(t, records, 1)
	assert.Equal(t, 31, records[0].Days)
	assert.Equal(t, "contencioso", records[0].ProcedureType)

	summary := Summarize(Select(records, ByRulingDate, Filter{ProcedureType: "contencioso"}))
	require.NotNil(t, summary.MeanDays)
	assert.Equal(t, 31.0, *summary.MeanDays)
	assert.Equal(t, 1, summary.CaseCount)
}

func TestScenarioIrrelevantHearingExcluded(t *testing.T) {
	joined, details, registry := scenario(t, "Audiencia Testimonial", "01-03-2021", "01-04-2021")

	last := LastRelevantHearingPerCase(joined)
	assert.NotContains(t, last, "555")

	summary := Summarize(Select(HearingToRuling(details, last, registry), ByRulingDate, Filter{ProcedureType: "contencioso"}))
	assert.Nil(t, summary.MeanDays)
	assert.Equal(t, 0, summary.CaseCount)
}

func TestScenarioNegativeDeltaDiscarded(t *testing.T) {
	joined, details, registry := scenario(t, "Audiencia Pública", "01-05-2021", "01-04-2021")

	records := HearingToRuling(details, LastRelevantHearingPerCase(joined), registry)
	assert.Empty(t, records)
	assert.Equal(t, 0, Summarize(records).CaseCount)
}

func TestResolveCaseIdentityTotality(t *testing.T) {
	registry := NewRegistry([]domain.CaseIdentity{
		{Role: "C-1-2020", CaseID: "1", ProcedureType: "contencioso"},
	})
	hearings := []domain.HearingRecord{
		{Role: "C-1-2020", HearingType: "vista"},
		{Role: "C-1-2020", HearingType: "testimonial"},
		{Role: "C-404-2020", HearingType: "vista"},
	}

	joined := ResolveCaseIdentity(hearings, registry)
	require.Len(t, joined, len(hearings))
	for i := range hearings {
		assert.Equal(t, hearings[i], joined[i].HearingRecord)
	}
	assert.True(t, joined[0].Resolved)
	assert.True(t, joined[1].Resolved)
	assert.False(t, joined[2].Resolved)
	assert.Empty(t, joined[2].CaseID)
}

func TestIsRelevantHearing(t *testing.T) {
	tests := map[string]bool{
		"Audiencia Vista de la causa": true,
		"AUDIENCIA PÚBLICA":           true,
		"audiencia publica":           true,
		"Audiencia Testimonial":       false,
		"Conciliación":                false,
		"":                            false,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsRelevantHearing(in), in)
	}
}

func TestLastRelevantHearingPerCase(t *testing.T) {
	registry := NewRegistry([]domain.CaseIdentity{
		{Role: "C-1", CaseID: "1"},
		{Role: "C-2", CaseID: "2"},
	})
	hearings := []domain.HearingRecord{
		{Role: "C-1", Date: date(t, "01-02-2021"), HearingType: "Vista"},
		{Role: "C-1", Date: date(t, "01-06-2021"), HearingType: "Vista"},
		{Role: "C-1", Date: date(t, "01-09-2021"), HearingType: "Testimonial"},
		{Role: "C-1", Date: nil, HearingType: "Vista"},
		{Role: "C-2", Date: nil, HearingType: "Pública"},
		{Role: "C-3", Date: date(t, "01-01-2022"), HearingType: "Vista"},
	}

	got := LastRelevantHearingPerCase(ResolveCaseIdentity(hearings, registry))
	want := map[string]time.Time{"1": *date(t, "01-06-2021")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LastRelevantHearingPerCase() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilingToRuling(t *testing.T) {
	registry := NewRegistry([]domain.CaseIdentity{{Role: "C-1", CaseID: "1", ProcedureType: "No Contencioso"}})
	details := []domain.ProceduralDetail{
		{CaseID: "1", Role: "C-1", FirstFilingDate: date(t, "01-01-2021"), RulingDate: date(t, "11-01-2021")},
		{CaseID: "2", Role: "C-2", FirstFilingDate: nil, RulingDate: date(t, "11-01-2021")},
		{CaseID: "3", Role: "C-3", FirstFilingDate: date(t, "01-01-2021"), RulingDate: nil},
		{CaseID: "4", Role: "C-4", FirstFilingDate: date(t, "20-01-2021"), RulingDate: date(t, "11-01-2021")},
	}

	records := FilingToRuling(details, registry)
	require.Len(t, records, 1)
	assert.Equal(t, 10, records[0].Days)
	assert.Equal(t, "No Contencioso", records[0].ProcedureType)
	assert.Nil(t, records[0].HearingDate)
}

func TestSelectWindowsAndProcedure(t *testing.T) {
	records := []Elapsed{
		{CaseID: "1", ProcedureType: "Contencioso", FirstFilingDate: date(t, "01-01-2020"), RulingDate: date(t, "15-02-2021"), Days: 10},
		{CaseID: "2", ProcedureType: "No Contencioso", FirstFilingDate: date(t, "01-06-2021"), RulingDate: date(t, "15-07-2021"), Days: 20},
		{CaseID: "3", ProcedureType: "Contencioso", FirstFilingDate: nil, RulingDate: date(t, "15-08-2021"), Days: 30},
	}

	from, to := date(t, "01-01-2021"), date(t, "31-12-2021")

	byRuling := Select(records, ByRulingDate, Filter{From: from, To: to, ProcedureType: AllProcedures})
	assert.Len(t, byRuling, 3)

	byFiling := Select(records, ByFilingDate, Filter{From: from, To: to})
	require.Len(t, byFiling, 1)
	assert.Equal(t, "2", byFiling[0].CaseID)

	contencioso := Select(records, ByRulingDate, Filter{ProcedureType: "CONTENCIOSO"})
	assert.Len(t, contencioso, 2)

	// a bound on the wrong side excludes everything
	assert.Empty(t, Select(records, ByRulingDate, Filter{From: date(t, "01-01-2022")}))
}

func TestNonNegativity(t *testing.T) {
	registry := NewRegistry(nil)
	var details []domain.ProceduralDetail
	last := map[string]time.Time{}
	base := *date(t, "01-06-2021")
	for i := -40; i <= 40; i += 7 {
		id := string(rune('A' + (i+40)/7))
		ruling := base.AddDate(0, 0, i)
		details = append(details, domain.ProceduralDetail{CaseID: id, FirstFilingDate: &base, RulingDate: &ruling})
		last[id] = base
	}

	for _, e := range append(HearingToRuling(details, last, registry), FilingToRuling(details, registry)...) {
		assert.GreaterOrEqual(t, e.Days, 0)
	}
}

func TestQuarterlyConservation(t *testing.T) {
	records := []Elapsed{
		{RulingDate: date(t, "15-01-2021"), Days: 10},
		{RulingDate: date(t, "31-03-2021"), Days: 20},
		{RulingDate: date(t, "01-04-2021"), Days: 5},
		{RulingDate: date(t, "30-12-2022"), Days: 7},
		{RulingDate: date(t, "01-10-2022"), Days: 8},
	}
	f := Filter{From: date(t, "01-01-2021"), To: date(t, "31-12-2022")}
	selected := Select(records, ByRulingDate, f)

	quarters := QuarterlyMeans(selected, ByRulingDate)
	want := []QuarterMean{
		{Quarter: "2021Q1", MeanDays: 15, CaseCount: 2},
		{Quarter: "2021Q2", MeanDays: 5, CaseCount: 1},
		{Quarter: "2022Q4", MeanDays: 7.5, CaseCount: 2},
	}
	if diff := cmp.Diff(want, quarters); diff != "" {
		t.Errorf("QuarterlyMeans() mismatch (-want +got):\n%s", diff)
	}

	total := 0
	for _, q := range quarters {
		total += q.CaseCount
	}
	assert.Equal(t, Summarize(selected).CaseCount, total)
}

func TestSummarizeRounding(t *testing.T) {
	summary := Summarize([]Elapsed{{Days: 1}, {Days: 1}, {Days: 2}})
	require.NotNil(t, summary.MeanDays)
	assert.Equal(t, 1.33, *summary.MeanDays)
	assert.Equal(t, 3, summary.CaseCount)

	empty := Summarize(nil)
	assert.Nil(t, empty.MeanDays)
	assert.Zero(t, empty.CaseCount)
}

func TestQuarterLabel(t *testing.T) {
	tests := map[string]string{
		"01-01-2021": "2021Q1",
		"31-03-2021": "2021Q1",
		"01-04-2021": "2021Q2",
		"30-09-2021": "2021Q3",
		"31-12-2021": "2021Q4",
	}
	for in, want := range tests {
		assert.Equal(t, want, QuarterLabel(*date(t, in)), in)
	}
}
