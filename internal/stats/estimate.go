package stats

import (
	"math"
	"sort"
	"time"

	"github.com/JustJay7/tdlc-stats/internal/domain"
	"github.com/JustJay7/tdlc-stats/internal/textutil"
)

// PendingCase is a case that has had its hearing but no ruling yet
type PendingCase struct {
	Role                   string
	CaseID                 string
	Title                  string
	ProcedureType          string
	FilingDate             *time.Time
	LastHearingDate        time.Time
	DaysSinceHearing       int
	EstimatedRemainingDays int
}

// HistoricalMeanByProcedure averages hearing -> ruling days per procedure
// type over the cases that already have a ruling. Means are rounded to whole
// days; negative intervals are ignored.
func HistoricalMeanByProcedure(details []domain.ProceduralDetail, lastHearing map[string]JoinedHearing) map[string]float64 {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, d := range details {
		if !d.RulingDetected || d.RulingDate == nil {
			continue
		}
		h, ok := lastHearing[textutil.NormalizeKey(d.CaseID)]
		if !ok {
			continue
		}
		days := domain.DaysBetween(*h.Date, *d.RulingDate)
		if days < 0 {
			continue
		}
		sums[h.ProcedureType] += days
		counts[h.ProcedureType]++
	}

	means := make(map[string]float64, len(sums))
	for proc, sum := range sums {
		means[proc] = math.RoundToEven(float64(sum) / float64(counts[proc]))
	}
	return means
}

// EstimateRemainingDays is the historical mean minus the days already waited,
// floored at zero. It is a point estimate only.
func EstimateRemainingDays(historicalMean float64, daysSinceHearing int) int {
	return max(int(historicalMean-float64(daysSinceHearing)), 0)
}

// PendingRulings lists cases with a held relevant hearing and no detected
// ruling, sorted by estimated remaining days. Procedure types without history
// estimate to zero.
func PendingRulings(details []domain.ProceduralDetail, lastHeld map[string]JoinedHearing, now time.Time) []PendingCase {
	means := HistoricalMeanByProcedure(details, lastHeld)

	var pending []PendingCase
	for _, d := range details {
		if d.RulingDetected {
			continue
		}
		h, ok := lastHeld[textutil.NormalizeKey(d.CaseID)]
		if !ok {
			continue
		}
		since := domain.DaysBetween(*h.Date, now)
		pending = append(pending, PendingCase{
			Role:                   h.Role,
			CaseID:                 h.CaseID,
			Title:                  h.Description,
			ProcedureType:          h.ProcedureType,
			FilingDate:             h.FilingDate,
			LastHearingDate:        *h.Date,
			DaysSinceHearing:       since,
			EstimatedRemainingDays: EstimateRemainingDays(means[h.ProcedureType], since),
		})
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].EstimatedRemainingDays != pending[j].EstimatedRemainingDays {
			return pending[i].EstimatedRemainingDays < pending[j].EstimatedRemainingDays
		}
		return pending[i].Role < pending[j].Role
	})
	return pending
}
