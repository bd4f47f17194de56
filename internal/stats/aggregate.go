package stats

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Summary is the mean of a set of elapsed-day records. MeanDays is nil when
// CaseCount is zero.
type Summary struct {
	MeanDays  *float64 `json:"promedio_dias"`
	CaseCount int      `json:"n_causas"`
}

// QuarterMean is the mean elapsed days of one calendar quarter
type QuarterMean struct {
	Quarter   string  `json:"trimestre"`
	MeanDays  float64 `json:"dias"`
	CaseCount int     `json:"n_causas"`
}

// Summarize computes the mean days of records, rounded to two decimals
func Summarize(records []Elapsed) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	mean := Round2(meanDays(records))
	return Summary{MeanDays: &mean, CaseCount: len(records)}
}

// QuarterlyMeans groups records by the quarter of their window anchor. Only
// quarters with records are emitted, oldest first.
func QuarterlyMeans(records []Elapsed, w Window) []QuarterMean {
	groups := make(map[string][]Elapsed)
	for _, e := range records {
		anchor := w.Anchor(e)
		if anchor == nil {
			continue
		}
		q := QuarterLabel(*anchor)
		groups[q] = append(groups[q], e)
	}

	quarters := make([]string, 0, len(groups))
	for q := range groups {
		quarters = append(quarters, q)
	}
	sort.Strings(quarters)

	out := make([]QuarterMean, 0, len(quarters))
	for _, q := range quarters {
		out = append(out, QuarterMean{
			Quarter:   q,
			MeanDays:  Round2(meanDays(groups[q])),
			CaseCount: len(groups[q]),
		})
	}
	return out
}

// QuarterLabel formats the calendar quarter of t as YYYYQn
func QuarterLabel(t time.Time) string {
	return fmt.Sprintf("%04dQ%d", t.Year(), (int(t.Month())-1)/3+1)
}

// Round2 rounds to two decimals
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func meanDays(records []Elapsed) float64 {
	total := 0
	for _, e := range records {
		total += e.Days
	}
	return float64(total) / float64(len(records))
}
