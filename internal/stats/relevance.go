package stats

import (
	"strings"
	"time"

	"github.com/JustJay7/tdlc-stats/internal/textutil"
)

// IsRelevantHearing reports whether a hearing type is a "vista" or a
// "pública" hearing, ignoring case and accents.
func IsRelevantHearing(hearingType string) bool {
	t := textutil.Fold(hearingType)
	return strings.Contains(t, "vista") || strings.Contains(t, "publica")
}

// IsHeldHearing reports whether the calendar marks the hearing as held
func IsHeldHearing(status string) bool {
	return textutil.Fold(status) == "realizada"
}

// LastRelevantHearingPerCase maps each resolved case id to the latest date
// among its relevant hearings. Cases with no relevant dated hearing are
// absent from the map.
func LastRelevantHearingPerCase(joined []JoinedHearing) map[string]time.Time {
	last := lastHearings(joined, func(h JoinedHearing) bool {
		return IsRelevantHearing(h.HearingType)
	})
	dates := make(map[string]time.Time, len(last))
	for id, h := range last {
		dates[id] = *h.Date
	}
	return dates
}

// LastHeldRelevantHearingPerCase is LastRelevantHearingPerCase restricted to
// hearings already held, returning the whole hearing row.
func LastHeldRelevantHearingPerCase(joined []JoinedHearing) map[string]JoinedHearing {
	return lastHearings(joined, func(h JoinedHearing) bool {
		return IsRelevantHearing(h.HearingType) && IsHeldHearing(h.Status)
	})
}

func lastHearings(joined []JoinedHearing, keep func(JoinedHearing) bool) map[string]JoinedHearing {
	last := make(map[string]JoinedHearing)
	for _, h := range joined {
		if !h.Resolved || h.CaseID == "" || h.Date == nil || !keep(h) {
			continue
		}
		if current, ok := last[h.CaseID]; ok && !h.Date.After(*current.Date) {
			continue
		}
		last[h.CaseID] = h
	}
	return last
}
