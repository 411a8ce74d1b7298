package stats

import (
	"math"
	"sort"
	"time"

	"github.com/hamed0406/archivemon/internal/domain"
)

// Uptime percentage is rounded to one decimal place so repeated reports
// over the same history render identically.
const uptimeDecimals = 1

// Summarize derives a snapshot from one endpoint's history. It is a pure
// function: same history in, same snapshot out.
func Summarize(h domain.History) domain.Snapshot {
	snap := domain.Snapshot{
		TotalChecks: len(h),
		LastStatus:  domain.StatusUnknown,
	}
	if len(h) == 0 {
		// uptime is defined as 0 for an empty history, not NaN
		return snap
	}

	var latSum float64
	var latCount int
	for _, obs := range h {
		if !obs.Success {
			continue
		}
		snap.SuccessCount++
		if obs.LatencyMS != nil {
			latSum += *obs.LatencyMS
			latCount++
		}
	}

	snap.UptimePercent = round(float64(snap.SuccessCount)/float64(snap.TotalChecks)*100, uptimeDecimals)
	if latCount > 0 {
		avg := latSum / float64(latCount)
		snap.AvgLatencyMS = &avg
	}

	if h[len(h)-1].Success {
		snap.LastStatus = domain.StatusUp
	} else {
		snap.LastStatus = domain.StatusDown
	}
	return snap
}

// SummarizeSince summarizes only the observations taken at or after the
// cutoff. The history is timestamp-ordered, so the window is a suffix.
func SummarizeSince(h domain.History, cutoff time.Time) domain.Snapshot {
	i := sort.Search(len(h), func(i int) bool {
		return !h[i].CheckedAt.Before(cutoff)
	})
	return Summarize(h[i:])
}

func round(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}
