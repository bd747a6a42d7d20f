// Package aggregate derives summary numbers and bucketed series from a
// sequence of voting records. Every function is pure and tolerates
// malformed per-record data by skipping or zeroing it.
package aggregate

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"legislativo/internal/models"
)

// Unspecified replaces empty values in categorical breakdowns
const Unspecified = "Sin especificar"

// Outcome is the classification of a record's free-text result
type Outcome int

const (
	OutcomeOther Outcome = iota
	OutcomeApproved
	OutcomeRejected
)

// Classify maps a result to an outcome. "aprobado" wins over "rechazado"
// so that the approved count matches Summarize.
func Classify(result string) Outcome {
	lower := strings.ToLower(result)
	switch {
	case strings.Contains(lower, "aprobado"):
		return OutcomeApproved
	case strings.Contains(lower, "rechazado"):
		return OutcomeRejected
	default:
		return OutcomeOther
	}
}

// IsApproved reports whether a result counts as approved
func IsApproved(result string) bool {
	return Classify(result) == OutcomeApproved
}

// Summarize computes the header numbers. LastUpdated is left empty; it comes
// from the statistics resource, not from the records.
func Summarize(records []models.VotingRecord) models.AggregateState {
	state := models.AggregateState{Total: len(records)}
	if len(records) == 0 {
		return state
	}

	var sumYes float64
	for _, r := range records {
		if IsApproved(r.Result) {
			state.Approved++
		}
		sumYes += float64(r.TotalYes)
	}
	state.AverageYes = roundDiv(sumYes, len(records))
	return state
}

// BucketByMonth counts records per "YYYY-MM" in ascending key order.
// Records with a missing or unparseable date are skipped. When windowMonths
// is positive only dates within the trailing window ending at now are kept.
func BucketByMonth(records []models.VotingRecord, windowMonths int, now time.Time) []models.MonthCount {
	loc := now.Location()
	var cutoff time.Time
	if windowMonths > 0 {
		cutoff = now.AddDate(0, -windowMonths, 0)
	}

	counts := make(map[string]int)
	for _, r := range records {
		t, ok := models.ParseDate(r.Date, loc)
		if !ok {
			continue
		}
		if windowMonths > 0 && (t.Before(cutoff) || t.After(now)) {
			continue
		}
		counts[t.Format("2006-01")]++
	}

	months := make([]models.MonthCount, 0, len(counts))
	for key, n := range counts {
		months = append(months, models.MonthCount{Month: key, Count: n})
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month < months[j].Month
	})
	return months
}

// BucketByYear groups records by the four-character year prefix of their raw
// date and counts approved and rejected results per year. Prefixes that are
// not valid UTF-8 are skipped.
func BucketByYear(records []models.VotingRecord) map[string]models.YearlySummary {
	years := make(map[string]models.YearlySummary)
	for _, r := range records {
		if len(r.Date) < 4 {
			continue
		}
		year := r.Date[:4]
		if !utf8.ValidString(year) {
			continue
		}

		s := years[year]
		s.Year = year
		s.Total++
		switch Classify(r.Result) {
		case OutcomeApproved:
			s.Approved++
		case OutcomeRejected:
			s.Rejected++
		}
		years[year] = s
	}
	return years
}

// SortedYears returns the summaries of BucketByYear in ascending year order
func SortedYears(years map[string]models.YearlySummary) []models.YearlySummary {
	out := make([]models.YearlySummary, 0, len(years))
	for _, s := range years {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Year < out[j].Year
	})
	return out
}

// CountByField counts the distinct values of a field, most frequent first.
// Ties keep first-encountered order. Empty values are counted as
// Unspecified; whitespace-only values are kept as they are. A non-positive topN returns every value.
func CountByField(records []models.VotingRecord, field string, topN int) []models.CategoryCount {
	index := make(map[string]int)
	var counts []models.CategoryCount
	for _, r := range records {
		value := r.Field(field)
		if value == "" {
			value = Unspecified
		}
		i, ok := index[value]
		if !ok {
			i = len(counts)
			index[value] = i
			counts = append(counts, models.CategoryCount{Value: value})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if topN > 0 && len(counts) > topN {
		counts = counts[:topN]
	}
	return counts
}

// AverageVoteTotals averages the yes/no/abstain tallies over the records
// that satisfy HasYesVotes. Records with a zero yes tally are excluded from
// the denominator entirely.
func AverageVoteTotals(records []models.VotingRecord) models.VoteAverages {
	var yes, no, abstain float64
	n := 0
	for _, r := range records {
		if !r.HasYesVotes() {
			continue
		}
		yes += float64(r.TotalYes)
		no += float64(r.TotalNo)
		abstain += float64(r.TotalAbstain)
		n++
	}
	if n == 0 {
		return models.VoteAverages{}
	}
	return models.VoteAverages{
		Yes:     roundDiv(yes, n),
		No:      roundDiv(no, n),
		Abstain: roundDiv(abstain, n),
	}
}

// roundDiv divides and rounds half up; zero denominators yield 0
func roundDiv(sum float64, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Floor(sum/float64(n) + 0.5))
}
