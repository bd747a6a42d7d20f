package aggregate

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"legislativo/internal/models"
)

func record(date, result, typ, yes, no, abstain string) models.VotingRecord {
	return models.NewVotingRecord(map[string]string{
		models.FieldDate:         date,
		models.FieldResult:       result,
		models.FieldType:         typ,
		models.FieldTotalYes:     yes,
		models.FieldTotalNo:      no,
		models.FieldTotalAbstain: abstain,
	})
}

func TestEndToEndExample(t *testing.T) {
	records := []models.VotingRecord{
		models.NewVotingRecord(map[string]string{"Fecha": "2024-01-10", "Resultado": "Aprobado", "TotalSi": "80"}),
		models.NewVotingRecord(map[string]string{"Fecha": "2024-02-05", "Resultado": "Rechazado", "TotalSi": "40"}),
	}

	state := Summarize(records)
	assert.Equal(t, models.AggregateState{Total: 2, Approved: 1, AverageYes: 60}, state)

	years := BucketByYear(records)
	want := map[string]models.YearlySummary{
		"2024": {Year: "2024", Total: 2, Approved: 1, Rejected: 1},
	}
	if diff := cmp.Diff(want, years); diff != "" {
		t.Errorf("BucketByYear mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, models.AggregateState{}, Summarize(nil))
}

func TestSummarizeRounding(t *testing.T) {
	records := []models.VotingRecord{
		record("2024-01-01", "aprobado en general", "", "1", "", ""),
		record("2024-01-02", "", "", "2", "", ""),
	}
	state := Summarize(records)

	assert.Equal(t, 1, state.Approved)
	assert.Equal(t, 2, state.AverageYes) // 1.5 rounds up
}

func TestClassify(t *testing.T) {
	assert.Equal(t, OutcomeApproved, Classify("Aprobado"))
	assert.Equal(t, OutcomeApproved, Classify("APROBADO POR UNANIMIDAD"))
	assert.Equal(t, OutcomeRejected, Classify("Rechazado"))
	assert.Equal(t, OutcomeOther, Classify("Retirado"))
	assert.Equal(t, OutcomeOther, Classify("Empate"))
	assert.Equal(t, OutcomeOther, Classify(""))
}

func TestBucketByMonth(t *testing.T) {
	records := []models.VotingRecord{
		record("2024-03-02", "", "", "", "", ""),
		record("2024-01-10T12:00:00", "", "", "", "", ""),
		record("2024-03-20 09:00:00", "", "", "", "", ""),
		record("", "", "", "", "", ""),
		record("ayer", "", "", "", "", ""),
		record("2023-11-30", "", "", "", "", ""),
	}
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("AllMonths", func(t *testing.T) {
		want := []models.MonthCount{
			{Month: "2023-11", Count: 1},
			{Month: "2024-01", Count: 1},
			{Month: "2024-03", Count: 2},
		}
		if diff := cmp.Diff(want, BucketByMonth(records, 0, now)); diff != "" {
			t.Errorf("BucketByMonth mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("TrailingWindow", func(t *testing.T) {
		want := []models.MonthCount{
			{Month: "2024-01", Count: 1},
			{Month: "2024-03", Count: 2},
		}
		if diff := cmp.Diff(want, BucketByMonth(records, 3, now)); diff != "" {
			t.Errorf("BucketByMonth mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("FutureDatesOutsideWindow", func(t *testing.T) {
		future := []models.VotingRecord{record("2024-05-01", "", "", "", "", "")}
		assert.Empty(t, BucketByMonth(future, 3, now))
		assert.Len(t, BucketByMonth(future, 0, now), 1)
	})
}

func TestBucketByYear(t *testing.T) {
	records := []models.VotingRecord{
		record("2023-05-01", "Aprobado", "", "", "", ""),
		record("2024-01-10", "Retirado", "", "", "", ""),
		record("2024-01-11", "", "", "", "", ""),
		record("2024-01-12", "Rechazado", "", "", "", ""),
		record("", "Aprobado", "", "", "", ""),
		record("24", "Aprobado", "", "", "", ""),
	}

	got := SortedYears(BucketByYear(records))
	want := []models.YearlySummary{
		{Year: "2023", Total: 1, Approved: 1},
		{Year: "2024", Total: 3, Rejected: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BucketByYear mismatch (-want +got):\n%s", diff)
	}
}

func TestCountByField(t *testing.T) {
	records := []models.VotingRecord{
		record("", "Rechazado", "Moción", "", "", ""),
		record("", "Aprobado", "Proyecto", "", "", ""),
		record("", "Aprobado", "", "", "", ""),
		record("", "Rechazado", "Proyecto", "", "", ""),
		record("", "", "Acuerdo", "", "", ""),
		record("", "Aprobado", "Resolución", "", "", ""),
		record("", "Retirado", "Oficio", "", "", ""),
		record("", "", "Informe", "", "", ""),
	}

	t.Run("AllResults", func(t *testing.T) {
		want := []models.CategoryCount{
			{Value: "Aprobado", Count: 3},
			{Value: "Rechazado", Count: 2},
			{Value: Unspecified, Count: 2},
			{Value: "Retirado", Count: 1},
		}
		if diff := cmp.Diff(want, CountByField(records, models.FieldResult, 0)); diff != "" {
			t.Errorf("CountByField mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("TopTypes", func(t *testing.T) {
		want := []models.CategoryCount{
			{Value: "Proyecto", Count: 2},
			{Value: "Moción", Count: 1},
			{Value: Unspecified, Count: 1},
			{Value: "Acuerdo", Count: 1},
			{Value: "Resolución", Count: 1},
		}
		if diff := cmp.Diff(want, CountByField(records, models.FieldType, 5)); diff != "" {
			t.Errorf("CountByField mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, CountByField(nil, models.FieldType, 5))
	})
}

func TestAverageVoteTotals(t *testing.T) {
	records := []models.VotingRecord{
		record("", "", "", "100", "20", "5"),
		record("", "", "", "0", "90", "90"),
		record("", "", "", "", "90", "90"),
		record("", "", "", "51", "11", "2"),
	}

	got := AverageVoteTotals(records)
	assert.Equal(t, models.VoteAverages{Yes: 76, No: 16, Abstain: 4}, got)
}

func TestAverageVoteTotalsWithoutYesVotes(t *testing.T) {
	records := []models.VotingRecord{record("", "", "", "0", "10", "1")}
	assert.Equal(t, models.VoteAverages{}, AverageVoteTotals(records))
	assert.Equal(t, models.VoteAverages{}, AverageVoteTotals(nil))
}

func TestCountByFieldKeepsWhitespace(t *testing.T) {
	records := []models.VotingRecord{
		record("", "", " ", "", "", ""),
		record("", "", "", "", "", ""),
	}
	want := []models.CategoryCount{
		{Value: " ", Count: 1},
		{Value: Unspecified, Count: 1},
	}
	if diff := cmp.Diff(want, CountByField(records, models.FieldType, 0)); diff != "" {
		t.Errorf("CountByField mismatch (-want +got):\n%s", diff)
	}
}

func TestBucketByYearSkipsInvalidPrefix(t *testing.T) {
	records := []models.VotingRecord{
		record("202ñ-01-10", "Aprobado", "", "", "", ""),
		record("2024-01-10", "Aprobado", "", "", "", ""),
	}
	years := BucketByYear(records)
	assert.Len(t, years, 1)
	assert.Contains(t, years, "2024")
}

func TestLargeTalliesDoNotOverflow(t *testing.T) {
	huge := strconv.Itoa(math.MaxInt / 2)
	records := []models.VotingRecord{
		record("", "", "", huge, huge, ""),
		record("", "", "", huge, huge, ""),
		record("", "", "", huge, huge, ""),
	}

	state := Summarize(records)
	assert.Positive(t, state.AverageYes)

	avg := AverageVoteTotals(records)
	assert.Positive(t, avg.Yes)
	assert.Positive(t, avg.No)
}
