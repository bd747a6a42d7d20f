package dashboard

import (
	"legislativo/internal/aggregate"
	"legislativo/internal/formatter"
	"legislativo/internal/loader"
	"legislativo/internal/models"
	"legislativo/internal/render"
)

// Summary is the header block of the view model
type Summary struct {
	Total           int    `json:"total" yaml:"total"`
	TotalText       string `json:"total_text" yaml:"total_text"`
	Approved        int    `json:"approved" yaml:"approved"`
	ApprovedText    string `json:"approved_text" yaml:"approved_text"`
	AverageYes      int    `json:"average_yes" yaml:"average_yes"`
	AverageYesText  string `json:"average_yes_text" yaml:"average_yes_text"`
	LastUpdated     string `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	LastUpdatedText string `json:"last_updated_text,omitempty" yaml:"last_updated_text,omitempty"`
}

// View is the machine-readable dashboard served by the API
type View struct {
	SnapshotID string                 `json:"snapshot_id" yaml:"snapshot_id"`
	Summary    Summary                `json:"summary" yaml:"summary"`
	Months     []models.MonthCount    `json:"months" yaml:"months"`
	Years      []models.YearlySummary `json:"years" yaml:"years"`
	Results    []models.CategoryCount `json:"results" yaml:"results"`
	Types      []models.CategoryCount `json:"types" yaml:"types"`
	Averages   models.VoteAverages    `json:"averages" yaml:"averages"`
}

// NewView derives the view model from a snapshot
func NewView(snapshot *loader.Snapshot, f *formatter.Formatter, opts Options) *View {
	records := snapshot.Records
	state := snapshot.State

	topTypes := opts.TopTypes
	if topTypes <= 0 {
		topTypes = render.DefaultTopTypes
	}

	summary := Summary{
		Total:          state.Total,
		TotalText:      f.FormatNumber(state.Total),
		Approved:       state.Approved,
		ApprovedText:   f.FormatNumber(state.Approved),
		AverageYes:     state.AverageYes,
		AverageYesText: f.FormatNumber(state.AverageYes),
		LastUpdated:    state.LastUpdated,
	}
	if state.LastUpdated != "" {
		summary.LastUpdatedText = f.FormatDate(state.LastUpdated)
	}

	return &View{
		SnapshotID: snapshot.ID,
		Summary:    summary,
		Months:     aggregate.BucketByMonth(records, opts.WindowMonths, snapshot.LoadedAt.In(f.Location())),
		Years:      aggregate.SortedYears(aggregate.BucketByYear(records)),
		Results:    aggregate.CountByField(records, models.FieldResult, 0),
		Types:      aggregate.CountByField(records, models.FieldType, topTypes),
		Averages:   aggregate.AverageVoteTotals(records),
	}
}
