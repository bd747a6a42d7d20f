package models

// AggregateState holds the summary numbers shown in the dashboard header
type AggregateState struct {
	Total       int    `json:"total" yaml:"total"`
	LastUpdated string `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	Approved    int    `json:"approved" yaml:"approved"`
	AverageYes  int    `json:"average_yes" yaml:"average_yes"`
}

// YearlySummary counts the records of one calendar year
type YearlySummary struct {
	Year     string `json:"year" yaml:"year"`
	Total    int    `json:"total" yaml:"total"`
	Approved int    `json:"approved" yaml:"approved"`
	Rejected int    `json:"rejected" yaml:"rejected"`
}

// MonthCount is one bucket of the activity series
type MonthCount struct {
	Month string `json:"month" yaml:"month"`
	Count int    `json:"count" yaml:"count"`
}

// CategoryCount is one bucket of a categorical breakdown
type CategoryCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// VoteAverages holds rounded per-record vote tallies
type VoteAverages struct {
	Yes     int `json:"yes" yaml:"yes"`
	No      int `json:"no" yaml:"no"`
	Abstain int `json:"abstain" yaml:"abstain"`
}
