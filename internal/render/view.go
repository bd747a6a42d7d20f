package render

import (
	"strings"

	"go.uber.org/zap"

	"legislativo/internal/aggregate"
	"legislativo/internal/formatter"
	"legislativo/internal/loader"
	"legislativo/internal/models"
)

// Table defaults
const (
	DefaultTableLimit = 50
	DefaultTruncateAt = 60
)

// Placeholder is shown for empty table cells
const Placeholder = "-"

// TableFields is the projection shown in the records table
var TableFields = []string{
	models.FieldDate,
	models.FieldDescription,
	models.FieldResult,
	models.FieldType,
	models.FieldTotalYes,
	models.FieldTotalNo,
}

// ViewRenderer writes the summary fields and the records table
type ViewRenderer struct {
	format     *formatter.Formatter
	logger     *zap.Logger
	tableLimit int
	truncateAt int
}

// NewViewRenderer creates a view renderer. Non-positive limits fall back to
// the defaults.
func NewViewRenderer(format *formatter.Formatter, logger *zap.Logger, tableLimit, truncateAt int) *ViewRenderer {
	if tableLimit <= 0 {
		tableLimit = DefaultTableLimit
	}
	if truncateAt <= 0 {
		truncateAt = DefaultTruncateAt
	}
	return &ViewRenderer{
		format:     format,
		logger:     logger,
		tableLimit: tableLimit,
		truncateAt: truncateAt,
	}
}

// Render writes the snapshot into doc. Calling it again overwrites the
// previous output; regions the new snapshot leaves empty are reset.
func (v *ViewRenderer) Render(doc *Document, snapshot *loader.Snapshot) {
	v.renderSummary(doc, snapshot)
	v.renderTable(doc, snapshot.Records)
}

func (v *ViewRenderer) renderSummary(doc *Document, snapshot *loader.Snapshot) {
	state := snapshot.State

	if r, ok := v.region(doc, RegionTotal); ok {
		r.SetText(v.format.FormatNumber(state.Total))
	}
	if r, ok := v.region(doc, RegionUpdated); ok {
		if state.LastUpdated == "" {
			r.Reset()
		} else {
			r.SetText(v.format.FormatDate(state.LastUpdated))
		}
	}
	if r, ok := v.region(doc, RegionApproved); ok {
		if state.Total == 0 {
			r.Reset()
		} else {
			r.SetText(v.format.FormatNumber(state.Approved))
		}
	}
	if r, ok := v.region(doc, RegionAverageYes); ok {
		if state.Total == 0 {
			r.Reset()
		} else {
			r.SetText(v.format.FormatNumber(state.AverageYes))
		}
	}
}

func (v *ViewRenderer) renderTable(doc *Document, records []models.VotingRecord) {
	if len(records) == 0 {
		v.logger.Info("No records to show")
		for _, id := range []string{RegionTableHeaders, RegionTableBody} {
			if r, ok := doc.Region(id); ok {
				r.Reset()
			}
		}
		return
	}

	if r, ok := v.region(doc, RegionTableHeaders); ok {
		headers := make([]string, len(TableFields))
		for i, field := range TableFields {
			headers[i] = formatter.FormatFieldLabel(field)
		}
		r.SetHeaders(headers)
	}

	body, ok := v.region(doc, RegionTableBody)
	if !ok {
		return
	}
	if len(records) > v.tableLimit {
		records = records[:v.tableLimit]
	}
	rows := make([][]Cell, len(records))
	for i, rec := range records {
		rows[i] = v.row(rec)
	}
	body.SetRows(rows)
}

func (v *ViewRenderer) row(rec models.VotingRecord) []Cell {
	cells := make([]Cell, len(TableFields))
	for i, field := range TableFields {
		value := rec.Field(field)
		if strings.TrimSpace(value) == "" {
			value = Placeholder
		}

		switch field {
		case models.FieldResult:
			badge := "badge-danger"
			if aggregate.IsApproved(value) {
				badge = "badge-success"
			}
			cells[i] = Cell{Text: value, Badge: badge}
			continue
		case models.FieldDate:
			if value != Placeholder {
				value = v.format.FormatShortDate(value)
			}
		}
		cells[i] = Cell{Text: formatter.Truncate(value, v.truncateAt)}
	}
	return cells
}

func (v *ViewRenderer) region(doc *Document, id string) (*Region, bool) {
	r, ok := doc.Region(id)
	if !ok {
		v.logger.Debug("Skipping missing region", zap.String("region", id))
	}
	return r, ok
}
