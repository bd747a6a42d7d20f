package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Field names used by votaciones.json
const (
	FieldDate         = "Fecha"
	FieldDescription  = "Descripcion"
	FieldResult       = "Resultado"
	FieldType         = "Tipo"
	FieldTotalYes     = "TotalSi"
	FieldTotalNo      = "TotalNo"
	FieldTotalAbstain = "TotalAbstencion"
)

// VotingRecord represents a single legislative vote event
type VotingRecord struct {
	Date         string
	Description  string
	Result       string
	Type         string
	TotalYes     int
	TotalNo      int
	TotalAbstain int

	// Values keeps every scalar field of the source object as display text,
	// including the ones mapped above.
	Values map[string]string
}

// Field returns the display text of a source field, or "" when absent
func (r VotingRecord) Field(name string) string {
	if r.Values != nil {
		if v, ok := r.Values[name]; ok {
			return v
		}
	}
	switch name {
	case FieldDate:
		return r.Date
	case FieldDescription:
		return r.Description
	case FieldResult:
		return r.Result
	case FieldType:
		return r.Type
	}
	return ""
}

// HasYesVotes reports whether the record carries a non-zero yes tally.
// Records without one are left out of vote-total averages.
func (r VotingRecord) HasYesVotes() bool {
	return r.TotalYes != 0
}

// UnmarshalJSON decodes a loosely typed record. Numeric tallies may be
// encoded as numbers or strings; anything unparseable becomes zero.
func (r *VotingRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("voting record: %w", err)
	}

	values := make(map[string]string, len(raw))
	for key, msg := range raw {
		if text, ok := scalarText(msg); ok {
			values[key] = text
		}
	}

	*r = NewVotingRecord(values)
	return nil
}

// MarshalJSON emits the record in its source shape
func (r VotingRecord) MarshalJSON() ([]byte, error) {
	values := r.Values
	if values == nil {
		values = map[string]string{
			FieldDate:         r.Date,
			FieldDescription:  r.Description,
			FieldResult:       r.Result,
			FieldType:         r.Type,
			FieldTotalYes:     fmt.Sprint(r.TotalYes),
			FieldTotalNo:      fmt.Sprint(r.TotalNo),
			FieldTotalAbstain: fmt.Sprint(r.TotalAbstain),
		}
	}
	return json.Marshal(values)
}

// NewVotingRecord builds a record from source field values
func NewVotingRecord(values map[string]string) VotingRecord {
	return VotingRecord{
		Date:         strings.TrimSpace(values[FieldDate]),
		Description:  values[FieldDescription],
		Result:       values[FieldResult],
		Type:         values[FieldType],
		TotalYes:     ParseCount(values[FieldTotalYes]),
		TotalNo:      ParseCount(values[FieldTotalNo]),
		TotalAbstain: ParseCount(values[FieldTotalAbstain]),
		Values:       values,
	}
}

// ParseCount reads the leading decimal integer of s. Empty, negative or
// non-numeric input yields 0.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")

	n := 0
	digits := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		if n > (math.MaxInt-9)/10 {
			return 0
		}
		n = n*10 + int(c-'0')
		digits++
	}
	if digits == 0 {
		return 0
	}
	return n
}

// scalarText renders a JSON value as display text. Null is reported as absent.
func scalarText(msg json.RawMessage) (string, bool) {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 || bytes.Equal(msg, []byte("null")) {
		return "", false
	}

	switch msg[0] {
	case '"':
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return "", false
		}
		return s, true
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, msg); err != nil {
			return "", false
		}
		return buf.String(), true
	default:
		return string(msg), true
	}
}
