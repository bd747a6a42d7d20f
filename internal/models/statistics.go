package models

import (
	"encoding/json"
	"fmt"
)

// Statistics is the pre-computed object published in estadisticas.json.
// Only UpdatedAt is consumed; the rest is carried along untouched.
type Statistics struct {
	UpdatedAt       string                     `json:"fecha_actualizacion,omitempty"`
	TotalVotes      int                        `json:"total_votaciones,omitempty"`
	AvailableFields []string                   `json:"campos_disponibles,omitempty"`
	Extra           map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON keeps unknown keys in Extra
func (s *Statistics) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("statistics: %w", err)
	}

	var out Statistics
	for key, msg := range raw {
		switch key {
		case "fecha_actualizacion":
			if text, ok := scalarText(msg); ok {
				out.UpdatedAt = text
			}
		case "total_votaciones":
			if text, ok := scalarText(msg); ok {
				out.TotalVotes = ParseCount(text)
			}
		case "campos_disponibles":
			// a malformed list is ignored rather than failing the load
			_ = json.Unmarshal(msg, &out.AvailableFields)
		default:
			if out.Extra == nil {
				out.Extra = make(map[string]json.RawMessage)
			}
			out.Extra[key] = msg
		}
	}

	*s = out
	return nil
}
