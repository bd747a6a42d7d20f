package models

import "fmt"

// SourceKind represents the transport used to fetch the data resources
type SourceKind string

const (
    SourceKindFile SourceKind = "file"
    SourceKindHTTP SourceKind = "http"
    SourceKindS3   SourceKind = "s3"
    SourceKindZIP  SourceKind = "zip"
)

// ValidateSourceKind checks if the source kind is valid
func ValidateSourceKind(kind SourceKind) error {
    switch kind {
    case SourceKindFile, SourceKindHTTP, SourceKindS3, SourceKindZIP:
        return nil
    default:
        return fmt.Errorf("invalid source kind: %s", kind)
    }
}

// DataSource describes where estadisticas.json and votaciones.json live
type DataSource struct {
    Kind     SourceKind `json:"kind" mapstructure:"kind"`
    Location string     `json:"location" mapstructure:"location"`
}

// Validate ensures all required fields are present and valid
func (d *DataSource) Validate() error {
    if d.Location == "" {
        return fmt.Errorf("location is required")
    }
    return ValidateSourceKind(d.Kind)
}
