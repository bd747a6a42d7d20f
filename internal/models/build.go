package models

import "fmt"

// BuildStatus is the outcome of one dashboard build
type BuildStatus string

const (
	BuildStatusOK     BuildStatus = "ok"
	BuildStatusFailed BuildStatus = "failed"
)

// BuildRecord is one entry of the build history
type BuildRecord struct {
	ID          string      `json:"id"`
	SnapshotID  string      `json:"snapshot_id,omitempty"`
	Status      BuildStatus `json:"status"`
	Records     int         `json:"records"`
	Approved    int         `json:"approved"`
	LastUpdated string      `json:"last_updated,omitempty"`
	Message     string      `json:"message,omitempty"`
	Created     string      `json:"created,omitempty"`
}

// Validate checks the status and that successful builds carry a snapshot
func (b *BuildRecord) Validate() error {
	switch b.Status {
	case BuildStatusOK:
		if b.SnapshotID == "" {
			return fmt.Errorf("snapshot_id is required for a successful build")
		}
	case BuildStatusFailed:
	default:
		return fmt.Errorf("invalid build status: %s", b.Status)
	}
	return nil
}
