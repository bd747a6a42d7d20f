// internal/loader/source.go
package loader

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Source when a resource does not exist
var ErrNotFound = errors.New("resource not found")

// Source defines the interface for the transports the data resources are read from
type Source interface {
	// Method returns the source type (e.g., "file", "http")
	Method() string

	// Fetch reads the named resource
	Fetch(ctx context.Context, name string) ([]byte, error)

	// Cleanup releases any resources held by the source
	Cleanup() error
}

// Refresher is implemented by sources that cache data between loads. The
// loader calls Refresh before every load so each load sees current data.
type Refresher interface {
	Refresh() error
}

// LoadError represents a loading error with a specific stage
type LoadError struct {
	Stage    string
	Resource string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error at %s stage for %s: %v", e.Stage, e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError
func NewLoadError(stage, resource string, err error) *LoadError {
	return &LoadError{
		Stage:    stage,
		Resource: resource,
		Err:      err,
	}
}
