package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxResourceSize bounds the bytes read from a single response
const maxResourceSize = 64 << 20

// HTTPSource fetches resources relative to a base URL
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource creates a source for the given base URL
func NewHTTPSource(baseURL string) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme: %q", u.Scheme)
	}
	// resolve resource names inside the base path, not beside it
	if u.Path == "" || u.Path[len(u.Path)-1] != '/' {
		u.Path += "/"
	}

	return &HTTPSource{
		base: u,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Method returns the source type
func (s *HTTPSource) Method() string {
	return "http"
}

// Fetch implements the Source interface
func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	ref, err := url.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("invalid resource name %q: %w", name, err)
	}
	target := s.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "legislativo/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", target, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, target)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

// Cleanup implements the Source interface
func (s *HTTPSource) Cleanup() error {
	s.client.CloseIdleConnections()
	return nil
}
