package loader

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ZIPSource reads resources from a ZIP archive, either a local file or one
// downloaded from an http(s) URL. The archive is opened once per load and
// reopened, or downloaded again, after Refresh. Entries are matched by base
// name so archives with a top-level directory work too.
type ZIPSource struct {
	location string
	client   *http.Client

	mu      sync.Mutex
	tempDir string
	reader  *zip.ReadCloser
}

// NewZIPSource creates a source for the archive at location
func NewZIPSource(location string) *ZIPSource {
	return &ZIPSource{
		location: location,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Method returns the source type
func (s *ZIPSource) Method() string {
	return "zip"
}

// Fetch implements the Source interface
func (s *ZIPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	r, err := s.open(ctx)
	if err != nil {
		return nil, err
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() || path.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(io.LimitReader(rc, maxResourceSize))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%s in %s: %w", name, s.location, ErrNotFound)
}

func (s *ZIPSource) open(ctx context.Context) (*zip.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reader != nil {
		return s.reader, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	zipPath := s.location
	if isRemote(s.location) {
		var err error
		zipPath, err = s.download(ctx)
		if err != nil {
			return nil, err
		}
	}

	r, err := zip.OpenReader(zipPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", zipPath, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ZIP: %w", err)
	}
	s.reader = r
	return r, nil
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// download saves the remote archive into a private temp directory
func (s *ZIPSource) download(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/zip, */*")
	req.Header.Set("User-Agent", "legislativo/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download archive: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%s: %w", s.location, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if s.tempDir == "" {
		dir, err := os.MkdirTemp("", "legislativo_*")
		if err != nil {
			return "", fmt.Errorf("failed to create temp directory: %w", err)
		}
		s.tempDir = dir
	}

	zipPath := filepath.Join(s.tempDir, "download.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(zipPath)
		return "", fmt.Errorf("failed to save archive: %w", err)
	}
	return zipPath, nil
}

// Refresh closes the open archive so the next Fetch reads it again
func (s *ZIPSource) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reader == nil {
		return nil
	}
	err := s.reader.Close()
	s.reader = nil
	if err != nil {
		return fmt.Errorf("failed to close ZIP: %w", err)
	}
	return nil
}

// Cleanup closes the archive and removes any downloaded copy
func (s *ZIPSource) Cleanup() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.reader != nil {
		err = s.reader.Close()
		s.reader = nil
	}
	s.client.CloseIdleConnections()
	if s.tempDir != "" {
		if rmErr := os.RemoveAll(s.tempDir); rmErr != nil && err == nil {
			err = rmErr
		}
		s.tempDir = ""
	}
	return err
}
