// Package media downloads rendition bytes (images, audio) from the
// platform's file store so resources can attach them as blobs.
package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Download bounds.
const (
	// DefaultTimeout bounds one download.
	DefaultTimeout = 30 * time.Second

	// maxBlobBytes caps a download; renditions beyond this are refused
	// rather than streamed into a protocol message.
	maxBlobBytes = 32 << 20 // 32 MiB
)

// Fetcher downloads media bytes over HTTP.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a fetcher with the default timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Fetch downloads the resource at uri, refusing oversized payloads.
func (f *Fetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", uri, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBlobBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxBlobBytes {
		return nil, fmt.Errorf("fetch %s: larger than %d bytes", uri, maxBlobBytes)
	}
	return data, nil
}
