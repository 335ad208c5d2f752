// Package imagefetch retrieves image bytes from a storage URL for the vision
// pipeline and classifies the media type from the URL's file extension.
package imagefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FetchError indicates the image could not be retrieved from storage.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch image %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves image content for analysis.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, mediaType string, err error)
}

// HTTPFetcher fetches images over HTTP.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher constructs a fetcher with a bounded request timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: 30 * time.Second}}
}

// Fetch downloads the image and returns its bytes plus the media type derived
// from the URL extension. Non-2xx responses and transport failures return a
// *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", &FetchError{URL: url, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &FetchError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	return data, MediaTypeForURL(url), nil
}

// MediaTypeForURL maps a URL's file extension to an image media type.
// Unknown extensions default to image/jpeg.
func MediaTypeForURL(url string) string {
	lower := strings.ToLower(url)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
