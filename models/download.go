package models

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/hashicorp/go-retryablehttp"
)

// download fetches the bundle archive to a temporary file inside the cache
// dir and verifies the byte count against Content-Length. Returns the
// temporary path; the caller removes it.
func (s *Store) download(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return "", fmt.Errorf("building download request: %w", err)
	}

	s.log.Infow("downloading model bundle", "url", s.baseURL)
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", s.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %s", s.baseURL, resp.Status)
	}

	tmp, err := os.CreateTemp(s.cacheDir, ".download-*.tar.gz")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	written, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing bundle: %w", err)
	}
	if resp.ContentLength >= 0 && written != resp.ContentLength {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("short download: got %d of %d bytes", written, resp.ContentLength)
	}

	s.log.Debugw("bundle downloaded", "bytes", written)
	return tmp.Name(), nil
}
