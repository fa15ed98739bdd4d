// Package acquire downloads the raw Storm Events archive to local disk.
package acquire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Fetcher retrieves a remote dataset over HTTP and writes it to disk.
type Fetcher struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewFetcher creates a Fetcher with the given request timeout.
func NewFetcher(timeout time.Duration, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads url to dest unless dest already exists, in which case the
// cached copy is used. The body streams through a temp file that is renamed
// into place on success, so an interrupted download never leaves a truncated
// dest behind. Returns the number of bytes written (0 on a cache hit).
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) (int64, error) {
	if _, err := os.Stat(dest); err == nil {
		f.logger.Info("dataset already on disk, skipping download", "path", dest)
		return 0, nil
	} else if !os.IsNotExist(err) {
		return 0, fmt.Errorf("stat %s: %w", dest, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("create data dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	f.logger.Info("downloading dataset", "url", url, "dest", dest)
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("download dataset: status %d: %s", resp.StatusCode, body)
	}

	written, err := writeAtomic(dest, resp.Body)
	if err != nil {
		return 0, err
	}

	f.logger.Info("download complete", "bytes", written)
	return written, nil
}

// writeAtomic streams r into dest via a sibling temp file and a rename.
func writeAtomic(dest string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".partial-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return 0, fmt.Errorf("write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("finalize dataset: %w", err)
	}
	return written, nil
}
