package images

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Download policy for every image in a run: up to maxAttempts tries with a
// linearly growing pause between them.
const (
	maxAttempts  = 3
	retryBackoff = 500 * time.Millisecond
)

// hashLength is the number of hex characters of the SHA-256 digest kept in
// stored filenames.
const hashLength = 16

// URLResolver turns an image reference from a record into a directly
// downloadable URL. The SeaTable client implements this for asset URLs.
type URLResolver interface {
	ResolveAssetURL(ctx context.Context, rawURL string) (string, error)
}

// Materializer downloads images into a shared content-addressed directory.
// Files are named <hash-of-bytes><ext>, so byte-identical content always
// lands on the same filename regardless of which catalog or run fetched it.
type Materializer struct {
	Dir        string
	Resolver   URLResolver
	HTTPClient *http.Client
}

// NewMaterializer creates a materializer writing into dir.
func NewMaterializer(dir string, resolver URLResolver) *Materializer {
	return &Materializer{
		Dir:      dir,
		Resolver: resolver,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Result is the outcome of materializing one record's image.
type Result struct {
	// Path is the relative path to embed in markup ("images/<hash><ext>"),
	// empty when the record had no usable image.
	Path   string
	Cached bool
	Err    error
}

// Materialize resolves, downloads, and stores one image, returning the
// markup-relative path. An already stored file with matching size is a cache
// hit and is not rewritten; a short or empty file from an interrupted run is
// replaced.
func (m *Materializer) Materialize(ctx context.Context, imageURL string) (Result, error) {
	resolved, err := m.Resolver.ResolveAssetURL(ctx, imageURL)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve image reference: %w", err)
	}

	data, err := m.download(ctx, resolved)
	if err != nil {
		return Result{}, err
	}

	sum := sha256.Sum256(data)
	filename := hex.EncodeToString(sum[:])[:hashLength] + extensionOf(imageURL)
	target := filepath.Join(m.Dir, filename)
	relative := path.Join("images", filename)

	if info, err := os.Stat(target); err == nil && info.Size() == int64(len(data)) {
		slog.Debug("Image already stored", "file", filename)
		return Result{Path: relative, Cached: true}, nil
	}

	if err := os.MkdirAll(m.Dir, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create images directory: %w", err)
	}
	if err := writeAtomic(m.Dir, target, data); err != nil {
		return Result{}, fmt.Errorf("failed to store image %s: %w", filename, err)
	}

	slog.Debug("Image stored", "file", filename, "bytes", len(data))
	return Result{Path: relative}, nil
}

// MaterializeAll materializes one image per reference with bounded
// concurrency. Results come back indexed by input position, so markup order
// never depends on download completion order. Empty references yield an
// empty Result.
func (m *Materializer) MaterializeAll(ctx context.Context, refs []string, concurrency int) []Result {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(refs))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i, ref := range refs {
		if ref == "" {
			continue
		}
		wg.Add(1)
		go func(idx int, imageURL string) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			result, err := m.Materialize(ctx, imageURL)
			if err != nil {
				results[idx] = Result{Err: err}
				return
			}
			results[idx] = result
		}(i, ref)
	}

	wg.Wait()
	return results
}

// download fetches the image bytes, retrying per the run-wide policy.
func (m *Materializer) download(ctx context.Context, downloadURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		data, err := m.fetch(ctx, downloadURL)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if attempt < maxAttempts {
			slog.Debug("Image download failed, retrying", "attempt", attempt, "error", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}
	}
	return nil, fmt.Errorf("download failed after %d attempts: %w", maxAttempts, lastErr)
}

func (m *Materializer) fetch(ctx context.Context, downloadURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image response was empty")
	}
	return data, nil
}

// writeAtomic writes data via a temp file in dir and renames it into place,
// so an interrupted run never leaves a half-written file under the final name.
func writeAtomic(dir, target string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// extensionOf extracts the lowercased file extension from the original image
// reference, ignoring query parameters.
func extensionOf(imageURL string) string {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	p := parsed.Path
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	return strings.ToLower(path.Ext(p))
}
