// Package assets downloads the meme template images served under /memes/.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
)

const (
	userAgent = "Mozilla/5.0 (compatible; lifestore/1.0)"
	// maxAssetSize caps a single download
	maxAssetSize = 5 * 1024 * 1024
)

// MemeSources maps asset file names to their download URLs
var MemeSources = map[string]string{
	"this_is_fine.jpg":      "https://i.imgflip.com/1nhqil.jpg",
	"distracted_bf.jpg":     "https://i.imgflip.com/1ur9b0.jpg",
	"clown_makeup.jpg":      "https://i.imgflip.com/38el31.jpg",
	"drowning_highfive.jpg": "https://i.imgflip.com/1wz1x0.jpg",
	"galaxy_brain.jpg":      "https://i.imgflip.com/1jwhww.jpg",
	"pepe_crying.jpg":       "https://i.imgflip.com/2r8qh4.png",
	"drake_no.jpg":          "https://i.imgflip.com/30b1gx.jpg",
	"sweating_guy.jpg":      "https://i.imgflip.com/1c1uej.jpg",
	"disaster_girl.jpg":     "https://i.imgflip.com/23ls.jpg",
	"exit_this_way.jpg":     "https://i.imgflip.com/1r7eny.jpg",
	"imagination.jpg":       "https://i.imgflip.com/1otk96.jpg",
	"thinking_hard.jpg":     "https://i.imgflip.com/1h7in3.jpg",
	"hold_my_beer.jpg":      "https://i.imgflip.com/1yxkcp.jpg",
	"pointing_man.jpg":      "https://i.imgflip.com/2wifvo.jpg",
	"thanos_snap.jpg":       "https://i.imgflip.com/28j0te.jpg",
	"elmo_fire.jpg":         "https://i.imgflip.com/21uy0f.jpg",
	"fine_dog.jpg":          "https://i.imgflip.com/wxica.jpg",
	"cold_stare.jpg":        "https://i.imgflip.com/26am.jpg",
	"pepe_comfy.jpg":        "https://i.imgflip.com/3pnmg.jpg",
}

// Fetcher downloads assets over HTTP
type Fetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewFetcher creates a fetcher with a per-request timeout
func NewFetcher(timeout time.Duration, logger *zap.Logger) *Fetcher {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}, logger: logger}
}

// Fetch retrieves the content at rawURL
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	// one extra byte tells an oversized body from one exactly at the limit
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxAssetSize {
		return nil, fmt.Errorf("asset larger than %d bytes", maxAssetSize)
	}
	if len(body) == 0 {
		return nil, errors.New("empty body")
	}
	return body, nil
}

// Report summarizes a Sync run
type Report struct {
	Downloaded []string
	Skipped    []string
	Failed     map[string]error
}

// Sync downloads every source missing from dir. Existing files are kept.
// Individual failures are collected in the report, not returned.
func (f *Fetcher) Sync(ctx context.Context, dir string, sources map[string]string) (*Report, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create assets dir: %w", err)
	}

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	report := &Report{Failed: map[string]error{}}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		dst := filepath.Join(dir, filepath.Base(name))
		if _, err := os.Stat(dst); err == nil {
			report.Skipped = append(report.Skipped, name)
			continue
		}

		data, err := f.Fetch(ctx, sources[name])
		if err == nil {
			err = writeFile(dst, data)
		}
		if err != nil {
			f.logger.Warn("asset download failed", zap.String("file", name), zap.Error(err))
			report.Failed[name] = err
			continue
		}

		f.logger.Debug("asset downloaded", zap.String("file", name), zap.Int("bytes", len(data)))
		report.Downloaded = append(report.Downloaded, name)
	}
	return report, nil
}

// writeFile writes through a temp file so a failed write never leaves a
// partial asset that a later Sync would skip
func writeFile(dst string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".asset-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close asset: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("rename asset: %w", err)
	}
	return nil
}
