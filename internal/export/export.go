// Package export captures a rendered artifact as a PNG and delivers it.
package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/pbaille/lifestore/internal/domain"
)

const (
	// Scale is the supersampling factor of every capture
	Scale = 2
	// MaxCanvasSide is the largest pixel width or height a capture may have
	MaxCanvasSide = 16384
	// FailureNotice is shown to the user when an export fails
	FailureNotice = "이미지 저장에 실패했습니다. 다시 시도해주세요."
)

var (
	ErrInProgress     = errors.New("export already in progress")
	ErrCrossOrigin    = errors.New("artifact references a cross-origin image")
	ErrCanvasTooLarge = errors.New("artifact exceeds the maximum canvas size")
)

// Error is a failed export. The analysis state is never affected by it.
type Error struct {
	Theme domain.ThemeID
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s: %v", e.Theme, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Notice returns the user-visible message
func (e *Error) Notice() string { return FailureNotice }

// Request describes one export
type Request struct {
	Document   []byte
	ThemeID    domain.ThemeID
	Background string
	FileName   string
}

// Result is a captured artifact
type Result struct {
	FileName string
	PNG      []byte
	Width    int
	Height   int
}

// DataURL returns the image as a PNG data URL
func (r *Result) DataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(r.PNG)
}

// CaptureOptions tells a Capturer what to capture and how
type CaptureOptions struct {
	Selector   string
	Scale      float64
	Background string
}

// Capturer rasterizes the element matching Selector in an HTML document
type Capturer interface {
	Capture(ctx context.Context, document []byte, opts CaptureOptions) ([]byte, error)
}

// Options configure a Pipeline
type Options struct {
	// AssetsDir holds the files served under /memes/
	AssetsDir string
	// AllowRemote lets documents keep remote image references
	AllowRemote bool
	// Selector locates the artifact root; defaults to #artifact
	Selector string
}

// Pipeline runs exports one at a time
type Pipeline struct {
	capturer Capturer
	opts     Options
	logger   *zap.Logger
	busy     atomic.Bool
}

// New creates a pipeline capturing with c
func New(c Capturer, opts Options, logger *zap.Logger) *Pipeline {
	if opts.Selector == "" {
		opts.Selector = "#artifact"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{capturer: c, opts: opts, logger: logger}
}

// Busy reports whether an export is in flight
func (p *Pipeline) Busy() bool {
	return p.busy.Load()
}

// Export captures req.Document. A call made while another export is in
// flight returns ErrInProgress without doing anything.
func (p *Pipeline) Export(ctx context.Context, req Request) (*Result, error) {
	if !p.busy.CompareAndSwap(false, true) {
		return nil, ErrInProgress
	}
	defer p.busy.Store(false)

	res, err := p.export(ctx, req)
	if err != nil {
		p.logger.Warn("export failed", zap.String("theme", string(req.ThemeID)), zap.Error(err))
		return nil, &Error{Theme: req.ThemeID, Err: err}
	}

	p.logger.Info("exported artifact",
		zap.String("theme", string(req.ThemeID)),
		zap.String("file", res.FileName),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height),
	)
	return res, nil
}

func (p *Pipeline) export(ctx context.Context, req Request) (*Result, error) {
	if p.capturer == nil {
		return nil, errors.New("no capturer configured")
	}
	if req.FileName == "" {
		return nil, errors.New("missing file name")
	}

	doc, err := Preflight(req.Document, PreflightOptions{
		AssetsDir:   p.opts.AssetsDir,
		AllowRemote: p.opts.AllowRemote,
		Background:  req.Background,
		Selector:    p.opts.Selector,
		OnMissing: func(name string) {
			p.logger.Warn("asset missing, image dropped",
				zap.String("theme", string(req.ThemeID)),
				zap.String("asset", name),
			)
		},
	})
	if err != nil {
		return nil, err
	}

	data, err := p.capturer.Capture(ctx, doc, CaptureOptions{
		Selector:   p.opts.Selector,
		Scale:      Scale,
		Background: req.Background,
	})
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode capture: %w", err)
	}
	if cfg.Width > MaxCanvasSide || cfg.Height > MaxCanvasSide {
		return nil, ErrCanvasTooLarge
	}

	return &Result{FileName: req.FileName, PNG: data, Width: cfg.Width, Height: cfg.Height}, nil
}
