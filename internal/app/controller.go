// Package app owns the submission lifecycle: validation, the analysis
// request, theme data resolution, history and export.
package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/pbaille/lifestore/internal/analysis"
	"github.com/pbaille/lifestore/internal/domain"
	"github.com/pbaille/lifestore/internal/export"
	"github.com/pbaille/lifestore/internal/history"
	"github.com/pbaille/lifestore/internal/synth"
	"github.com/pbaille/lifestore/internal/theme"
)

// Phase is the controller state
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
)

var (
	ErrBusy         = errors.New("analysis already in progress")
	ErrNotIdle      = errors.New("a result is displayed; reset first")
	ErrNotReady     = errors.New("no analysis result")
	ErrStale        = errors.New("analysis result discarded")
	ErrUnknownTheme = errors.New("unknown theme")
)

// resultNamespace scopes result ids
var resultNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("lifestore/analysis"))

// Result is one successful analysis with its resolved theme data
type Result struct {
	ID       string
	Response *domain.AnalyzeResponse
	Themes   *domain.ThemeData
	// At is the render date of every view and export of this result
	At time.Time
}

// Snapshot is a read-only view of the controller state
type Snapshot struct {
	Phase     Phase                   `json:"phase"`
	Theme     domain.ThemeID          `json:"theme"`
	Error     string                  `json:"error,omitempty"`
	ResultID  string                  `json:"result_id,omitempty"`
	Result    *domain.AnalyzeResponse `json:"result,omitempty"`
	Exporting bool                    `json:"exporting"`
}

// Deps are the collaborators of a Controller
type Deps struct {
	Analyzer analysis.Analyzer
	Synth    *synth.Synthesizer
	Registry *theme.Registry
	History  *history.Store
	Exporter *export.Pipeline
	Logger   *zap.Logger
}

// Options tune a Controller
type Options struct {
	// MemoSize bounds the number of resolved results kept
	MemoSize int
	// Now overrides the clock
	Now func() time.Time
}

// Controller drives Idle → Loading → Ready. All state changes go through
// its methods.
type Controller struct {
	analyzer analysis.Analyzer
	synth    *synth.Synthesizer
	registry *theme.Registry
	history  *history.Store
	exporter *export.Pipeline
	logger   *zap.Logger
	memo     *lru.Cache[string, *domain.ThemeData]
	now      func() time.Time

	mu      sync.Mutex
	phase   Phase
	theme   domain.ThemeID
	errMsg  string
	current *Result
	// gen changes on every submit and reset; a response is applied only
	// if gen is unchanged when it arrives
	gen uint64
}

// New creates a controller in the Idle phase
func New(deps Deps, opts Options) (*Controller, error) {
	if deps.Analyzer == nil || deps.Registry == nil || deps.History == nil {
		return nil, errors.New("app: analyzer, registry and history are required")
	}
	if deps.Synth == nil {
		deps.Synth = synth.New(nil)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if opts.MemoSize <= 0 {
		opts.MemoSize = 32
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	memo, err := lru.New[string, *domain.ThemeData](opts.MemoSize)
	if err != nil {
		return nil, fmt.Errorf("create memo: %w", err)
	}

	return &Controller{
		analyzer: deps.Analyzer,
		synth:    deps.Synth,
		registry: deps.Registry,
		history:  deps.History,
		exporter: deps.Exporter,
		logger:   deps.Logger,
		memo:     memo,
		now:      opts.Now,
		phase:    PhaseIdle,
		theme:    deps.Registry.List()[0],
	}, nil
}

// Submit validates f and runs the analysis. Only the Idle phase accepts a
// submission: it returns ErrBusy while another submission is loading,
// ErrNotIdle while a result is displayed, and ErrStale if a Reset happened
// before the response arrived.
func (c *Controller) Submit(ctx context.Context, f Form) (*Result, error) {
	c.mu.Lock()
	switch c.phase {
	case PhaseLoading:
		c.mu.Unlock()
		return nil, ErrBusy
	case PhaseReady:
		c.mu.Unlock()
		return nil, ErrNotIdle
	}

	sub, err := f.validate()
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			c.errMsg = ve.Message
		}
		c.mu.Unlock()
		return nil, err
	}

	c.phase = PhaseLoading
	c.errMsg = ""
	c.current = nil
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	resp, err := c.analyzer.Analyze(ctx, sub.request)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		c.logger.Debug("discarding stale analysis response", zap.Uint64("generation", gen))
		return nil, ErrStale
	}

	if err != nil {
		c.phase = PhaseIdle
		c.errMsg = requestMessage(err)
		c.logger.Warn("analysis failed", zap.Error(err))
		return nil, err
	}

	res, err := c.resolve(resp)
	if err != nil {
		c.phase = PhaseIdle
		c.errMsg = analysis.GenericFailure
		return nil, err
	}

	res.At = c.now()
	entry := sub.entry
	entry.Timestamp = res.At.UnixMilli()
	c.history.Save(entry)

	c.current = res
	c.phase = PhaseReady
	c.logger.Info("analysis ready",
		zap.String("result_id", res.ID),
		zap.String("mbti", resp.UserInfo.MBTI),
	)
	return res, nil
}

// resolve identifies resp and completes its theme data once per identity
func (c *Controller) resolve(resp *domain.AnalyzeResponse) (*Result, error) {
	canonical, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	id := uuid.NewSHA1(resultNamespace, canonical).String()

	themes, ok := c.memo.Get(id)
	if !ok {
		if !synth.KnownMBTI(resp.UserInfo.MBTI) || !synth.KnownElement(resp.SajuAnalysis.MainTrait) {
			c.logger.Debug("synthesis falling back to default tables",
				zap.String("mbti", resp.UserInfo.MBTI),
				zap.String("element", resp.SajuAnalysis.MainTrait),
			)
		}
		themes = c.synth.Complete(synth.InputFrom(resp))
		c.memo.Add(id, themes)
	}

	return &Result{ID: id, Response: resp, Themes: themes}, nil
}

func requestMessage(err error) string {
	var reqErr *analysis.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return analysis.ConnectionFailure
}

// Reset returns to Idle. A submission still loading is discarded on arrival.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.phase = PhaseIdle
	c.errMsg = ""
	c.current = nil
	c.gen++
}

// SelectTheme switches the theme of the displayed result. It returns
// ErrNotReady when no result is displayed. The choice stays active for
// later results.
func (c *Controller) SelectTheme(id domain.ThemeID) error {
	if _, ok := c.registry.Lookup(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTheme, id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseReady {
		return ErrNotReady
	}
	c.theme = id
	return nil
}

// Snapshot returns the current state. The result carries resolved theme data.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{Phase: c.phase, Theme: c.theme, Error: c.errMsg}
	if c.current != nil {
		resp := *c.current.Response
		resp.ThemeData = c.current.Themes
		s.ResultID = c.current.ID
		s.Result = &resp
	}
	if c.exporter != nil {
		s.Exporting = c.exporter.Busy()
	}
	return s
}

// Render writes the active theme's artifact document
func (c *Controller) Render(w io.Writer) error {
	id, props, err := c.props()
	if err != nil {
		return err
	}
	return c.registry.Render(w, id, props)
}

func (c *Controller) props() (domain.ThemeID, theme.Props, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseReady || c.current == nil {
		return "", theme.Props{}, ErrNotReady
	}
	resp := c.current.Response
	return c.theme, theme.Props{
		User:     resp.UserInfo,
		Analysis: resp.SajuAnalysis,
		Data:     c.current.Themes,
		Rank:     resp.Rank,
		Now:      c.current.At,
	}, nil
}

// Export captures the active artifact. Failures leave the analysis state
// untouched.
func (c *Controller) Export(ctx context.Context) (*export.Result, error) {
	if c.exporter == nil {
		return nil, errors.New("export is not configured")
	}

	id, props, err := c.props()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := c.registry.Render(&buf, id, props); err != nil {
		return nil, err
	}

	cfg := c.registry.Config(id)
	return c.exporter.Export(ctx, export.Request{
		Document:   buf.Bytes(),
		ThemeID:    id,
		Background: cfg.Background,
		FileName:   cfg.ExportFileName,
	})
}

// History returns the saved inputs, most recent first
func (c *Controller) History() []domain.HistoryEntry {
	return c.history.Load()
}

// RemoveHistory deletes one saved input
func (c *Controller) RemoveHistory(timestamp int64) []domain.HistoryEntry {
	return c.history.Remove(timestamp)
}
