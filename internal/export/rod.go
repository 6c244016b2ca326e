package export

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const viewportWidth = 480

// RodConfig configures the headless browser used for captures
type RodConfig struct {
	// ControlURL connects to a running browser instead of launching one
	ControlURL string
	// Bin overrides the browser binary
	Bin      string
	Headless bool
	Timeout  time.Duration
}

// RodCapturer captures artifacts with a headless Chromium driven by rod.
// The browser is launched on first use and reused.
type RodCapturer struct {
	cfg RodConfig

	mu      sync.Mutex
	browser *rod.Browser
}

// NewRodCapturer creates a capturer; no browser is started until Capture
func NewRodCapturer(cfg RodConfig) *RodCapturer {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &RodCapturer{cfg: cfg}
}

func (c *RodCapturer) connect() (*rod.Browser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.browser != nil {
		if _, err := c.browser.Version(); err == nil {
			return c.browser, nil
		}
		_ = c.browser.Close()
		c.browser = nil
	}

	controlURL := c.cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(c.cfg.Headless)
		if c.cfg.Bin != "" {
			l = l.Bin(c.cfg.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch browser: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	c.browser = browser
	return browser, nil
}

// Capture loads document into a fresh page and screenshots opts.Selector
func (c *RodCapturer) Capture(ctx context.Context, document []byte, opts CaptureOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	browser, err := c.connect()
	if err != nil {
		return nil, err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer page.Close()
	page = page.Timeout(c.cfg.Timeout)

	if err := viewport(page, 800, opts.Scale); err != nil {
		return nil, err
	}
	if err := page.SetDocumentContent(string(document)); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	el, err := page.Element(opts.Selector)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", opts.Selector, err)
	}
	shape, err := el.Shape()
	if err != nil {
		return nil, fmt.Errorf("measure %s: %w", opts.Selector, err)
	}
	box := shape.Box()
	if box == nil {
		return nil, errors.New("artifact has no layout box")
	}
	if math.Ceil(box.Width*opts.Scale) > MaxCanvasSide || math.Ceil(box.Height*opts.Scale) > MaxCanvasSide {
		return nil, ErrCanvasTooLarge
	}

	// grow the viewport so the whole artifact is painted
	if err := viewport(page, int(math.Ceil(box.Y+box.Height))+32, opts.Scale); err != nil {
		return nil, err
	}

	data, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return data, nil
}

// Close shuts the browser down
func (c *RodCapturer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.browser == nil {
		return nil
	}
	err := c.browser.Close()
	c.browser = nil
	return err
}

func viewport(page *rod.Page, height int, scale float64) error {
	err := proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            height,
		DeviceScaleFactor: scale,
		Mobile:            false,
	}.Call(page)
	if err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}
	return nil
}
