// Package browser implements the page automation capability on headless
// Chrome via chromedp. One Session corresponds to one browser tab and is
// opened per pipeline run.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// Session is a live headless browser tab. It exposes only the surface the
// extractor needs: navigate, wait, evaluate, style injection, and an
// element-scoped screenshot.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	logger      *slog.Logger
}

// NewSession launches a headless browser with the viewport the forecast map
// renders best at. Close must be called to release the browser process.
func NewSession(parent context.Context, logger *slog.Logger) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(1600, 1200),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// Force the browser process to start now so launch failures surface here
	// instead of on the first navigation.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	return &Session{
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
		logger:      logger,
	}, nil
}

// Navigate loads the given URL in the session tab.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// WaitVisible blocks until the selector matches a visible node or the
// timeout elapses.
func (s *Session) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.run(waitCtx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for %q: %w", selector, err)
	}
	return nil
}

// Evaluate runs a JavaScript expression in the page and unmarshals its
// result into out. Pass a nil out to discard the result.
func (s *Session) Evaluate(ctx context.Context, expression string, out any) error {
	if err := s.run(ctx, chromedp.Evaluate(expression, out)); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

// AddStyle appends a <style> element with the given CSS to the document head.
func (s *Session) AddStyle(ctx context.Context, css string) error {
	literal, err := json.Marshal(css)
	if err != nil {
		return fmt.Errorf("encode css: %w", err)
	}
	script := fmt.Sprintf(
		`(() => { const s = document.createElement('style'); s.textContent = %s; document.head.appendChild(s); return true; })()`,
		literal,
	)
	var ok bool
	return s.Evaluate(ctx, script, &ok)
}

// ScreenshotElement captures a PNG of the first node matching the selector.
func (s *Session) ScreenshotElement(ctx context.Context, selector string) ([]byte, error) {
	var buf []byte
	if err := s.run(ctx, chromedp.Screenshot(selector, &buf, chromedp.NodeVisible, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("screenshot %q: %w", selector, err)
	}
	s.logger.Info("screenshot captured", "selector", selector, "bytes", len(buf))
	return buf, nil
}

// Close shuts down the tab and the browser process.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
}

// run executes actions on the session's browser context, honoring any
// deadline carried by the caller's context.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx := s.ctx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(s.ctx, deadline)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}
