// Package fetch - browser.go renders script-built job pages in headless Chrome.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// MinContentLength is the shortest main text accepted from a plain HTTP fetch
// before a browser render is worth trying.
const MinContentLength = 500

// DefaultBrowserTimeout bounds one headless render.
const DefaultBrowserTimeout = 30 * time.Second

// ShouldUseBrowser reports whether extracted text is short enough that the
// page was probably rendered client side.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// Renderer returns the rendered HTML of a page.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// BrowserRenderer renders pages with a local Chrome or Chromium through chromedp.
type BrowserRenderer struct {
	Timeout   time.Duration
	UserAgent string
}

// NewBrowserRenderer creates a renderer with the default timeout.
func NewBrowserRenderer() *BrowserRenderer {
	return &BrowserRenderer{Timeout: DefaultBrowserTimeout, UserAgent: DefaultUserAgent}
}

// Render navigates to url, waits for the body and returns the outer HTML.
func (b *BrowserRenderer) Render(ctx context.Context, url string) (string, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("url", url).Msg("starting headless browser")

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(b.UserAgent))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		// cookie banners hide the description on some boards
		chromedp.ActionFunc(func(ctx context.Context) error {
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"]`, chromedp.NodeVisible, chromedp.AtLeast(0)).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	logger.Debug().Str("url", url).Int("bytes", len(html)).Msg("rendered page")
	return html, nil
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(ctx context.Context, url string) (string, error)

// Render calls f.
func (f RenderFunc) Render(ctx context.Context, url string) (string, error) {
	if f == nil {
		return "", fmt.Errorf("no renderer configured")
	}
	return f(ctx, url)
}
