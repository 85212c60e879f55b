package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// MinContentLength is the shortest extracted text accepted from a plain HTTP
// fetch before a browser render is attempted.
const MinContentLength = 500

// ShouldUseBrowser reports whether extracted text is short enough that the
// page is probably rendered client-side.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// WithBrowser renders rawURL in headless Chrome and returns the resulting HTML.
// Chrome or Chromium must be installed.
func WithBrowser(ctx context.Context, rawURL string, timeout time.Duration, log *zap.Logger) (string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log.Debug("starting headless browser", zap.String("url", rawURL))

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body"),
		// client-side rendering
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "browser rendering failed", Cause: err}
	}

	log.Debug("browser render complete", zap.String("url", rawURL), zap.Int("bytes", len(html)))
	return html, nil
}

// JobPosting fetches rawURL and returns the job description text. When
// useBrowser is set and the HTTP body yields too little text, the page is
// rendered in a headless browser instead; a failed render keeps the HTTP text.
func JobPosting(ctx context.Context, rawURL string, useBrowser bool, opts *Options, log *zap.Logger) (string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	platform := DetectPlatform(rawURL)
	content := ContentSelectors(platform)
	noise := NoiseSelectors(platform)

	page, err := Get(ctx, rawURL, opts)
	if err != nil {
		return "", err
	}
	text, err := ExtractMainText(page.HTML, content, noise...)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", rawURL, err)
	}
	log.Debug("fetched job posting",
		zap.String("url", rawURL),
		zap.String("platform", string(platform)),
		zap.Int("html_bytes", len(page.HTML)),
		zap.Int("text_chars", len(text)))

	if !useBrowser || !ShouldUseBrowser(text) {
		return text, nil
	}

	timeout := DefaultTimeout
	if opts != nil && opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	rendered, err := WithBrowser(ctx, rawURL, timeout, log)
	if err != nil {
		log.Warn("browser fallback failed, using HTTP content", zap.Error(err))
		return text, nil
	}
	browserText, err := ExtractMainText(rendered, content, noise...)
	if err != nil || len(browserText) <= len(text) {
		return text, nil
	}
	return browserText, nil
}
