// Package snapshot renders the chart page in a headless browser and
// captures the chart as a PNG.
package snapshot

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// chartSelector is the rendered chart inside the page
const chartSelector = "#chart svg"

// Options describes one snapshot
type Options struct {
	BaseURL string
	Stock   string
	Start   string
	End     string
	Range   string
	SMA     int
	Width   int64
	Height  int64
	Timeout time.Duration
}

// PageURL builds the page address carrying the control preselection
func PageURL(opts Options) (string, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		return "", fmt.Errorf("base URL is required")
	}
	u, err := url.Parse(base + "/")
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid base URL %q: scheme must be http or https", opts.BaseURL)
	}

	q := u.Query()
	if opts.Stock != "" {
		q.Set("stock", opts.Stock)
	}
	if opts.Start != "" {
		q.Set("start", opts.Start)
	}
	if opts.End != "" {
		q.Set("end", opts.End)
	}
	if opts.Range != "" {
		q.Set("range", opts.Range)
	}
	if opts.SMA > 0 {
		q.Set("sma", strconv.Itoa(opts.SMA))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Browser captures chart screenshots through a Chrome instance
type Browser struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	log      zerolog.Logger
}

// NewBrowser starts a headless Chrome allocator
func NewBrowser(headless bool, log zerolog.Logger) *Browser {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.NoSandbox,
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Browser{
		allocCtx: allocCtx,
		cancel:   cancel,
		log:      log.With().Str("component", "snapshot").Logger(),
	}
}

// Close shuts the browser down
func (b *Browser) Close() {
	b.cancel()
}

// Capture loads the page for opts and returns a PNG of the chart element
func (b *Browser) Capture(ctx context.Context, opts Options) ([]byte, error) {
	pageURL, err := PageURL(opts)
	if err != nil {
		return nil, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", opts.Width, opts.Height)
	}

	taskCtx, cancel := chromedp.NewContext(b.allocCtx, chromedp.WithLogf(func(format string, args ...interface{}) {
		b.log.Debug().Msgf(format, args...)
	}))
	defer cancel()

	if opts.Timeout > 0 {
		var timeoutCancel context.CancelFunc
		taskCtx, timeoutCancel = context.WithTimeout(taskCtx, opts.Timeout)
		defer timeoutCancel()
	}

	// Stop waiting when the caller gives up
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	b.log.Info().Str("url", pageURL).Msg("Capturing chart")

	var png []byte
	err = chromedp.Run(taskCtx,
		emulation.SetDeviceMetricsOverride(opts.Width, opts.Height, 1, false),
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(chartSelector, chromedp.ByQuery),
		chromedp.Screenshot(chartSelector, &png, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture %s: %w", pageURL, err)
	}

	b.log.Debug().Int("bytes", len(png)).Msg("Chart captured")
	return png, nil
}
