package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	appfinance "github.com/backoffice/backend/internal/application/finance"
	"github.com/backoffice/backend/internal/domain/finance"
	"go.uber.org/zap"
)

const (
	defaultRenderTimeout = 30 * time.Second

	// A4 in inches, the only paper size overdue notices are printed on
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
	marginInches   = 0.6
)

// Config contains configuration for the chromedp renderer
type Config struct {
	// RenderTimeout bounds a single PDF render
	RenderTimeout time.Duration
	// RemoteURL is the URL of a remote Chrome/Chromium instance (optional).
	// If empty, chromedp launches a local browser.
	RemoteURL string
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// Logger for debug output
	Logger *zap.Logger
}

// ChromedpNoticeRenderer renders overdue notices to PDF using the Chrome
// DevTools Protocol
type ChromedpNoticeRenderer struct {
	config      *Config
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpNoticeRenderer creates a new chromedp-based notice renderer
func NewChromedpNoticeRenderer(config *Config) (*ChromedpNoticeRenderer, error) {
	if config == nil {
		config = &Config{}
	}
	if config.RenderTimeout == 0 {
		config.RenderTimeout = defaultRenderTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ChromedpNoticeRenderer{
		config: config,
		logger: logger,
	}
	r.initAllocator()

	return r, nil
}

func (r *ChromedpNoticeRenderer) initAllocator() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("font-render-hinting", "none"),
	)

	if r.config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	if r.config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), r.config.RemoteURL)
	} else {
		r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}
}

// RenderOverdueNotice renders the overdue notice for an invoice as a PDF
func (r *ChromedpNoticeRenderer) RenderOverdueNotice(ctx context.Context, invoice *finance.Invoice) ([]byte, error) {
	html, err := BuildOverdueNoticeHTML(invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to build notice HTML: %w", err)
	}
	return r.renderHTML(ctx, html)
}

func (r *ChromedpNoticeRenderer) renderHTML(ctx context.Context, html string) ([]byte, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.config.RenderTimeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	var pdfData []byte

	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(marginInches).
				WithMarginRight(marginInches).
				WithMarginBottom(marginInches).
				WithMarginLeft(marginInches).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("PDF rendering timed out after %v: %w", r.config.RenderTimeout, err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}

	if len(pdfData) == 0 {
		return nil, fmt.Errorf("generated PDF is empty")
	}

	r.logger.Info("Overdue notice rendered",
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(startTime)))

	return pdfData, nil
}

// Close releases resources held by the renderer
func (r *ChromedpNoticeRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

// Ensure ChromedpNoticeRenderer implements NoticeRenderer
var _ appfinance.NoticeRenderer = (*ChromedpNoticeRenderer)(nil)
