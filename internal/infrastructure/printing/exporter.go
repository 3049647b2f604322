// Package printing renders dashboard pages to PDF through headless Chromium.
package printing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/compras/backend/internal/infrastructure/config"
)

const defaultExportTimeout = 30 * time.Second

// A4 dimensions in millimeters
const (
	paperWidthMM  = 210.0
	paperHeightMM = 297.0
)

// ErrDisabled is returned when the exporter is not enabled in configuration.
var ErrDisabled = errors.New("pdf export is disabled")

// Exporter prints server-rendered pages to PDF over the Chrome DevTools
// Protocol. It reuses one allocator across requests; each export gets its
// own browser context.
type Exporter struct {
	cfg         config.ExportConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewExporter creates an Exporter. When cfg.Enabled is false the exporter
// is constructed but every ExportPage call returns ErrDisabled.
func NewExporter(cfg config.ExportConfig, logger *zap.Logger) *Exporter {
	e := &Exporter{cfg: cfg, logger: logger}
	if !cfg.Enabled {
		return e
	}
	if cfg.ChromiumURL != "" {
		e.allocCtx, e.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.ChromiumURL)
	} else {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-first-run", true),
			chromedp.Flag("disable-extensions", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("font-render-hinting", "none"),
		)
		e.allocCtx, e.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}
	return e
}

// IsEnabled reports whether the exporter can render.
func (e *Exporter) IsEnabled() bool {
	return e.allocCtx != nil
}

// ExportPage navigates to path on the configured base URL carrying the
// caller's session cookie and returns the printed PDF bytes.
func (e *Exporter) ExportPage(ctx context.Context, path, cookieName, cookieValue string) ([]byte, error) {
	if e.allocCtx == nil {
		return nil, ErrDisabled
	}

	target := strings.TrimRight(e.cfg.BaseURL, "/") + path

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := e.cfg.Timeout
	if timeout == 0 {
		timeout = defaultExportTimeout
	}

	browserCtx, browserCancel := chromedp.NewContext(e.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			e.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, timeout)
	defer timeoutCancel()

	started := time.Now()
	var pdfData []byte

	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return network.SetCookie(cookieName, cookieValue).WithURL(target).Do(ctx)
		}),
		chromedp.Navigate(target),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(mmToInches(paperWidthMM)).
				WithPaperHeight(mmToInches(paperHeightMM)).
				WithMarginTop(mmToInches(10)).
				WithMarginBottom(mmToInches(10)).
				WithMarginLeft(mmToInches(10)).
				WithMarginRight(mmToInches(10)).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if browserCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("pdf export timed out after %v: %w", timeout, err)
		}
		e.logger.Error("chromedp export failed", zap.Error(err), zap.String("url", target))
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, errors.New("generated PDF is empty")
	}

	e.logger.Info("Page exported to PDF",
		zap.String("url", target),
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(started)))
	return pdfData, nil
}

// Close releases the browser allocator.
func (e *Exporter) Close() error {
	if e.allocCancel != nil {
		e.allocCancel()
	}
	return nil
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}
