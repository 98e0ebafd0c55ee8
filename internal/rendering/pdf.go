package rendering

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// A4 paper size in inches.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// DefaultPDFTimeout bounds browser start-up plus printing of one document.
const DefaultPDFTimeout = 60 * time.Second

// PDFRenderer prints an HTML page to PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderer prints HTML with a headless Chrome. ExecPath overrides the browser binary.
type ChromeRenderer struct {
	ExecPath string
	Timeout  time.Duration
}

// NewChromeRenderer creates a ChromeRenderer using the browser at execPath, or the default lookup when empty.
func NewChromeRenderer(execPath string) *ChromeRenderer {
	return &ChromeRenderer{ExecPath: execPath, Timeout: DefaultPDFTimeout}
}

// RenderPDF loads html into a blank page and prints it as an A4 PDF with backgrounds.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "browser failed to print PDF", Cause: err}
	}
	return pdf, nil
}

// RenderPDF renders resume content in theme and prints it with r.
func RenderPDF(ctx context.Context, r PDFRenderer, data types.ResumeData, theme Theme) ([]byte, error) {
	html, err := RenderHTML(data, theme)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	pdf, err := r.RenderPDF(ctx, html)
	if err != nil {
		return nil, err
	}
	observability.Logger().WithFields(logrus.Fields{
		"theme":    theme,
		"bytes":    len(pdf),
		"duration": time.Since(start).String(),
	}).Debug("rendered pdf")
	return pdf, nil
}

// RenderThemes renders one PDF per theme, at most limit at a time.
func RenderThemes(ctx context.Context, r PDFRenderer, data types.ResumeData, themes []Theme, limit int) (map[Theme][]byte, error) {
	results := make([][]byte, len(themes))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, theme := range themes {
		g.Go(func() error {
			pdf, err := RenderPDF(gctx, r, data, theme)
			if err != nil {
				return err
			}
			results[i] = pdf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[Theme][]byte, len(themes))
	for i, theme := range themes {
		out[theme] = results[i]
	}
	return out, nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename returns the download name for a resume: whitespace runs in name become
// underscores and the suffix _Resume.pdf is appended. A blank name yields resume_Resume.pdf.
func Filename(name string) string {
	if strings.TrimSpace(name) == "" {
		return "resume_Resume.pdf"
	}
	return whitespaceRun.ReplaceAllString(name, "_") + "_Resume.pdf"
}
